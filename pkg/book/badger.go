package book

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/hexfort/pijersi/pkg/board"
	"github.com/seekerror/logw"
)

// badgerBook is a read-only opening book backed by a Badger key-value store,
// keyed by the 8-byte big-endian Zobrist hash of the position. Values pack a
// 4-byte encoded move (board.Move.Encode) followed by a 4-byte big-endian
// weight.
type badgerBook struct {
	db *badger.DB
}

// OpenBadger opens the book at dir read-only. A missing or corrupt book is
// reported as a non-fatal BookLoadFailure: callers should fall back to None
// rather than abort engine startup over it.
func OpenBadger(ctx context.Context, dir string) (Book, error) {
	opts := badger.DefaultOptions(dir).WithReadOnly(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, &BookLoadFailure{Dir: dir, Cause: err}
	}
	logw.Infof(ctx, "Opened opening book at %v", dir)
	return &badgerBook{db: db}, nil
}

func (b *badgerBook) Find(ctx context.Context, hash board.ZobristHash) (board.Move, int, bool) {
	var move board.Move
	var weight int
	found := false

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(hash))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("book: malformed entry for %x: %d bytes", hash, len(val))
			}
			move = board.DecodeMove(binary.BigEndian.Uint32(val[:4]))
			weight = int(binary.BigEndian.Uint32(val[4:]))
			found = true
			return nil
		})
	})
	if err != nil {
		logw.Errorf(ctx, "Book lookup failed for %x: %v", hash, err)
		return board.Move{}, 0, false
	}
	return move, weight, found
}

func (b *badgerBook) Close() error {
	return b.db.Close()
}

func encodeKey(hash board.ZobristHash) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(hash))
	return buf[:]
}

// BookLoadFailure reports that a configured opening book could not be
// opened. It is a distinct type so the engine can log and continue with
// None rather than treating it like any other startup error.
type BookLoadFailure struct {
	Dir   string
	Cause error
}

func (e *BookLoadFailure) Error() string {
	return fmt.Sprintf("book: failed to open %q: %v", e.Dir, e.Cause)
}

func (e *BookLoadFailure) Unwrap() error {
	return e.Cause
}
