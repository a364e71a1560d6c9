// Package book implements the opening book: a read-only mapping from
// position hash to (move, weight), consulted at the root of a search when
// enabled.
package book

import (
	"context"

	"github.com/hexfort/pijersi/pkg/board"
)

// Book is a read-only mapping from position hash to a candidate move. Find
// returns ok=false once the game leaves book territory, after which the
// caller should stop probing for the rest of the game.
type Book interface {
	Find(ctx context.Context, hash board.ZobristHash) (move board.Move, weight int, ok bool)
	Close() error
}

// none is the empty book, used when use_book is false or no book file was
// configured.
type none struct{}

// None is a Book with no entries.
var None Book = none{}

func (none) Find(context.Context, board.ZobristHash) (board.Move, int, bool) { return board.Move{}, 0, false }
func (none) Close() error                                                   { return nil }
