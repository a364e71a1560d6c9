package search

import (
	"context"
	"math/bits"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Bound represents the bound kind of a stored (possibly inexact) score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by Zobrist hash. Must be
// safe for concurrent use by the root-splitting search workers: reads and
// writes race freely, with torn writes rejected as misses rather than
// corrupting state.
type TranspositionTable interface {
	// Probe looks up hash, honoring depth and the (alpha, beta) window:
	// an exact-bound hit always counts, a lower-bound hit only if it
	// causes a beta cutoff, an upper-bound hit only if it causes an alpha
	// cutoff. A present-but-insufficient entry still returns its move as
	// an ordering hint (ok=true, cutoff=false).
	Probe(hash board.ZobristHash, depth int, alpha, beta eval.Score) (score eval.Score, move board.Move, ok bool, cutoff bool)
	// Store records a search result, subject to the table's replacement
	// policy. Mate scores must already be ply-relative (eval.Score
	// encodes that directly, so no extra adjustment is needed here).
	Store(hash board.ZobristHash, depth int, bound Bound, score eval.Score, move board.Move)

	// Size returns the table size in bytes.
	Size() uint64
	// Used returns the fraction of slots that are occupied, in [0;1].
	Used() float64

	// NewGeneration advances the replacement generation. The engine calls it
	// after each applied move, so stale entries from searches of earlier
	// positions yield to fresh ones even at equal depth.
	NewGeneration()
}

const slotsPerBucket = 2
const bytesPerBucket = slotsPerBucket * 16

// slot is one lockless transposition entry: two words, keyXORdata and data.
// A reader reconstructs key = keyXORdata ^ data and accepts the slot only if
// key equals the queried hash, which rejects torn concurrent writes as
// ordinary misses without any locking.
type slot struct {
	keyXORdata atomic.Uint64
	data       atomic.Uint64
}

// data layout (64 bits): score:32 | move:20 | depth:6 | bound:2 | generation:4
func packData(depth int, bound Bound, gen uint8, score eval.Score, move board.Move) uint64 {
	var d uint64
	d |= uint64(uint32(score))
	d |= uint64(move.Encode()&0xfffff) << 32
	d |= uint64(depth&0x3f) << 52
	d |= uint64(bound&0x3) << 58
	d |= uint64(gen&0xf) << 60
	return d
}

func unpackData(d uint64) (depth int, bound Bound, gen uint8, score eval.Score, move board.Move) {
	score = eval.Score(int32(uint32(d)))
	move = board.DecodeMove(uint32((d >> 32) & 0xfffff))
	depth = int((d >> 52) & 0x3f)
	bound = Bound((d >> 58) & 0x3)
	gen = uint8((d >> 60) & 0xf)
	return
}

type table struct {
	buckets    []bucket
	mask       uint64
	used       atomic.Uint64
	generation atomic.Uint64
}

type bucket [slotsPerBucket]slot

// NewTranspositionTable allocates a table of approximately size bytes,
// rounded down to a power-of-two number of buckets.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1)
	if size >= bytesPerBucket {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/bytesPerBucket))
	}

	logw.Infof(ctx, "Allocating %vMB TT with %v buckets", size>>20, n)

	return &table{
		buckets: make([]bucket, n),
		mask:    n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.buckets)) * bytesPerBucket
}

func (t *table) Used() float64 {
	return float64(t.used.Load()) / float64(len(t.buckets)*slotsPerBucket)
}

func (t *table) NewGeneration() {
	t.generation.Add(1)
}

func (t *table) Probe(hash board.ZobristHash, depth int, alpha, beta eval.Score) (eval.Score, board.Move, bool, bool) {
	b := &t.buckets[uint64(hash)&t.mask]

	var bestMove board.Move
	found := false

	for i := range b {
		data := b[i].data.Load()
		keyXORdata := b[i].keyXORdata.Load()
		key := board.ZobristHash(keyXORdata ^ data)
		if key != hash {
			continue // miss: unused slot, different position, or a torn write.
		}

		d, bound, _, score, move := unpackData(data)
		if !found {
			bestMove = move
			found = true
		}
		if d < depth {
			continue // not deep enough to answer this probe.
		}

		switch bound {
		case ExactBound:
			return score, move, true, true
		case LowerBound:
			if score >= beta {
				return score, move, true, true
			}
		case UpperBound:
			if score <= alpha {
				return score, move, true, true
			}
		}
	}
	return 0, bestMove, found, false
}

func (t *table) Store(hash board.ZobristHash, depth int, bound Bound, score eval.Score, move board.Move) {
	b := &t.buckets[uint64(hash)&t.mask]
	gen := uint8(t.generation.Load()) & 0xf
	data := packData(depth, bound, gen, score, move)
	keyXORdata := uint64(hash) ^ data

	// Replacement policy: always replace if deeper or from the current
	// generation; otherwise keep the deeper entry. Slot 0
	// is depth-preferred, slot 1 is always-replace, a common two-tier TT
	// layout: a lucky shallow write never evicts a valuable deep one, but
	// the most recent position is never more than one probe away.
	primary := &b[0]
	pd := primary.data.Load()
	pKeyXOR := primary.keyXORdata.Load()
	if pKeyXOR^pd == 0 && pd == 0 {
		// never written
		t.storeSlot(primary, keyXORdata, data)
		return
	}
	existingDepth, _, existingGen, _, _ := unpackData(pd)
	if depth >= existingDepth || existingGen != gen {
		t.storeSlot(primary, keyXORdata, data)
		return
	}

	t.storeSlot(&b[1], keyXORdata, data)
}

func (t *table) storeSlot(s *slot, keyXORdata, data uint64) {
	wasEmpty := s.data.Load() == 0 && s.keyXORdata.Load() == 0
	s.data.Store(data)
	s.keyXORdata.Store(keyXORdata)
	if wasEmpty {
		t.used.Add(1)
	}
}

func (t *table) String() string {
	return "TT"
}

// NoTranspositionTable is a Nop implementation, used when Options.Hash == 0.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Probe(board.ZobristHash, int, eval.Score, eval.Score) (eval.Score, board.Move, bool, bool) {
	return 0, board.Move{}, false, false
}
func (NoTranspositionTable) Store(board.ZobristHash, int, Bound, eval.Score, board.Move) {}
func (NoTranspositionTable) Size() uint64                                                { return 0 }
func (NoTranspositionTable) Used() float64                                               { return 0 }
func (NoTranspositionTable) NewGeneration()                                              {}

// TranspositionTableFactory constructs a table of the given size in bytes.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable
