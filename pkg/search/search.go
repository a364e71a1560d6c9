// Package search contains the move search: transposition table, alpha-beta
// tree walk and the root-splitting parallel driver built on top of it.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
)

// ErrHalted indicates a search was stopped before completing its current
// depth; it is absorbed by searchctl and never surfaced past the engine if
// at least one depth finished.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found for some completed search
// depth, the unit streamed out after each iterative-deepening iteration.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, board.PrintMoves(p.Moves))
}

// BestMove returns the first move of the PV, or the null move if the PV is
// empty (e.g. a decided or stalemated position).
func (p PV) BestMove() board.Move {
	if len(p.Moves) == 0 {
		return board.Move{}
	}
	return p.Moves[0]
}

// Context carries the search window and shared infrastructure into a single
// alpha-beta invocation. Root splitting gives every worker its own Context
// sharing the same TT and noise source, but with independently negotiated
// Alpha/Beta.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
}

// Search runs one fixed-depth alpha-beta search from the given board,
// returning the node count, score and principal variation.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}
