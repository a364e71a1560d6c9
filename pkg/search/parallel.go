package search

import (
	"context"
	"runtime"
	"sync"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
	"github.com/hexfort/pijersi/pkg/search/pool"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// RootSplit is a root-splitting parallel search: the root's move list is
// distributed across worker goroutines, each running an independent
// alpha-beta search on its own cloned board. The transposition table is
// shared and lockless (see transposition.go); a shared, mutex-guarded
// best-move/alpha pair replaces per-worker windows once the first move has
// established a baseline. Simpler than tree-splitting schemes like Young
// Brothers Wait, at the cost of some wasted work on non-first moves, a
// known acceptable trade at Pijersi's branching factor.
type RootSplit struct {
	Child   Search // per-move subtree search, typically AlphaBeta
	Workers int    // 0 means runtime.GOMAXPROCS(0)
}

func (p RootSplit) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	child := p.Child
	if child == nil {
		child = AlphaBeta{}
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if result := b.Result(); result.Outcome != board.Undecided {
		return 0, eval.Terminal(result, b.Turn(), 0), nil, nil
	}

	var buf [board.MaxMoves]board.Move
	moves := b.Position().GenerateMoves(buf[:0])
	if len(moves) == 0 {
		result := b.AdjudicateNoLegalMoves()
		return 0, eval.Terminal(result, b.Turn(), 0), nil, nil
	}
	if depth <= 1 || len(moves) == 1 || workers == 1 {
		return child.Search(ctx, sctx, b, depth)
	}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	shared := &rootShared{alpha: low}
	var nodes atomicCounter

	// Search the first move sequentially with the full window to establish a
	// baseline alpha before fanning the rest out across workers.
	first := moves[0]
	fb := b.Fork()
	if fb.PushMove(first) {
		n, score, rem, err := child.Search(ctx, &Context{Alpha: high.Negate(), Beta: low.Negate(), TT: sctx.TT, Noise: sctx.Noise}, fb, depth-1)
		nodes.add(n)
		if err != nil {
			return nodes.get(), eval.InvalidScore, nil, err
		}
		score = eval.IncrementMateDistance(score).Negate()
		shared.update(score, first, rem)
	}

	rest := moves[1:]
	err := pool.Run(ctx, workers, func(ctx context.Context, worker int) error {
		for i := worker; i < len(rest); i += workers {
			if contextx.IsCancelled(ctx) {
				return ErrHalted
			}

			move := rest[i]
			wb := b.Fork()
			if !wb.PushMove(move) {
				continue
			}

			alpha := shared.loadAlpha()
			n, score, rem, err := child.Search(ctx, &Context{Alpha: high.Negate(), Beta: alpha.Negate(), TT: sctx.TT, Noise: sctx.Noise}, wb, depth-1)
			nodes.add(n)
			if err != nil {
				return err
			}
			score = eval.IncrementMateDistance(score).Negate()
			shared.update(score, move, rem)
		}
		return nil
	})

	if err != nil && err != ErrHalted {
		return nodes.get(), eval.InvalidScore, nil, err
	}
	if contextx.IsCancelled(ctx) {
		return nodes.get(), eval.InvalidScore, nil, ErrHalted
	}

	score, pv := shared.result()
	return nodes.get(), score, pv, nil
}

// rootShared holds the shared best move and alpha bound at the root,
// read-only during a child search and written only at the end.
type rootShared struct {
	mu    sync.Mutex
	alpha eval.Score
	pv    []board.Move
}

func (s *rootShared) loadAlpha() eval.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alpha
}

func (s *rootShared) update(score eval.Score, move board.Move, rem []board.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pv == nil || s.alpha.Less(score) {
		s.alpha = score
		s.pv = append([]board.Move{move}, rem...)
	}
}

func (s *rootShared) result() (eval.Score, []board.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alpha, s.pv
}

type atomicCounter struct {
	mu sync.Mutex
	n  uint64
}

func (c *atomicCounter) add(n uint64) {
	c.mu.Lock()
	c.n += n
	c.mu.Unlock()
}

func (c *atomicCounter) get() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
