package search

import (
	"context"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements fail-soft negamax alpha-beta pruning with transposition
// table probing and capture-first move ordering. There is no quiescence
// search: Pijersi's forced-capture-free rules and short forced sequences
// make a fixed-depth cutoff adequate, unlike chess.
type AlphaBeta struct {
	Eval eval.Evaluator
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		eval:  orStandard(p.Eval),
		tt:    sctx.TT,
		noise: sctx.Noise,
		b:     b,
	}
	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, pv := run.search(ctx, depth, low, high)
	if contextx.IsCancelled(ctx) {
		return run.nodes, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runAlphaBeta struct {
	eval  eval.Evaluator
	tt    TranspositionTable
	noise eval.Random
	b     *board.Board
	nodes uint64
}

// pollInterval is how often cancellation is checked, in nodes visited.
// Checking context.Context on every node is needlessly expensive; Pijersi's
// branching factor makes a few thousand nodes a small fraction of a second.
const pollInterval = 4096

// search returns the fail-soft negamax score and principal variation for the
// side to move. Terminal scores are node-relative (ply 0 at the node that
// sees the decided position); IncrementMateDistance stretches them by one
// ply per level on the way back up, so the root ends up with the full
// distance-to-mate and the transposition table only ever sees node-relative
// values.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if m.nodes%pollInterval == 0 && contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}

	if result := m.b.Result(); result.Outcome != board.Undecided {
		return eval.Terminal(result, m.b.Turn(), 0), nil
	}

	var ttMove board.Move
	if score, move, ok, cutoff := m.tt.Probe(m.b.Hash(), depth, alpha, beta); ok {
		ttMove = move
		if cutoff {
			return score, nil
		}
	}

	if depth == 0 {
		m.nodes++
		score := m.noise.Apply(m.b.Position(), m.eval.Evaluate(ctx, m.b.Position()))
		m.tt.Store(m.b.Hash(), 0, ExactBound, score, board.Move{})
		return score, nil
	}

	var buf [board.MaxMoves]board.Move
	pseudo := m.b.Position().GenerateMoves(buf[:0])
	if len(pseudo) == 0 {
		result := m.b.AdjudicateNoLegalMoves()
		return eval.Terminal(result, m.b.Turn(), 0), nil
	}
	m.nodes++

	orderMoves(m.b.Position(), pseudo, ttMove)

	best := eval.NegInfScore
	bound := UpperBound
	var pv []board.Move
	var bestMove board.Move

	for _, move := range pseudo {
		if !m.b.PushMove(move) {
			continue // unreachable: GenerateMoves only yields legal moves.
		}

		score, rem := m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
		m.b.PopMove()

		if score.IsInvalid() {
			return eval.InvalidScore, nil
		}
		score = eval.IncrementMateDistance(score).Negate()

		if best.Less(score) {
			best = score
			bestMove = move
			pv = append([]board.Move{move}, rem...)
		}
		if alpha.Less(score) {
			alpha = score
			bound = ExactBound
		}
		if !alpha.Less(beta) {
			bound = LowerBound
			break // beta cutoff
		}
	}

	m.tt.Store(m.b.Hash(), depth, bound, best, bestMove)
	return best, pv
}

func orStandard(e eval.Evaluator) eval.Evaluator {
	if e == nil {
		return eval.Standard{}
	}
	return e
}
