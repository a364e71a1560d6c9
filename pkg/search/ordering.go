package search

import (
	"sort"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
)

// Exploration order is decided once per node by stamping each generated
// move's Score field and stable-sorting the caller's buffer in place: the
// transposition table's best move first, then captures ranked most valuable
// victim before lightest aggressor, then quiet moves in generator order.
// Reusing the generation buffer keeps the hot path free of the allocation a
// separate priority queue would cost per node.

// Priority bands: the hash move outranks every capture, and any capture
// outranks every quiet move, whatever its victim/aggressor breakdown.
const (
	hashMovePriority int16 = 1 << 14
	captureBase      int16 = 1 << 8
)

// orderMoves sorts moves into exploration order for the given position.
// hashMove may be the null move when the transposition table had no hint.
func orderMoves(pos *board.Position, moves []board.Move, hashMove board.Move) {
	for i := range moves {
		moves[i].Score = movePriority(pos, moves[i], hashMove)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Score > moves[j].Score
	})
}

// movePriority ranks one move. Captures weigh the victim's value first and
// its kind second, then prefer the lighter attacker: between two ways of
// taking the same piece, a lone piece risks less than a committed 2-piece
// stack, so the single explores first. Wise never appears on either side of
// a capture.
func movePriority(pos *board.Position, m board.Move, hashMove board.Move) int16 {
	if !hashMove.IsNull() && m.Equals(hashMove) {
		return hashMovePriority
	}
	if !m.IsCapture() {
		return 0
	}

	p := captureBase
	p += int16(eval.CaptureValue(m.Capture)) << 6
	p += int16(m.Capture) << 3
	if s, ok := pos.Square(m.From); ok {
		p -= int16(s.Top)
		if !s.IsSingle() {
			p--
		}
	}
	return p
}
