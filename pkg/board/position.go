package board

import (
	"fmt"
	"strings"
)

// noProgressLimit is the half-move clock value (in plies) at which a
// position is adjudicated a draw.
const noProgressLimit = 20

// Position is a self-contained Pijersi position: cell contents, side to
// move, half-move clock, full-move number and Zobrist hash. It is treated as
// an immutable value -- Apply returns a new Position rather than mutating
// the receiver -- so that Board can keep a simple linked history for
// PushMove/PopMove.
type Position struct {
	cells    [NumCells]content
	turn     Color
	halfmove int
	fullmove int
	hash     ZobristHash

	zt *ZobristTable
}

// NewEmptyPosition returns an empty board with the given side to move.
func NewEmptyPosition(zt *ZobristTable, turn Color, halfmove, fullmove int) *Position {
	p := &Position{turn: turn, halfmove: halfmove, fullmove: fullmove, zt: zt}
	p.hash = zt.Hash(p, turn)
	return p
}

// NewStartPosition returns the standard Pijersi starting position:
//
//	s-p-r-s-p-r-
//	p-r-s-wwr-s-p-
//	......
//	.......
//	......
//	P-S-R-WWS-R-P-
//	R-P-S-R-P-S-
func NewStartPosition(zt *ZobristTable) *Position {
	p := NewEmptyPosition(zt, White, 0, 1)

	place := func(row int, col int, s Stack) {
		c := NewCell(row, col)
		p.cells[c] = pack(s.Color, s.Top, s.Bottom)
	}

	blackSingle := []Kind{Scissors, Paper, Rock, Scissors, Paper, Rock}
	for i, k := range blackSingle {
		place(0, i, Stack{Color: Black, Top: k})
	}
	blackBack := []Kind{Paper, Rock, Scissors, NoKind, Rock, Scissors, Paper}
	for i, k := range blackBack {
		if i == 3 {
			place(1, i, Stack{Color: Black, Top: Wise, Bottom: Wise})
			continue
		}
		place(1, i, Stack{Color: Black, Top: k})
	}

	whiteBack := []Kind{Paper, Scissors, Rock, NoKind, Scissors, Rock, Paper}
	for i, k := range whiteBack {
		if i == 3 {
			place(5, i, Stack{Color: White, Top: Wise, Bottom: Wise})
			continue
		}
		place(5, i, Stack{Color: White, Top: k})
	}
	whiteSingle := []Kind{Rock, Paper, Scissors, Rock, Paper, Scissors}
	for i, k := range whiteSingle {
		place(6, i, Stack{Color: White, Top: k})
	}

	p.hash = zt.Hash(p, p.turn)
	return p
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.turn
}

// HalfMoveClock returns the number of plies since the last capture.
func (p *Position) HalfMoveClock() int {
	return p.halfmove
}

// FullMoveNumber returns the full-move counter (incremented after Black moves).
func (p *Position) FullMoveNumber() int {
	return p.fullmove
}

// Hash returns the incrementally-maintained Zobrist hash.
func (p *Position) Hash() ZobristHash {
	return p.hash
}

// IsEmpty reports whether the cell holds no piece.
func (p *Position) IsEmpty(c Cell) bool {
	return p.cells[c].isEmpty()
}

// Square returns the stack occupying the cell, if any.
func (p *Position) Square(c Cell) (Stack, bool) {
	code := p.cells[c]
	if code.isEmpty() {
		return Stack{}, false
	}
	return Stack{Color: code.color(), Top: code.top(), Bottom: code.bottom()}, true
}

// clone returns a shallow value copy of p; cells is a fixed-size array so
// this is a real, independent copy -- cheap (45 bytes) and allocation-light,
// which is what lets Board keep history as a chain of *Position without
// diff/undo bookkeeping.
func (p *Position) clone() *Position {
	cp := *p
	return &cp
}

func (p *Position) recomputeHash() ZobristHash {
	return p.zt.Hash(p, p.turn)
}

// Apply executes move, which must be one of p.LegalMoves(), and
// returns the resulting position. The receiver is not mutated.
func (p *Position) Apply(m Move) *Position {
	next := p.clone()
	next.hash = p.zt.flipSide(p.hash, p.turn)
	next.turn = p.turn.Opponent()

	captured := next.applyShape(m)

	if captured {
		next.halfmove = 0
	} else {
		next.halfmove = p.halfmove + 1
	}
	if next.turn == White {
		next.fullmove = p.fullmove + 1
	}

	return next
}

// applyShape mutates next's cells in place for the given move and returns
// whether a capture occurred.
func (next *Position) applyShape(m Move) bool {
	set := func(c Cell, code content) {
		next.hash = next.zt.xor(next.hash, c, next.cells[c])
		next.cells[c] = code
		next.hash = next.zt.xor(next.hash, c, code)
	}
	clear := func(c Cell) {
		set(c, emptyContent)
	}

	captured := false

	switch m.Shape {
	case Single:
		mover := next.cells[m.From]
		dest := next.cells[m.To]
		clear(m.From)
		switch {
		case dest.isEmpty():
			set(m.To, mover)
		case dest.color() == mover.color():
			// stack onto a friendly single piece, mover on top.
			set(m.To, pack(mover.color(), mover.top(), dest.top()))
		default:
			captured = true
			set(m.To, mover)
		}

	case StackThenMove:
		mover := next.cells[m.From]
		onto := next.cells[m.Via]
		clear(m.From)
		clear(m.Via)
		// Read the destination only after the origin cells are cleared:
		// the formed stack may legally move back onto the vacated From.
		if !next.cells[m.To].isEmpty() {
			captured = true
		}
		set(m.To, pack(mover.color(), mover.top(), onto.top()))

	case StackMove:
		mover := next.cells[m.From]
		if !next.cells[m.To].isEmpty() {
			captured = true
		}
		clear(m.From)
		set(m.To, mover)

	case Unstack:
		mover := next.cells[m.From]
		clear(m.From)
		// The stack-move half may itself capture at Via before the top
		// piece continues (Via == From is a stationary unstack, where the
		// prior content is the mover's own stack).
		if m.Via != m.From && !next.cells[m.Via].isEmpty() {
			captured = true
		}
		set(m.Via, pack(mover.color(), mover.bottom(), NoKind))

		dest := next.cells[m.To]
		switch {
		case dest.isEmpty():
			set(m.To, pack(mover.color(), mover.top(), NoKind))
		case dest.color() == mover.color():
			set(m.To, pack(mover.color(), mover.top(), dest.top()))
		default:
			captured = true
			set(m.To, pack(mover.color(), mover.top(), NoKind))
		}
	}

	return captured
}

// Move validates m against the legal moves generated from this position and,
// if legal, returns the resulting position. The returned move carries the
// shape/capture resolved from the generator, not merely the board's notation
// for where the piece moves.
func (p *Position) Move(m Move) (*Position, Move, bool) {
	for _, legal := range p.LegalMoves() {
		if legal.Equals(m) {
			return p.Apply(legal), legal, true
		}
	}
	return nil, Move{}, false
}

// ResolveMove disambiguates a textually-parsed (from, via, to) move against
// this position's legal moves. Needed because move text alone cannot tell
// Single from StackMove (neither carries a Via).
func (p *Position) ResolveMove(from, to, via Cell, hasVia bool) (Move, bool) {
	for _, legal := range p.LegalMoves() {
		if legal.From != from || legal.To != to {
			continue
		}
		if hasVia {
			if legal.Shape.HasVia() && legal.Via == via {
				return legal, true
			}
			continue
		}
		if !legal.Shape.HasVia() {
			return legal, true
		}
	}
	return Move{}, false
}

// Winner reports the game's decided outcome from this position alone (goal
// row occupancy), or Undecided if the game is not yet over by that
// criterion. Half-move-clock, repetition and no-legal-move draws need the
// history/legal-move context Position lacks, so Board adjudicates those.
func (p *Position) Winner() Result {
	if p.goalReached(White) {
		return Result{Outcome: WhiteWins, Reason: Goal}
	}
	if p.goalReached(Black) {
		return Result{Outcome: BlackWins, Reason: Goal}
	}
	return Result{Outcome: Undecided}
}

// goalReached reports whether a non-Wise piece of color c tops a stack on
// c's goal row. Rows are contiguous in the flat cell array, so this is a
// plain range scan with no allocation (Winner is on the move-generation
// hot path).
func (p *Position) goalReached(c Color) bool {
	row := GoalRow(c)
	for cell := Cell(rowOffset[row]); cell < Cell(rowOffset[row+1]); cell++ {
		if s, ok := p.Square(cell); ok && s.Color == c && s.Top != Wise {
			return true
		}
	}
	return false
}

func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < NumRows; row++ {
		if row > 0 {
			sb.WriteRune('/')
		}
		run := 0
		for col := 0; col < rowWidth(row); col++ {
			c := NewCell(row, col)
			if s, ok := p.Square(c); ok {
				if run > 0 {
					sb.WriteString(fmt.Sprintf("%d", run))
					run = 0
				}
				sb.WriteString(s.String())
			} else {
				run++
			}
		}
		if run > 0 {
			sb.WriteString(fmt.Sprintf("%d", run))
		}
	}
	return fmt.Sprintf("%v %v(%v/%v)", sb.String(), p.turn, p.halfmove, p.fullmove)
}
