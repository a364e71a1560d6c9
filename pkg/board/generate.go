package board

// MaxMoves bounds the number of moves generated from any reachable position;
// the empirical maximum is well under 512. Exported so callers (e.g.
// pkg/search) can size their own reusable move buffers.
const MaxMoves = 512

const maxMoves = MaxMoves

// LegalMoves returns every legal move for the side to move. It allocates; the
// search hot path should prefer GenerateMoves with a reusable buffer.
func (p *Position) LegalMoves() []Move {
	var buf [maxMoves]Move
	return append([]Move(nil), p.GenerateMoves(buf[:0])...)
}

// GenerateMoves appends every legal move for the side to move onto buf and
// returns the extended slice. buf should be reused across calls (e.g. a
// [maxMoves]Move stack array sliced to 0) to keep the hot path allocation-free.
//
// A decided position generates no moves: the game ends immediately on the
// move that reaches the goal row, so there is never a "next" move to make.
func (p *Position) GenerateMoves(buf []Move) []Move {
	if p.Winner().Outcome != Undecided {
		return buf
	}

	turn := p.turn
	for c := Cell(0); c < NumCells; c++ {
		s, ok := p.Square(c)
		if !ok || s.Color != turn {
			continue
		}
		if s.IsSingle() {
			buf = p.generateSingle(c, s.Top, buf)
		} else {
			buf = p.generateStack(c, s, buf)
		}
	}
	return buf
}

func (p *Position) generateSingle(from Cell, mover Kind, buf []Move) []Move {
	turn := p.turn

	for d := Direction(0); d < NumDirections; d++ {
		n1, ok := Neighbor1(from, d)
		if !ok {
			continue
		}

		target, occupied := p.Square(n1)
		switch {
		case !occupied:
			// Step.
			buf = append(buf, Move{Shape: Single, From: from, To: n1})

		case target.Color != turn:
			if mover.Beats(target.Top) {
				buf = append(buf, Move{Shape: Single, From: from, To: n1, Capture: target.Top})
			}

		default: // friendly
			if target.CanStack(mover) {
				// Plain stacking, plus every onward move of the formed
				// stack (mover on top) in the same turn.
				buf = append(buf, Move{Shape: Single, From: from, To: n1})
				buf = p.generateStackThenMove(from, mover, n1, buf)
			}
		}
	}
	return buf
}

// generateStackThenMove enumerates the 1- and 2-step continuations of the
// stack just formed at via by the piece from from. from is vacated by the
// stacking half of the move, so both a destination and a 2-step intermediate
// equal to from must be treated as empty rather than consulting p, which
// still shows the mover there.
func (p *Position) generateStackThenMove(from Cell, mover Kind, via Cell, buf []Move) []Move {
	for d := Direction(0); d < NumDirections; d++ {
		if to, ok := Neighbor1(via, d); ok {
			buf = p.appendStackThenMove(from, mover, via, to, buf)
		}
		if to, ok := Neighbor2(via, d); ok {
			if mid := Between2(via, d); mid == from || p.IsEmpty(mid) {
				buf = p.appendStackThenMove(from, mover, via, to, buf)
			}
		}
	}
	return buf
}

func (p *Position) appendStackThenMove(from Cell, mover Kind, via, to Cell, buf []Move) []Move {
	if to == from {
		return append(buf, Move{Shape: StackThenMove, From: from, Via: via, To: to})
	}

	target, occupied := p.Square(to)
	switch {
	case !occupied:
		return append(buf, Move{Shape: StackThenMove, From: from, Via: via, To: to})
	case target.Color != p.turn && mover.Beats(target.Top):
		return append(buf, Move{Shape: StackThenMove, From: from, Via: via, To: to, Capture: target.Top})
	default:
		return buf
	}
}

func (p *Position) generateStack(from Cell, s Stack, buf []Move) []Move {
	top := s.Top

	// Stationary unstack: the bottom piece stays on from while the top
	// steps off. Encoded with Via == From.
	buf = p.generateUnstack(from, top, from, NoKind, buf)

	for d := Direction(0); d < NumDirections; d++ {
		if n1, ok := Neighbor1(from, d); ok {
			buf = p.generateStackDest(from, top, n1, buf)
		}
		if n2, ok := Neighbor2(from, d); ok && p.IsEmpty(Between2(from, d)) {
			buf = p.generateStackDest(from, top, n2, buf)
		}
	}
	return buf
}

// generateStackDest handles one reachable destination for the stack at from
// (1 or 2 steps away, intermediate already confirmed empty by the caller for
// the 2-step case): the plain stack relocation, plus every unstack that
// continues on from that destination.
func (p *Position) generateStackDest(from Cell, top Kind, dest Cell, buf []Move) []Move {
	turn := p.turn
	target, occupied := p.Square(dest)

	viaCapture := NoKind
	switch {
	case !occupied:
		buf = append(buf, Move{Shape: StackMove, From: from, To: dest})
	case target.Color != turn && top.Beats(target.Top):
		viaCapture = target.Top
		buf = append(buf, Move{Shape: StackMove, From: from, To: dest, Capture: target.Top})
	default:
		return buf // destination blocked (friendly, or an unbeaten opponent)
	}

	return p.generateUnstack(from, top, dest, viaCapture, buf)
}

// generateUnstack enumerates the top piece's continuation from via (where the
// stack's bottom piece comes to rest; via == from for a stationary unstack)
// to every adjacent cell. For a moving unstack, from is vacated by the time
// the top piece steps off -- the stack has already relocated to via -- so a
// destination of from itself must be treated as empty rather than consulting
// p, which still shows the pre-move stack there. viaCapture is the kind
// taken by the stack-move half at via, if any, kept on the continuation
// moves so capture-first ordering still sees them.
func (p *Position) generateUnstack(from Cell, top Kind, via Cell, viaCapture Kind, buf []Move) []Move {
	turn := p.turn

	for d := Direction(0); d < NumDirections; d++ {
		to, ok := Neighbor1(via, d)
		if !ok {
			continue
		}

		if to == from {
			buf = append(buf, Move{Shape: Unstack, From: from, Via: via, To: to, Capture: viaCapture})
			continue
		}

		target, occupied := p.Square(to)
		switch {
		case !occupied:
			buf = append(buf, Move{Shape: Unstack, From: from, Via: via, To: to, Capture: viaCapture})
		case target.Color != turn:
			if top.Beats(target.Top) {
				buf = append(buf, Move{Shape: Unstack, From: from, Via: via, To: to, Capture: target.Top})
			}
		default:
			if target.CanStack(top) {
				buf = append(buf, Move{Shape: Unstack, From: from, Via: via, To: to, Capture: viaCapture})
			}
		}
	}
	return buf
}
