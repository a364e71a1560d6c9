package board

import "fmt"

const repetitionLimit = 3

type node struct {
	pos  *Position
	hash ZobristHash

	next Move // if not current
	prev *node
}

// Board represents a Pijersi board plus the history needed to adjudicate
// draws: half-move clock (carried on Position itself), 3-fold repetition and
// no-legal-move. Not thread-safe; callers needing a search tree Fork it.
type Board struct {
	zt          *ZobristTable
	repetitions map[ZobristHash]int

	result  Result
	current *node
}

func NewBoard(zt *ZobristTable, pos *Position) *Board {
	current := &node{pos: pos, hash: pos.Hash()}
	b := &Board{
		zt:          zt,
		repetitions: map[ZobristHash]int{current.hash: 1},
		current:     current,
	}
	b.adjudicate() // the given position may already be decided.
	return b
}

// NewStartBoard returns a board set up in the standard starting position.
func NewStartBoard(zt *ZobristTable) *Board {
	return NewBoard(zt, NewStartPosition(zt))
}

// Fork branches off a new board sharing past-position history. The shared
// history must not be mutated via PopMove afterwards, since next pointers in
// shared nodes would go stale.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:          b.zt,
		repetitions: map[ZobristHash]int{},
		result:      b.result,
		current: &node{
			pos:  b.current.pos,
			hash: b.current.hash,
			prev: b.current.prev,
		},
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}
	return fork
}

func (b *Board) Position() *Position {
	return b.current.pos
}

func (b *Board) Turn() Color {
	return b.current.pos.Turn()
}

func (b *Board) NoProgress() int {
	return b.current.pos.HalfMoveClock()
}

func (b *Board) FullMoves() int {
	return b.current.pos.FullMoveNumber()
}

func (b *Board) Hash() ZobristHash {
	return b.current.hash
}

func (b *Board) Result() Result {
	return b.result
}

// PushMove attempts a pseudo-legal move by board notation. Returns false if
// the move is not legal from the current position.
func (b *Board) PushMove(m Move) bool {
	if b.result.Outcome != Undecided {
		return false
	}

	next, resolved, ok := b.current.pos.Move(m)
	if !ok {
		return false
	}

	n := &node{pos: next, hash: next.Hash(), prev: b.current}
	b.current.next = resolved
	b.current = n

	b.repetitions[b.current.hash]++

	b.adjudicate()
	return true
}

func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	b.repetitions[b.current.hash]--
	b.result = Result{Outcome: Undecided}

	m := b.current.prev.next
	b.current.prev.next = Move{}
	b.current = b.current.prev
	return m, true
}

// adjudicate updates b.result from the current position's goal check plus
// board-level draw conditions (no-progress, repetition). Called after every
// PushMove; AdjudicateNoLegalMoves covers the no-legal-move case, which the
// caller (search or the UGI loop) must check explicitly since Board has no
// move generator of its own to drive.
func (b *Board) adjudicate() {
	if w := b.current.pos.Winner(); w.Outcome != Undecided {
		b.result = w
		return
	}
	if b.current.pos.HalfMoveClock() >= noProgressLimit {
		b.result = Result{Outcome: Draw, Reason: NoProgress}
		return
	}
	if b.repetitions[b.current.hash] >= repetitionLimit {
		b.result = Result{Outcome: Draw, Reason: Repetition}
	}
}

// AdjudicateNoLegalMoves adjudicates the position given that the side to move
// has no legal move. Pijersi has no check/mate concept, so this is always a
// draw.
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	b.Adjudicate(result)
	return result
}

// Adjudicate forces the board's result, e.g. from an external arbiter.
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

// LastMove returns the last move played, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return Move{}, false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, hash=%x (count=%v), result=%v}", b.current.pos, b.current.hash, b.repetitions[b.current.hash], b.result)
}
