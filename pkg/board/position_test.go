package board_test

import (
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApply_HashStaysIncremental walks a fixed line of play and verifies
// after every ply that the incrementally maintained hash matches a from-
// scratch recomputation over the cells.
func TestApply_HashStaysIncremental(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	for ply := 0; ply < 40; ply++ {
		moves := pos.LegalMoves()
		if len(moves) == 0 {
			break
		}
		pos = pos.Apply(moves[ply%len(moves)])
		assert.Equal(t, zt.Hash(pos, pos.Turn()), pos.Hash(), "stale hash at ply %v", ply)
	}
}

// TestPushPop_RestoresBoard exercises the apply-then-undo identity for every
// legal opening move: cells, clocks and hash must all come back.
func TestPushPop_RestoresBoard(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartBoard(zt)

	hash := b.Hash()
	str := b.Position().String()

	for _, m := range b.Position().LegalMoves() {
		require.True(t, b.PushMove(m), "move %v did not apply", m)

		popped, ok := b.PopMove()
		require.True(t, ok)
		assert.True(t, m.Equals(popped))
		assert.Equal(t, hash, b.Hash(), "move %v did not restore the hash", m)
		assert.Equal(t, str, b.Position().String(), "move %v did not restore the cells", m)
	}
}

func TestApply_ShapeSemantics(t *testing.T) {
	tests := []struct {
		name string
		psn  string
		move string
		want string
	}{
		{
			"single step",
			"6/7/6/3S-3/6/7/6 w 0 1",
			"d4e3",
			"6/7/2S-3/7/6/7/6 b 1 1",
		},
		{
			"stacking",
			"6/7/6/3S-R-2/6/7/6 w 0 1",
			"d4d5",
			"6/7/6/4RS2/6/7/6 b 1 1",
		},
		{
			"capture resets the half-move clock",
			"6/7/2p-3/3S-3/6/7/6 w 5 3",
			"d4e3",
			"6/7/2S-3/7/6/7/6 b 0 3",
		},
		{
			"stack move",
			"6/7/6/3SR3/6/7/6 w 0 1",
			"d4d6",
			"6/7/6/5SR1/6/7/6 b 1 1",
		},
		{
			"stack then move",
			"6/7/6/3S-R-2/6/7/6 w 0 1",
			"d5d4d2",
			"6/7/6/1SR5/6/7/6 b 1 1",
		},
		{
			"moving unstack",
			"6/7/6/3SR3/6/7/6 w 0 1",
			"d4e3e2",
			"6/7/1R-S-3/7/6/7/6 b 1 1",
		},
		{
			"stationary unstack",
			"6/7/6/3SR3/6/7/6 w 0 1",
			"d4d4e3",
			"6/7/2R-3/3S-3/6/7/6 b 1 1",
		},
		{
			"unstack back onto the vacated origin",
			"6/7/6/3SR3/6/7/6 w 0 1",
			"d4e3d4",
			"6/7/2S-3/3R-3/6/7/6 b 1 1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			zt := board.NewZobristTable(1)
			pos, err := psn.DecodeString(zt, test.psn)
			require.NoError(t, err)

			from, to, via, hasVia, err := board.ParseMove(test.move)
			require.NoError(t, err)
			m, ok := pos.ResolveMove(from, to, via, hasVia)
			require.True(t, ok, "move %v not legal in %v", test.move, test.psn)

			next := pos.Apply(m)
			got := psn.Encode(next, next.Turn(), next.HalfMoveClock(), next.FullMoveNumber())
			assert.Equal(t, test.want, got)
			assert.Equal(t, zt.Hash(next, next.Turn()), next.Hash())
		})
	}
}

func TestWinner_GoalRow(t *testing.T) {
	tests := []struct {
		name string
		psn  string
		want board.Outcome
	}{
		{"white rock on top row wins", "5R-/7/6/7/6/7/6 w 0 1", board.WhiteWins},
		{"white stack topped by rock wins", "5SR/7/6/7/6/7/6 w 0 1", board.WhiteWins},
		{"white wise on top row does not win", "5W-/7/6/7/6/7/6 w 0 1", board.Undecided},
		{"black scissors on bottom row wins", "6/7/6/7/6/7/5s- w 0 1", board.BlackWins},
		{"black piece on its own home row is nothing", "s-5/7/6/7/6/7/6 w 0 1", board.Undecided},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			zt := board.NewZobristTable(1)
			pos, err := psn.DecodeString(zt, test.psn)
			require.NoError(t, err)
			assert.Equal(t, test.want, pos.Winner().Outcome)
		})
	}
}

func TestBoard_NoProgressDraw(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos, err := psn.DecodeString(zt, "6/7/6/3S-3/6/7/6 w 20 11")
	require.NoError(t, err)

	b := board.NewBoard(zt, pos)
	assert.Equal(t, board.Draw, b.Result().Outcome)
	assert.Equal(t, board.NoProgress, b.Result().Reason)
}

func TestBoard_GoalAdjudicatedOnPush(t *testing.T) {
	// A white paper one step from the goal row: pushing the winning move
	// ends the game, and no further moves apply.
	zt := board.NewZobristTable(1)
	pos, err := psn.DecodeString(zt, "6/3P-3/6/7/6/7/6 w 0 9")
	require.NoError(t, err)
	b := board.NewBoard(zt, pos)

	m, ok := b.Position().ResolveMove(mustCell(t, "f4"), mustCell(t, "g3"), 0, false)
	require.True(t, ok)
	require.True(t, b.PushMove(m))

	assert.Equal(t, board.WhiteWins, b.Result().Outcome)
	assert.Equal(t, board.Goal, b.Result().Reason)
	assert.Empty(t, b.Position().LegalMoves())
}

func TestBoard_RepetitionDraw(t *testing.T) {
	// Two lone wise pieces shuffling back and forth repeat the start
	// position for the third time on ply 8.
	zt := board.NewZobristTable(1)
	pos, err := psn.DecodeString(zt, "6/3w-3/6/7/6/3W-3/6 w 0 1")
	require.NoError(t, err)
	b := board.NewBoard(zt, pos)

	line := []string{"b4c3", "f4e3", "c3b4", "e3f4", "b4c3", "f4e3", "c3b4", "e3f4"}
	for i, str := range line {
		from, to, via, hasVia, err := board.ParseMove(str)
		require.NoError(t, err)
		m, ok := b.Position().ResolveMove(from, to, via, hasVia)
		require.True(t, ok, "move %v (%v) not legal", i, str)
		require.True(t, b.PushMove(m), "move %v (%v) rejected", i, str)
	}

	assert.Equal(t, board.Draw, b.Result().Outcome)
	assert.Equal(t, board.Repetition, b.Result().Reason)
}

func TestFork_IsolatesHistory(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartBoard(zt)

	fork := b.Fork()
	m := fork.Position().LegalMoves()[0]
	require.True(t, fork.PushMove(m))

	assert.NotEqual(t, b.Hash(), fork.Hash())
	assert.Equal(t, board.NewStartPosition(zt).Hash(), b.Hash())
}
