package board_test

import (
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCell(t *testing.T, str string) board.Cell {
	t.Helper()
	c, err := board.ParseCellStr(str)
	require.NoError(t, err)
	return c
}

func TestMove_String(t *testing.T) {
	tests := []struct {
		move board.Move
		str  string
	}{
		{board.Move{Shape: board.Single, From: mustCell(t, "a4"), To: mustCell(t, "b5")}, "a4b5"},
		{board.Move{Shape: board.StackMove, From: mustCell(t, "b4"), To: mustCell(t, "d3")}, "b4d3"},
		{board.Move{Shape: board.StackThenMove, From: mustCell(t, "a4"), Via: mustCell(t, "b5"), To: mustCell(t, "c4")}, "a4b5c4"},
		{board.Move{Shape: board.Unstack, From: mustCell(t, "b4"), Via: mustCell(t, "c3"), To: mustCell(t, "c2")}, "b4c3c2"},
		// A stationary unstack repeats the origin cell.
		{board.Move{Shape: board.Unstack, From: mustCell(t, "b4"), Via: mustCell(t, "b4"), To: mustCell(t, "c3")}, "b4b4c3"},
	}

	for _, test := range tests {
		assert.Equal(t, test.str, test.move.String())
	}
}

func TestParseMove(t *testing.T) {
	from, to, via, hasVia, err := board.ParseMove("a4b5")
	require.NoError(t, err)
	assert.False(t, hasVia)
	assert.Equal(t, mustCell(t, "a4"), from)
	assert.Equal(t, mustCell(t, "b5"), to)

	from, to, via, hasVia, err = board.ParseMove("a4b5c4")
	require.NoError(t, err)
	assert.True(t, hasVia)
	assert.Equal(t, mustCell(t, "a4"), from)
	assert.Equal(t, mustCell(t, "b5"), via)
	assert.Equal(t, mustCell(t, "c4"), to)

	for _, bad := range []string{"", "a4", "a4b5c", "a4h5", "a7b5", "a4b5c4d5"} {
		_, _, _, _, err := board.ParseMove(bad)
		assert.Error(t, err, "move %q should not parse", bad)
	}
}

func TestMove_EncodeDecodeRoundTrip(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	for _, m := range pos.LegalMoves() {
		got := board.DecodeMove(m.Encode())
		assert.True(t, m.Equals(got), "move %v did not round-trip: %v", m, got)
	}
}

func TestMove_ZeroValueIsNull(t *testing.T) {
	var m board.Move
	assert.True(t, m.IsNull())
	assert.Equal(t, uint32(0), m.Encode())
	assert.True(t, board.DecodeMove(0).IsNull())

	zt := board.NewZobristTable(1)
	for _, legal := range board.NewStartPosition(zt).LegalMoves() {
		assert.False(t, legal.IsNull(), "legal move %v must not collide with the null move", legal)
	}
}
