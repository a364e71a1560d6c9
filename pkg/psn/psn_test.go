package psn_test

import (
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Initial(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos, turn, halfmove, fullmove, err := psn.Decode(zt, psn.Initial)
	require.NoError(t, err)
	assert.Equal(t, board.White, turn)
	assert.Equal(t, 0, halfmove)
	assert.Equal(t, 1, fullmove)

	want := board.NewStartPosition(zt)
	assert.Equal(t, want.Hash(), pos.Hash())
}

func TestEncode_RoundTripsInitial(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	got := psn.Encode(pos, board.White, 0, 1)
	assert.Equal(t, psn.Initial, got)
}

// TestApplyMove_StackThenMoveFromStart applies a4b5c4 (stack the a4 rock
// onto the b5 scissors, then advance the pair to c4) and checks the exact
// resulting PSN.
func TestApplyMove_StackThenMoveFromStart(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	from, to, via, hasVia, err := board.ParseMove("a4b5c4")
	require.NoError(t, err)
	require.True(t, hasVia)

	m, ok := pos.ResolveMove(from, to, via, hasVia)
	require.True(t, ok)

	next := pos.Apply(m)

	want := "s-p-r-s-p-r-/p-r-s-wwr-s-p-/6/7/3SR2/P-S-R-WW1R-P-/R-P-S-1P-S- b 1 1"
	got := psn.Encode(next, next.Turn(), next.HalfMoveClock(), next.FullMoveNumber())
	assert.Equal(t, want, got)
}

func TestDecode_RejectsMixedColorStack(t *testing.T) {
	zt := board.NewZobristTable(1)
	bad := "Sp5/7/6/7/6/7/6 w 0 1"
	_, err := psn.DecodeString(zt, bad)
	assert.Error(t, err)
}
