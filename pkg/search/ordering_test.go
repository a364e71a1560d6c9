package search

import (
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A white scissors next to a black paper: one capture among a handful of
// quiet moves.
const capturePSN = "6/7/2p-3/3S-3/6/7/6 w 0 1"

func TestOrderMoves_CapturesBeforeQuiets(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos, err := psn.DecodeString(zt, capturePSN)
	require.NoError(t, err)

	moves := pos.LegalMoves()
	orderMoves(pos, moves, board.Move{})

	require.NotEmpty(t, moves)
	assert.True(t, moves[0].IsCapture(), "capture must explore first, got %v", moves[0])
	for i := 1; i < len(moves); i++ {
		assert.False(t, moves[i].IsCapture(), "only one capture exists in %v", capturePSN)
	}
}

func TestOrderMoves_HashMoveOutranksCaptures(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos, err := psn.DecodeString(zt, capturePSN)
	require.NoError(t, err)

	moves := pos.LegalMoves()
	var quiet board.Move
	for _, m := range moves {
		if !m.IsCapture() {
			quiet = m
			break
		}
	}
	require.False(t, quiet.IsNull())

	orderMoves(pos, moves, quiet)
	assert.True(t, moves[0].Equals(quiet), "hash move %v must explore before the capture, got %v", quiet, moves[0])
	assert.True(t, moves[1].IsCapture())
}

func TestOrderMoves_QuietMovesKeepGeneratorOrder(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	generated := pos.LegalMoves()
	ordered := append([]board.Move(nil), generated...)
	orderMoves(pos, ordered, board.Move{})

	// No captures exist in the start position, so ordering must be a no-op
	// on the sequence.
	require.Len(t, ordered, len(generated))
	for i := range generated {
		assert.True(t, generated[i].Equals(ordered[i]), "quiet move %v reordered", i)
	}
}

func TestOrderMoves_SingleAggressorBeforeStack(t *testing.T) {
	// Both a lone rock and a rock-topped stack can take the black scissors;
	// the lone piece risks less and explores first.
	zt := board.NewZobristTable(1)
	pos, err := psn.DecodeString(zt, "6/7/2s-3/2R-PR3/6/7/6 w 0 1")
	require.NoError(t, err)

	moves := pos.LegalMoves()
	orderMoves(pos, moves, board.Move{})

	var captures []board.Move
	for _, m := range moves {
		if m.IsCapture() {
			captures = append(captures, m)
		}
	}
	require.NotEmpty(t, captures)

	first, ok := pos.Square(captures[0].From)
	require.True(t, ok)
	assert.True(t, first.IsSingle(), "lone aggressor must explore before the stack, got %v from %v", captures[0], captures[0].From)
}
