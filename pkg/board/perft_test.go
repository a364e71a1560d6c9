package board_test

import (
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/stretchr/testify/assert"
)

// TestPerft_StartPosition checks the reference leaf counts for the standard
// starting position, the hard equality gate on move-generator correctness.
func TestPerft_StartPosition(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	assert.Equal(t, int64(186), board.Perft(pos, 1))
	assert.Len(t, pos.LegalMoves(), 186)
	assert.Equal(t, int64(34054), board.Perft(pos, 2))
}

func TestPerft_StartPositionDepth3(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 6.4M-node perft in short mode")
	}
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	assert.Equal(t, int64(6410472), board.Perft(pos, 3))
}

func TestPerft_ZeroDepthIsOneLeaf(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	assert.Equal(t, int64(1), board.Perft(pos, 0))
}

func TestDividedPerft_SumsToPerft(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	divided := board.DividedPerft(pos, 2)

	var sum int64
	for _, n := range divided {
		sum += n
	}
	assert.Equal(t, board.Perft(pos, 2), sum)
}

func TestPerft_NoDuplicateMovesGenerated(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	moves := pos.LegalMoves()
	seen := make(map[board.Move]bool, len(moves))
	for _, m := range moves {
		assert.False(t, seen[m], "duplicate move generated: %v", m)
		seen[m] = true
	}
}

// TestPerft_EveryGeneratedMoveAgreesWithFreshHash checks that applying any
// generated move yields a position whose incrementally maintained hash
// matches one recomputed from scratch.
func TestPerft_EveryGeneratedMoveAgreesWithFreshHash(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := board.NewStartPosition(zt)

	for _, m := range pos.LegalMoves() {
		next := pos.Apply(m)
		assert.Equal(t, zt.Hash(next, next.Turn()), next.Hash(), "move %v left a stale hash", m)
	}
}
