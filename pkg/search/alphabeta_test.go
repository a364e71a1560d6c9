package search_test

import (
	"context"
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
	"github.com/hexfort/pijersi/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphaBeta_Depth1ReturnsLegalMove(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartBoard(zt)

	sctx := &search.Context{
		Alpha: eval.InvalidScore,
		Beta:  eval.InvalidScore,
		TT:    search.NewTranspositionTable(context.Background(), 1<<20),
	}
	ab := search.AlphaBeta{}

	nodes, score, pv, err := ab.Search(context.Background(), sctx, b, 1)
	require.NoError(t, err)
	assert.Greater(t, nodes, uint64(0))
	assert.NotEmpty(t, pv)
	assert.False(t, score.IsInvalid())

	legal := b.Position().LegalMoves()
	found := false
	for _, m := range legal {
		if m.Equals(pv[0]) {
			found = true
		}
	}
	assert.True(t, found, "best move %v must be legal", pv[0])
}

func TestAlphaBeta_DeeperSearchUsesMoreOrEqualNodes(t *testing.T) {
	zt := board.NewZobristTable(1)

	search1 := func(depth int) uint64 {
		b := board.NewStartBoard(zt)
		sctx := &search.Context{
			Alpha: eval.InvalidScore,
			Beta:  eval.InvalidScore,
			TT:    search.NewTranspositionTable(context.Background(), 1<<20),
		}
		nodes, _, _, err := search.AlphaBeta{}.Search(context.Background(), sctx, b, depth)
		require.NoError(t, err)
		return nodes
	}

	assert.GreaterOrEqual(t, search1(2), search1(1))
}

func TestAlphaBeta_ReusesTranspositionTableAcrossCalls(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := board.NewStartBoard(zt)
	tt := search.NewTranspositionTable(context.Background(), 1<<20)

	sctx := &search.Context{Alpha: eval.InvalidScore, Beta: eval.InvalidScore, TT: tt}
	_, _, _, err := search.AlphaBeta{}.Search(context.Background(), sctx, b, 2)
	require.NoError(t, err)
	assert.Greater(t, tt.Used(), 0.0)
}
