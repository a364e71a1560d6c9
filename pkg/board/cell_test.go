package board_test

import (
	"testing"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		str      string
		row, col int
	}{
		{"a1", 6, 0}, // bottom-left, White's home row
		{"a6", 6, 5},
		{"b1", 5, 0},
		{"b7", 5, 6}, // the wide rows have a 7th column
		{"d4", 3, 3}, // board center
		{"f7", 1, 6},
		{"g1", 0, 0}, // top row, Black's home row
		{"g6", 0, 5},
	}

	for _, test := range tests {
		c, err := board.ParseCellStr(test.str)
		require.NoError(t, err, "cell %v", test.str)
		assert.Equal(t, test.row, c.Row(), "row of %v", test.str)
		assert.Equal(t, test.col, c.Col(), "col of %v", test.str)
		assert.Equal(t, test.str, c.String())
	}
}

func TestParseCell_CaseInsensitive(t *testing.T) {
	lower, err := board.ParseCellStr("d4")
	require.NoError(t, err)
	upper, err := board.ParseCellStr("D4")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func TestParseCell_Invalid(t *testing.T) {
	for _, str := range []string{"a7", "c7", "e7", "g7", "h1", "a0", "a8", "4a", "aa", "a", "a44"} {
		_, err := board.ParseCellStr(str)
		assert.Error(t, err, "cell %v should not parse", str)
	}
}

func TestCell_RoundTripsAllCells(t *testing.T) {
	for c := board.Cell(0); c < board.NumCells; c++ {
		got, err := board.ParseCellStr(c.String())
		require.NoError(t, err, "cell %v", c)
		assert.Equal(t, c, got)
	}
}

func TestNeighbor1_Symmetric(t *testing.T) {
	// Hex adjacency is symmetric: if n is reachable from c, c must be
	// reachable from n in some direction.
	for c := board.Cell(0); c < board.NumCells; c++ {
		for d := board.Direction(0); d < board.NumDirections; d++ {
			n, ok := board.Neighbor1(c, d)
			if !ok {
				continue
			}
			back := false
			for d2 := board.Direction(0); d2 < board.NumDirections; d2++ {
				if b, ok := board.Neighbor1(n, d2); ok && b == c {
					back = true
				}
			}
			assert.True(t, back, "%v -> %v has no back edge", c, n)
		}
	}
}

func TestNeighbor1_Counts(t *testing.T) {
	// The 45-cell hex board has 110 undirected adjacencies (38 horizontal,
	// 12 per row interface across 6 interfaces), so 220 directed edges.
	// Any shear in the row-parity offsets changes this total.
	total := 0
	for c := board.Cell(0); c < board.NumCells; c++ {
		total += len(board.Neighbors1(c))
	}
	assert.Equal(t, 220, total)
}

func TestNeighbor2_RequiresStraightLine(t *testing.T) {
	// A 2-step neighbor is two cells in the same direction; its
	// intermediate must be the 1-step neighbor in that direction.
	for c := board.Cell(0); c < board.NumCells; c++ {
		for d := board.Direction(0); d < board.NumDirections; d++ {
			n2, ok := board.Neighbor2(c, d)
			if !ok {
				continue
			}
			mid := board.Between2(c, d)
			n1, ok1 := board.Neighbor1(c, d)
			require.True(t, ok1, "%v has a 2-step but no 1-step neighbor in %v", c, d)
			assert.Equal(t, n1, mid)

			far, ok2 := board.Neighbor1(mid, d)
			require.True(t, ok2)
			assert.Equal(t, far, n2)
		}
	}
}
