package board

import "fmt"

// Placement is a single cell's contents, used to build a Position from an
// external textual form (PSN) without exposing the packed cell encoding.
type Placement struct {
	Cell  Cell
	Stack Stack
}

// NewPosition builds a position from an explicit set of placements, one per
// occupied cell. Cells not named are empty. Returns an error if a cell is
// named twice or a stack is malformed (e.g. an invalid kind, or a non-Wise
// piece on a Wise bottom).
func NewPosition(zt *ZobristTable, turn Color, halfmove, fullmove int, placements []Placement) (*Position, error) {
	p := &Position{turn: turn, halfmove: halfmove, fullmove: fullmove, zt: zt}

	seen := make(map[Cell]bool, len(placements))
	for _, pl := range placements {
		if !pl.Cell.IsValid() {
			return nil, fmt.Errorf("board: invalid cell in placement: %v", pl.Cell)
		}
		if seen[pl.Cell] {
			return nil, fmt.Errorf("board: cell %v placed twice", pl.Cell)
		}
		seen[pl.Cell] = true

		if err := pl.Stack.validate(); err != nil {
			return nil, fmt.Errorf("board: invalid stack on %v: %w", pl.Cell, err)
		}
		p.cells[pl.Cell] = pack(pl.Stack.Color, pl.Stack.Top, pl.Stack.Bottom)
	}

	p.hash = p.recomputeHash()
	return p, nil
}
