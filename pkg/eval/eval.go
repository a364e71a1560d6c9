// Package eval contains static position evaluation for Pijersi.
package eval

import (
	"context"

	"github.com/hexfort/pijersi/pkg/board"
)

// Evaluator is a static position evaluator, always from the perspective of
// the side to move: eval(P, C) == -eval(P, notC) for Material, Advancement
// and a noise-free Standard, since every term below is computed once per
// color and subtracted. Noise jitter is keyed off the position hash and does
// not keep this symmetry.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position) Score
}

// kindValue is the nominal value of a piece kind. Scissors, Paper and Rock
// are interchangeable under the rock-paper-scissors symmetry, so they share
// a value; Wise is weighted lower since it has no offensive value but is
// never removed from play by capture, and underwrites stacking mobility.
func kindValue(k board.Kind) Score {
	switch k {
	case board.Wise:
		return 2
	case board.Scissors, board.Paper, board.Rock:
		return 3
	default:
		return 0
	}
}

// CaptureValue exposes kindValue for move ordering in pkg/search, which
// ranks captures by the value of the piece taken without pulling in a full
// Evaluator.
func CaptureValue(k board.Kind) Score {
	return kindValue(k)
}

// stackBonus rewards a 2-piece stack beyond the sum of its parts: a stack
// moves 1 or 2 cells and unstacks, so it commands more of the board than two
// loose singles.
const stackBonus Score = 1

// Material scores the material and stacking-mobility balance for the side to
// move.
type Material struct{}

func (Material) Evaluate(ctx context.Context, pos *board.Position) Score {
	turn := pos.Turn()
	return colorMaterial(pos, turn) - colorMaterial(pos, turn.Opponent())
}

func colorMaterial(pos *board.Position, c board.Color) Score {
	var total Score
	for cell := board.Cell(0); cell < board.NumCells; cell++ {
		s, ok := pos.Square(cell)
		if !ok || s.Color != c {
			continue
		}
		total += kindValue(s.Top)
		if !s.IsSingle() {
			total += kindValue(s.Bottom) + stackBonus
		}
	}
	return total
}

// Advancement scores progress toward the opponent's goal row, using a
// cell-indexed per-color table computed once at startup.
type Advancement struct{}

func (Advancement) Evaluate(ctx context.Context, pos *board.Position) Score {
	turn := pos.Turn()
	return colorAdvancement(pos, turn) - colorAdvancement(pos, turn.Opponent())
}

func colorAdvancement(pos *board.Position, c board.Color) Score {
	var total Score
	for cell := board.Cell(0); cell < board.NumCells; cell++ {
		s, ok := pos.Square(cell)
		if !ok || s.Color != c {
			continue
		}
		total += advanceTable[c][cell]
		if !s.IsSingle() {
			total += advanceTable[c][cell]
		}
	}
	return total
}

// advanceTable[c][cell] is the positional bonus for color c owning a piece
// on cell: distance already closed toward c's goal row, one score unit per
// row, so crossing the full board (6 rows) is worth as much as two non-Wise
// pieces of material.
var advanceTable [board.NumColors][board.NumCells]Score

func init() {
	for c := board.White; c < board.NumColors; c++ {
		home := board.GoalRow(c.Opponent())
		for cell := board.Cell(0); cell < board.NumCells; cell++ {
			progress := cell.Row() - home
			if progress < 0 {
				progress = -progress
			}
			advanceTable[c][cell] = Score(progress)
		}
	}
}

// Standard combines material and positional terms into the engine's default
// static evaluator.
type Standard struct {
	Noise Random
}

func (s Standard) Evaluate(ctx context.Context, pos *board.Position) Score {
	base := Material{}.Evaluate(ctx, pos) + Advancement{}.Evaluate(ctx, pos)
	return Crop(s.Noise.Apply(pos, base))
}
