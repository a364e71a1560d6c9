package eval

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Score is a signed static evaluation or search score, from the perspective
// of the side to move: a fixed-point integer, symmetric around zero, cropped
// to a fixed range, with a reserved band for mate-distance encoding.
// Pijersi has no natural "pawn" unit, so there is no float conversion.
//
// A terminal win for the side to move scores Win-ply; a loss scores
// -Win+ply. The band (MaxScore, Win] (and its mirror) is reserved for these
// mate scores so every plain evaluation is strictly smaller in magnitude.
type Score int32

const (
	// Win is the score of a position decided on the move just played, before
	// any mate-distance discount.
	Win Score = 100000

	// MaxScore/MinScore bound ordinary (non-mate) evaluations.
	MaxScore Score = Win - 1000
	MinScore Score = -MaxScore

	// InfScore/NegInfScore bound the search window; they compare strictly
	// outside any real score, mate or not.
	InfScore    Score = Win + 1
	NegInfScore Score = -InfScore

	// ZeroScore is a draw.
	ZeroScore Score = 0

	// InvalidScore is a sentinel for "no score computed", distinct from
	// ZeroScore. Used by cancelled searches and unset Context bounds.
	InvalidScore Score = math.MinInt32
)

func (s Score) String() string {
	if s.IsInvalid() {
		return "?"
	}
	if d, ok := s.MateDistance(); ok {
		return fmt.Sprintf("mate(%v)", d)
	}
	return fmt.Sprintf("%v", int32(s))
}

// IsInvalid reports whether s is the InvalidScore sentinel.
func (s Score) IsInvalid() bool {
	return s == InvalidScore
}

// Negate flips perspective, the way negamax propagates a child's score back
// to its parent. The sentinel is left untouched: negating "no score" is
// still "no score".
func (s Score) Negate() Score {
	if s.IsInvalid() {
		return s
	}
	return -s
}

// Less reports whether s is a worse outcome for the side it is relative to
// than o, i.e. ordinary signed comparison.
func (s Score) Less(o Score) bool {
	return s < o
}

// MateDistance reports the number of plies to the decisive goal if s falls in
// the reserved mate band, win (positive) or loss (negative distance would be
// ambiguous, so the sign of the outcome is carried by the sign of s itself,
// not of the returned ply count).
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > MaxScore:
		return int(Win - s), true
	case s < MinScore:
		return int(Win + s), true
	default:
		return 0, false
	}
}

// IncrementMateDistance adds one ply of distance to a mate score as it is
// propagated up the tree one more ply from the leaf that detected it;
// ordinary scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > MaxScore:
		return s - 1
	case s < MinScore:
		return s + 1
	default:
		return s
	}
}

// Crop clamps s into [MinScore;MaxScore], discarding any mate-band encoding.
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of two orderable values.
func Max[T constraints.Ordered](a, b T) T {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of two orderable values.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
