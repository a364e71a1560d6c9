package eval

import "github.com/hexfort/pijersi/pkg/board"

// Terminal returns the search score for a decided position from the
// perspective of turn (the side to move in that position): Win-ply when
// turn has won, -Win+ply when the opponent has, 0 for a draw. Callers pass
// ply = 0 and let IncrementMateDistance accumulate the distance on the way
// back up the tree.
func Terminal(result board.Result, turn board.Color, ply int) Score {
	switch result.Outcome {
	case board.WhiteWins:
		if turn == board.White {
			return Win - Score(ply)
		}
		return -Win + Score(ply)
	case board.BlackWins:
		if turn == board.Black {
			return Win - Score(ply)
		}
		return -Win + Score(ply)
	default:
		return ZeroScore
	}
}
