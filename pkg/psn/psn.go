// Package psn decodes and encodes positions in Pijersi Standard Notation
// (PSN), the FEN-analogue for Pijersi: seven slash-separated rows, top to
// bottom, then side to move, half-move clock and full-move number. The
// engine core consumes PSN only through board.Position; its own debug
// String() forms differ.
package psn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/hexfort/pijersi/pkg/board"
)

// Initial is the PSN string for the standard Pijersi starting position.
const Initial = "s-p-r-s-p-r-/p-r-s-wwr-s-p-/6/7/6/P-S-R-WWS-R-P-/R-P-S-R-P-S- w 0 1"

// Decode parses a PSN string into a position, side to move, half-move clock
// and full-move number.
func Decode(zt *board.ZobristTable, psn string) (*board.Position, board.Color, int, int, error) {
	fields := strings.Fields(strings.TrimSpace(psn))
	if len(fields) != 4 {
		return nil, 0, 0, 0, fmt.Errorf("psn: expected 4 space-separated fields, got %d: %q", len(fields), psn)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != board.NumRows {
		return nil, 0, 0, 0, fmt.Errorf("psn: expected %d rows, got %d: %q", board.NumRows, len(rows), psn)
	}

	var placements []board.Placement
	for row, line := range rows {
		width := rowWidth(row)
		col := 0
		runes := []rune(line)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			switch {
			case unicode.IsDigit(r):
				col += int(r - '0')

			case isPieceLetter(r):
				if i+1 >= len(runes) {
					return nil, 0, 0, 0, fmt.Errorf("psn: truncated cell in row %d: %q", row, line)
				}
				s, err := parseCell(r, runes[i+1])
				if err != nil {
					return nil, 0, 0, 0, fmt.Errorf("psn: %w (row %d: %q)", err, row, line)
				}
				i++

				if col >= width {
					return nil, 0, 0, 0, fmt.Errorf("psn: row %d overflows its width %d: %q", row, width, line)
				}
				placements = append(placements, board.Placement{Cell: board.NewCell(row, col), Stack: s})
				col++

			default:
				return nil, 0, 0, 0, fmt.Errorf("psn: unexpected character %q in row %d: %q", r, row, line)
			}
		}
		if col != width {
			return nil, 0, 0, 0, fmt.Errorf("psn: row %d has width %d, want %d: %q", row, col, width, line)
		}
	}

	turn, ok := parseColor(fields[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("psn: invalid side to move: %q", fields[1])
	}
	halfmove, err := strconv.Atoi(fields[2])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, 0, fmt.Errorf("psn: invalid half-move clock: %q", fields[2])
	}
	fullmove, err := strconv.Atoi(fields[3])
	if err != nil || fullmove < 1 {
		return nil, 0, 0, 0, fmt.Errorf("psn: invalid full-move number: %q", fields[3])
	}

	pos, err := board.NewPosition(zt, turn, halfmove, fullmove, placements)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("psn: %w", err)
	}
	return pos, turn, halfmove, fullmove, nil
}

// DecodeString is a convenience wrapper for callers that only need the
// position itself (e.g. tests), discarding the separately-returned fields.
func DecodeString(zt *board.ZobristTable, psn string) (*board.Position, error) {
	pos, _, _, _, err := Decode(zt, psn)
	return pos, err
}

// Encode renders a position, side to move, half-move clock and full-move
// number as a PSN string.
func Encode(pos *board.Position, turn board.Color, halfmove, fullmove int) string {
	var sb strings.Builder
	for row := 0; row < board.NumRows; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		width := rowWidth(row)
		run := 0
		for col := 0; col < width; col++ {
			c := board.NewCell(row, col)
			s, ok := pos.Square(c)
			if !ok {
				run++
				continue
			}
			if run > 0 {
				sb.WriteString(strconv.Itoa(run))
				run = 0
			}
			sb.WriteString(printCellPieces(s))
		}
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(printColor(turn))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(fullmove))
	return sb.String()
}

func rowWidth(row int) int {
	if row%2 == 0 {
		return 6
	}
	return 7
}

func isPieceLetter(r rune) bool {
	_, ok := board.ParseKind(r)
	return ok
}

// parseCell reads the two-letter pair that represents one cell's contents:
// "x-" for a single piece (the second letter is a literal '-'), "bt" for a
// 2-piece stack (bottom then top). Color is carried by letter case and must
// agree between the two letters of a stack.
func parseCell(first, second rune) (board.Stack, error) {
	bottomOrTop, ok := board.ParseKind(first)
	if !ok {
		return board.Stack{}, fmt.Errorf("invalid piece letter %q", first)
	}
	color := colorOf(first)

	if second == '-' {
		return board.Stack{Color: color, Top: bottomOrTop}, nil
	}

	top, ok := board.ParseKind(second)
	if !ok {
		return board.Stack{}, fmt.Errorf("invalid piece letter %q", second)
	}
	if colorOf(second) != color {
		return board.Stack{}, fmt.Errorf("mixed-color stack %q%q", first, second)
	}
	return board.Stack{Color: color, Bottom: bottomOrTop, Top: top}, nil
}

func colorOf(r rune) board.Color {
	if unicode.IsUpper(r) {
		return board.White
	}
	return board.Black
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func printCellPieces(s board.Stack) string {
	return s.String()
}
