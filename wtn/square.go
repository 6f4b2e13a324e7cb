// Package wtn reads and writes the text notation for game records: column
// letters A-E, row digits 1-5 (A1 is the top-left cell), layout lines with
// one id permutation per side, and one move per line.
package wtn

import (
	"fmt"

	"einstein/game"
)

const (
	columns = "ABCDE"
	rows    = "12345"
)

// FormatSquare renders a cell as its square name, e.g. (0,0) -> "A1".
func FormatSquare(c game.Cell) (string, error) {
	if !c.InBounds() {
		return "", fmt.Errorf("cell %s out of bounds", c)
	}
	return string(columns[c.Col]) + string(rows[c.Row]), nil
}

// ParseSquare converts a square name such as "C3" back into a cell.
func ParseSquare(sq string) (game.Cell, error) {
	if len(sq) != 2 {
		return game.Cell{}, fmt.Errorf("invalid square %q", sq)
	}
	col := -1
	for i := 0; i < len(columns); i++ {
		if columns[i] == sq[0] {
			col = i
			break
		}
	}
	if col < 0 {
		return game.Cell{}, fmt.Errorf("invalid column in square %q", sq)
	}
	row := -1
	for i := 0; i < len(rows); i++ {
		if rows[i] == sq[1] {
			row = i
			break
		}
	}
	if row < 0 {
		return game.Cell{}, fmt.Errorf("invalid row in square %q", sq)
	}
	return game.Cell{Row: row, Col: col}, nil
}
