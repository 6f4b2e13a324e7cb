package game

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	startRed  = [6]Cell{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 0}}
	startBlue = [6]Cell{{4, 4}, {4, 3}, {4, 2}, {3, 4}, {3, 3}, {2, 4}}
)

// StartCells returns the six fixed start cells for a side, ordered from the
// corner outward.
func StartCells(p Player) [6]Cell {
	if p == Red {
		return startRed
	}
	return startBlue
}

// Arrangement assigns piece ids to start cells: entry i is the id of the
// piece placed on StartCells(p)[i].
type Arrangement [6]int

// DefaultArrangement places ids in ascending order from the corner.
var DefaultArrangement = Arrangement{1, 2, 3, 4, 5, 6}

// Validate checks that the arrangement is a permutation of 1..6.
func (a Arrangement) Validate() error {
	var seen [7]bool
	for _, id := range a {
		if id < 1 || id > 6 {
			return fmt.Errorf("piece id %d out of range", id)
		}
		if seen[id] {
			return fmt.Errorf("piece id %d listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

// Layout converts the arrangement into per-piece coordinates for NewGame:
// the returned array holds the cell of piece id i+1.
func (a Arrangement) Layout(p Player) [6]Cell {
	cells := StartCells(p)
	var layout [6]Cell
	for i, id := range a {
		layout[id-1] = cells[i]
	}
	return layout
}

func (a Arrangement) String() string {
	parts := make([]string, 6)
	for i, id := range a {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseArrangement parses a comma-separated permutation such as "1,2,3,4,5,6".
func ParseArrangement(raw string) (Arrangement, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 6 {
		return Arrangement{}, fmt.Errorf("arrangement must list 6 piece ids, got %d", len(parts))
	}
	var a Arrangement
	for i, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Arrangement{}, fmt.Errorf("invalid piece id %q", part)
		}
		a[i] = id
	}
	if err := a.Validate(); err != nil {
		return Arrangement{}, err
	}
	return a, nil
}

// NewGameFromArrangements is a convenience wrapper combining Layout and NewGame.
func NewGameFromArrangements(red, blue Arrangement, first Player) (State, error) {
	if err := red.Validate(); err != nil {
		return State{}, fmt.Errorf("red arrangement: %w", err)
	}
	if err := blue.Validate(); err != nil {
		return State{}, fmt.Errorf("blue arrangement: %w", err)
	}
	return NewGame(red.Layout(Red), blue.Layout(Blue), first)
}
