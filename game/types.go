package game

import "fmt"

// BoardSize is the side length of the square board.
const BoardSize = 5

// Player identifies one of the two sides.
type Player int8

const (
	Red Player = iota
	Blue
)

func (p Player) Opponent() Player {
	if p == Red {
		return Blue
	}
	return Red
}

func (p Player) String() string {
	if p == Red {
		return "Red"
	}
	return "Blue"
}

// ParsePlayer converts a side token ("red"/"blue", case-insensitive, or the
// short forms "R"/"B") into a Player.
func ParsePlayer(token string) (Player, error) {
	switch token {
	case "RED", "Red", "red", "R", "r":
		return Red, nil
	case "BLUE", "Blue", "blue", "B", "b":
		return Blue, nil
	}
	return Red, fmt.Errorf("unknown player %q", token)
}

// Cell is a board coordinate, row and column in [0,4] from the top-left.
type Cell struct {
	Row, Col int
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Move relocates one piece a single step to an adjacent cell.
type Move struct {
	PieceID int
	From    Cell
	To      Cell
}

func (m Move) String() string {
	return fmt.Sprintf("piece %d %s->%s", m.PieceID, m.From, m.To)
}

// Targets and step directions. Red races toward the bottom-right corner,
// Blue toward the top-left.
var (
	TargetRed  = Cell{4, 4}
	TargetBlue = Cell{0, 0}

	directionsRed  = [3]Cell{{0, 1}, {1, 0}, {1, 1}}
	directionsBlue = [3]Cell{{0, -1}, {-1, 0}, {-1, -1}}
)

// Target returns the goal cell for the given player.
func Target(p Player) Cell {
	if p == Red {
		return TargetRed
	}
	return TargetBlue
}

// Directions returns the three step directions for the given player.
func Directions(p Player) [3]Cell {
	if p == Red {
		return directionsRed
	}
	return directionsBlue
}

// Evaluate scores a state from the given player's perspective; higher is
// better for that player.
type Evaluate func(State, Player) float64
