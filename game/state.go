package game

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"strings"
)

// State is a complete game snapshot. It is a plain value: copying the struct
// copies the whole position, so Apply can hand out fresh states without any
// aliasing between search branches.
//
// Board cells hold 0 for empty, +id for a Red piece, -id for a Blue piece.
// Piece positions are tracked per side and are only meaningful while the
// corresponding alive bit (bit id-1) is set.
type State struct {
	Board     [BoardSize][BoardSize]int8
	Red       [6]Cell
	Blue      [6]Cell
	AliveRed  uint8
	AliveBlue uint8
	Turn      Player
}

// StateHash identifies a position for table lookups and replay checks.
type StateHash uint64

func pieceBit(id int) uint8 {
	return 1 << (id - 1)
}

// NewGame builds the starting state from per-side layouts. Each layout gives
// the cell of piece id i+1 and must cover that side's six start cells
// exactly once.
func NewGame(layoutRed, layoutBlue [6]Cell, first Player) (State, error) {
	if err := validateLayout(layoutRed, StartCells(Red)); err != nil {
		return State{}, fmt.Errorf("red layout: %w", err)
	}
	if err := validateLayout(layoutBlue, StartCells(Blue)); err != nil {
		return State{}, fmt.Errorf("blue layout: %w", err)
	}

	s := State{
		Red:       layoutRed,
		Blue:      layoutBlue,
		AliveRed:  0b111111,
		AliveBlue: 0b111111,
		Turn:      first,
	}
	for i, c := range layoutRed {
		s.Board[c.Row][c.Col] = int8(i + 1)
	}
	for i, c := range layoutBlue {
		s.Board[c.Row][c.Col] = int8(-(i + 1))
	}
	return s, nil
}

func validateLayout(layout [6]Cell, allowed [6]Cell) error {
	zone := make(map[Cell]bool, 6)
	for _, c := range allowed {
		zone[c] = true
	}
	used := make(map[Cell]bool, 6)
	for _, c := range layout {
		if !zone[c] {
			return fmt.Errorf("cell %s is not a start cell", c)
		}
		if used[c] {
			return fmt.Errorf("cell %s used more than once", c)
		}
		used[c] = true
	}
	return nil
}

// FromBoard reconstructs a state from a signed board matrix, as used by the
// adapter's 25-cell CSV encoding.
func FromBoard(board [BoardSize][BoardSize]int8, turn Player) (State, error) {
	s := State{Turn: turn}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			cell := board[r][c]
			if cell == 0 {
				continue
			}
			id := int(cell)
			if id < 0 {
				id = -id
			}
			if id > 6 {
				return State{}, fmt.Errorf("piece id %d out of range at (%d,%d)", id, r, c)
			}
			if cell > 0 {
				if s.AliveRed&pieceBit(id) != 0 {
					return State{}, fmt.Errorf("duplicate red piece %d", id)
				}
				s.Red[id-1] = Cell{r, c}
				s.AliveRed |= pieceBit(id)
			} else {
				if s.AliveBlue&pieceBit(id) != 0 {
					return State{}, fmt.Errorf("duplicate blue piece %d", id)
				}
				s.Blue[id-1] = Cell{r, c}
				s.AliveBlue |= pieceBit(id)
			}
			s.Board[r][c] = cell
		}
	}
	return s, nil
}

// Alive reports whether the given piece is still on the board.
func (s State) Alive(p Player, id int) bool {
	if p == Red {
		return s.AliveRed&pieceBit(id) != 0
	}
	return s.AliveBlue&pieceBit(id) != 0
}

// AliveCount returns the number of surviving pieces for the given side.
func (s State) AliveCount(p Player) int {
	if p == Red {
		return bits.OnesCount8(s.AliveRed)
	}
	return bits.OnesCount8(s.AliveBlue)
}

// PieceCell returns the cell of the given piece and whether it is alive.
func (s State) PieceCell(p Player, id int) (Cell, bool) {
	if !s.Alive(p, id) {
		return Cell{}, false
	}
	if p == Red {
		return s.Red[id-1], true
	}
	return s.Blue[id-1], true
}

// Apply plays a move for the side to move and returns the resulting state.
// Any occupant of the destination, friendly or enemy, is captured. The
// receiver is left untouched.
func (s State) Apply(m Move) State {
	next := s
	mover := s.Turn

	next.Board[m.From.Row][m.From.Col] = 0

	// Capture whatever sits on the destination.
	if occupant := next.Board[m.To.Row][m.To.Col]; occupant != 0 {
		if occupant > 0 {
			next.AliveRed &^= pieceBit(int(occupant))
		} else {
			next.AliveBlue &^= pieceBit(int(-occupant))
		}
	}

	if mover == Red {
		next.Red[m.PieceID-1] = m.To
		next.Board[m.To.Row][m.To.Col] = int8(m.PieceID)
	} else {
		next.Blue[m.PieceID-1] = m.To
		next.Board[m.To.Row][m.To.Col] = int8(-m.PieceID)
	}

	next.Turn = mover.Opponent()
	return next
}

// Winner reports the winning side if the state is terminal. Red's goal
// occupancy and Blue elimination are checked before the Blue conditions,
// matching the rule priority.
func (s State) Winner() (Player, bool) {
	if s.Board[TargetRed.Row][TargetRed.Col] > 0 || s.AliveBlue == 0 {
		return Red, true
	}
	if s.Board[TargetBlue.Row][TargetBlue.Col] < 0 || s.AliveRed == 0 {
		return Blue, true
	}
	return Red, false
}

// Terminal reports whether the game is over.
func (s State) Terminal() bool {
	_, done := s.Winner()
	return done
}

// Hash folds the board layout, alive masks, and side to move into a 64-bit key.
func (s State) Hash() StateHash {
	h := fnv.New64a()
	var buf [28]byte
	buf[0] = byte(s.Turn)
	i := 1
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			buf[i] = byte(s.Board[r][c])
			i++
		}
	}
	buf[26] = s.AliveRed
	buf[27] = s.AliveBlue
	h.Write(buf[:])
	return StateHash(h.Sum64())
}

// BoardCSV renders the board as 25 comma-separated signed integers in
// row-major order, the encoding used on the adapter wire.
func (s State) BoardCSV() string {
	var b strings.Builder
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if r != 0 || c != 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", s.Board[r][c])
		}
	}
	return b.String()
}

// String renders the board for logs and debugging.
func (s State) String() string {
	var b strings.Builder
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			switch cell := s.Board[r][c]; {
			case cell == 0:
				b.WriteString(" .")
			case cell > 0:
				fmt.Fprintf(&b, "R%d", cell)
			default:
				fmt.Fprintf(&b, "B%d", -cell)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
