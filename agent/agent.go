// Package agent defines the move-choosing strategies that can play the game:
// random, heuristic, and full expectiminimax search. Strategies are selected
// once at configuration time and used behind the single Agent interface.
package agent

import (
	"errors"
	"sort"
	"time"

	"einstein/game"
)

// ErrNoLegalMoves is returned when an agent is asked to move for a side with
// no surviving pieces.
var ErrNoLegalMoves = errors.New("agent: no legal moves available")

// Agent chooses moves and an opening layout. Implementations draw all
// randomness from their own seeded generator, so identical seeds reproduce
// identical decisions.
type Agent interface {
	// ChooseMove returns a legal move for the side to move given the die
	// roll. A zero budget means no deadline.
	ChooseMove(state game.State, die int, budget time.Duration) (game.Move, error)
	// ChooseLayout returns the opening arrangement for the given side.
	ChooseLayout(p game.Player, budget time.Duration) (game.Arrangement, error)
}

// forwardArrangement assigns high piece ids to the start cells closest to
// the goal, a solid default opening for agents that do not search layouts.
func forwardArrangement(p game.Player) game.Arrangement {
	cells := game.StartCells(p)
	target := game.Target(p)
	indices := []int{0, 1, 2, 3, 4, 5}
	dist := func(c game.Cell) int {
		dr := target.Row - c.Row
		if dr < 0 {
			dr = -dr
		}
		dc := target.Col - c.Col
		if dc < 0 {
			dc = -dc
		}
		return dr + dc
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return dist(cells[indices[i]]) < dist(cells[indices[j]])
	})

	var a game.Arrangement
	id := 6
	for _, idx := range indices {
		a[idx] = id
		id--
	}
	return a
}
