package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"einstein/game"
)

// Heuristic picks moves by a cheap fixed priority: immediate win, then
// capturing an enemy piece, then shortest distance to the goal. The seeded
// generator only breaks ties.
type Heuristic struct {
	rng *rand.Rand
}

func NewHeuristic(seed uint64) *Heuristic {
	return &Heuristic{rng: rand.New(rand.NewSource(seed))}
}

type moveRank struct {
	win      bool
	capture  bool
	distance int
}

func (r moveRank) better(other moveRank) bool {
	if r.win != other.win {
		return r.win
	}
	if r.capture != other.capture {
		return r.capture
	}
	return r.distance < other.distance
}

func (a *Heuristic) ChooseMove(state game.State, die int, _ time.Duration) (game.Move, error) {
	moves := game.LegalMoves(state, die)
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMoves
	}

	p := state.Turn
	var best []game.Move
	var bestRank moveRank
	for _, m := range moves {
		next := state.Apply(m)
		winner, done := next.Winner()
		rank := moveRank{
			win:      done && winner == p,
			capture:  isEnemyCapture(state, m),
			distance: stepDistance(game.Target(p), m.To),
		}
		switch {
		case len(best) == 0 || rank.better(bestRank):
			best = append(best[:0], m)
			bestRank = rank
		case rank == bestRank:
			best = append(best, m)
		}
	}
	return best[a.rng.Intn(len(best))], nil
}

func (a *Heuristic) ChooseLayout(p game.Player, _ time.Duration) (game.Arrangement, error) {
	return forwardArrangement(p), nil
}

func isEnemyCapture(state game.State, m game.Move) bool {
	occupant := state.Board[m.To.Row][m.To.Col]
	if occupant == 0 {
		return false
	}
	if state.Turn == game.Red {
		return occupant < 0
	}
	return occupant > 0
}

func stepDistance(target, c game.Cell) int {
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
