package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"einstein/game"
)

// Random picks uniformly among legal moves. Useful as a baseline opponent
// and for exercising the engine in tests.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) ChooseMove(state game.State, die int, _ time.Duration) (game.Move, error) {
	moves := game.LegalMoves(state, die)
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMoves
	}
	return moves[a.rng.Intn(len(moves))], nil
}

func (a *Random) ChooseLayout(p game.Player, _ time.Duration) (game.Arrangement, error) {
	var arr game.Arrangement
	for i, id := range a.rng.Perm(6) {
		arr[i] = id + 1
	}
	return arr, nil
}
