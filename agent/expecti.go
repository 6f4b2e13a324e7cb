package agent

import (
	"errors"
	"time"

	"einstein/game"
	"einstein/searcher"
)

// Expecti plays with the expectiminimax searcher. If not even a depth-1
// search finishes inside the budget it falls back to the first legal move,
// so a move is always produced.
type Expecti struct {
	search *searcher.Expectiminimax
}

func NewExpecti(options ...searcher.Option) *Expecti {
	return &Expecti{search: searcher.New(options...)}
}

func (a *Expecti) ChooseMove(state game.State, die int, budget time.Duration) (game.Move, error) {
	move, err := a.search.FindMove(state, die, budget)
	if err == nil {
		return move, nil
	}
	if errors.Is(err, searcher.ErrDeadlineExceeded) {
		moves := game.LegalMoves(state, die)
		if len(moves) == 0 {
			return game.Move{}, ErrNoLegalMoves
		}
		return moves[0], nil
	}
	if errors.Is(err, searcher.ErrNoLegalMoves) {
		return game.Move{}, ErrNoLegalMoves
	}
	return game.Move{}, err
}

func (a *Expecti) ChooseLayout(p game.Player, _ time.Duration) (game.Arrangement, error) {
	return forwardArrangement(p), nil
}

// LastStats exposes metrics from the most recent search.
func (a *Expecti) LastStats() searcher.Stats {
	return a.search.Stats()
}
