package opening

import (
	"time"

	"einstein/agent"
	"einstein/game"
	"einstein/searcher"
)

// Agent decorates a move-choosing agent with searched opening layouts.
// Wrapping the heuristic agent gives a cheap layout-search player; wrapping
// the expectiminimax agent gives the full-strength opening+search player.
type Agent struct {
	inner agent.Agent
	seed  uint64
	cfg   Config
}

func WrapAgent(inner agent.Agent, seed uint64, cfg Config) *Agent {
	return &Agent{inner: inner, seed: seed, cfg: cfg}
}

func (a *Agent) ChooseMove(state game.State, die int, budget time.Duration) (game.Move, error) {
	return a.inner.ChooseMove(state, die, budget)
}

func (a *Agent) ChooseLayout(p game.Player, budget time.Duration) (game.Arrangement, error) {
	return Search(p, budget, a.seed, a.cfg), nil
}

// LastStats forwards search metrics when the wrapped agent reports them.
func (a *Agent) LastStats() searcher.Stats {
	if reporter, ok := a.inner.(interface{ LastStats() searcher.Stats }); ok {
		return reporter.LastStats()
	}
	return searcher.Stats{}
}
