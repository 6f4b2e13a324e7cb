// Package engine drives complete games between two agents: seeded die rolls,
// per-side clocks with timeout losses, dynamic move budgets, and optional
// WTN recording.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"einstein/agent"
	"einstein/game"
	"einstein/searcher"
	"einstein/timectl"
	"einstein/wtn"
)

// MaxTurns guards against runaway games. Correct play always terminates, so
// hitting this limit indicates a broken agent.
const MaxTurns = 10000

// layoutBudgetCap bounds the time either side may spend choosing an opening.
const layoutBudgetCap = 600 * time.Millisecond

// Engine runs one game to completion.
type Engine struct {
	Red, Blue agent.Agent
	First     game.Player
	Seed      uint64

	// TimeLimit is each side's total clock; zero means unlimited. Moves
	// still receive the Budget config's maximum so search stays bounded.
	TimeLimit time.Duration
	Budget    timectl.Config

	// Fixed opening arrangements; nil lets the agent choose.
	RedOrder, BlueOrder *game.Arrangement

	// KeepRecord retains a WTN record of the game in the summary.
	KeepRecord bool
	// Verbose logs every move.
	Verbose bool
}

// Summary describes a finished game.
type Summary struct {
	Winner    game.Player
	Turns     int
	Timeout   bool
	Duration  time.Duration
	MoveTimes map[game.Player][]time.Duration
	Stats     map[game.Player][]searcher.Stats
	Record    *wtn.Record
}

type statsReporter interface {
	LastStats() searcher.Stats
}

// Run plays the game until a side wins, on the board or on the clock.
func (e *Engine) Run() (Summary, error) {
	if e.Red == nil || e.Blue == nil {
		return Summary{}, errors.New("engine: both agents must be set")
	}
	start := time.Now()
	rng := rand.New(rand.NewSource(e.Seed))

	remaining := map[game.Player]time.Duration{game.Red: e.TimeLimit, game.Blue: e.TimeLimit}
	limited := e.TimeLimit > 0
	budgetCfg := e.Budget
	if budgetCfg == (timectl.Config{}) {
		budgetCfg = timectl.Default()
	}
	summary := Summary{
		MoveTimes: map[game.Player][]time.Duration{},
		Stats:     map[game.Player][]searcher.Stats{},
	}

	redOrder, timedOut, err := e.selectOrder(game.Red, e.Red, e.RedOrder, remaining, limited)
	if err != nil {
		return Summary{}, err
	}
	if timedOut {
		return e.timeoutLoss(summary, game.Red, 0, start), nil
	}
	blueOrder, timedOut, err := e.selectOrder(game.Blue, e.Blue, e.BlueOrder, remaining, limited)
	if err != nil {
		return Summary{}, err
	}
	if timedOut {
		return e.timeoutLoss(summary, game.Blue, 0, start), nil
	}

	state, err := game.NewGameFromArrangements(redOrder, blueOrder, e.First)
	if err != nil {
		return Summary{}, err
	}

	var record *wtn.Record
	if e.KeepRecord {
		record = &wtn.Record{RedOrder: redOrder, BlueOrder: blueOrder}
	}

	for turn := 1; turn <= MaxTurns; turn++ {
		p := state.Turn
		die := rng.Intn(6) + 1

		// Searching agents need a bounded budget even on an unlimited
		// clock; a zero budget would let them deepen without end.
		budget := budgetCfg.Max
		if limited {
			budget, _ = timectl.MoveBudget(state, die, remaining[p], budgetCfg)
		}

		mover := e.agentFor(p)
		moveStart := time.Now()
		move, err := mover.ChooseMove(state, die, budget)
		elapsed := time.Since(moveStart)
		summary.MoveTimes[p] = append(summary.MoveTimes[p], elapsed)
		if limited {
			remaining[p] -= elapsed
			if remaining[p] < 0 {
				summary.Record = record
				return e.timeoutLoss(summary, p, turn, start), nil
			}
		}
		if err != nil {
			return Summary{}, fmt.Errorf("%s agent failed on turn %d: %w", p, turn, err)
		}
		if !game.IsLegal(state, die, move) {
			return Summary{}, fmt.Errorf("%s agent proposed illegal move %s for die %d on turn %d", p, move, die, turn)
		}

		if reporter, ok := mover.(statsReporter); ok {
			summary.Stats[p] = append(summary.Stats[p], reporter.LastStats())
		}
		if e.Verbose {
			log.Info().
				Int("turn", turn).
				Stringer("player", p).
				Int("die", die).
				Stringer("move", move).
				Msg("move played")
		}

		state = state.Apply(move)
		if record != nil {
			if err := record.AddMove(die, move); err != nil {
				return Summary{}, fmt.Errorf("recording turn %d: %w", turn, err)
			}
		}

		if winner, done := state.Winner(); done {
			summary.Winner = winner
			summary.Turns = turn
			summary.Duration = time.Since(start)
			summary.Record = record
			return summary, nil
		}
	}
	return Summary{}, fmt.Errorf("engine: no winner after %d turns", MaxTurns)
}

func (e *Engine) agentFor(p game.Player) agent.Agent {
	if p == game.Red {
		return e.Red
	}
	return e.Blue
}

// selectOrder picks a side's opening arrangement, charging the agent's clock
// when the game is timed.
func (e *Engine) selectOrder(
	p game.Player,
	a agent.Agent,
	fixed *game.Arrangement,
	remaining map[game.Player]time.Duration,
	limited bool,
) (game.Arrangement, bool, error) {
	if fixed != nil {
		if err := fixed.Validate(); err != nil {
			return game.Arrangement{}, false, fmt.Errorf("%s arrangement: %w", p, err)
		}
		return *fixed, false, nil
	}

	budget := layoutBudgetCap
	if limited {
		budget = remaining[p]
		if budget > layoutBudgetCap {
			budget = layoutBudgetCap
		}
	}
	start := time.Now()
	order, err := a.ChooseLayout(p, budget)
	if limited {
		remaining[p] -= time.Since(start)
		if remaining[p] < 0 {
			return game.Arrangement{}, true, nil
		}
	}
	if err != nil {
		return game.Arrangement{}, false, fmt.Errorf("%s layout selection: %w", p, err)
	}
	if err := order.Validate(); err != nil {
		return game.Arrangement{}, false, fmt.Errorf("%s chose invalid layout: %w", p, err)
	}
	return order, false, nil
}

func (e *Engine) timeoutLoss(summary Summary, loser game.Player, turns int, start time.Time) Summary {
	log.Warn().Stringer("player", loser).Msg("clock exhausted, opponent wins by timeout")
	summary.Winner = loser.Opponent()
	summary.Turns = turns
	summary.Timeout = true
	summary.Duration = time.Since(start)
	return summary
}
