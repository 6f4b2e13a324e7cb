// Package opening searches opening layouts: permutations of piece ids 1..6
// over a side's six start cells. Candidates are ranked by a static placement
// score and the best of them are re-scored with short seeded playouts inside
// the caller's time budget.
package opening

import (
	"sort"
	"time"

	"golang.org/x/exp/rand"

	"einstein/agent"
	"einstein/game"
	"einstein/searcher"
)

// Config tunes the layout search. Zero values select the defaults.
type Config struct {
	SampleSize int // candidates kept from the static ranking
	Playouts   int // dice sequences per candidate and opponent layout
	PlyLimit   int // plies simulated per playout
	Depth      int // expectiminimax depth during playouts
}

func (c Config) withDefaults() Config {
	if c.SampleSize <= 0 {
		c.SampleSize = 24
	}
	if c.Playouts <= 0 {
		c.Playouts = 3
	}
	if c.PlyLimit <= 0 {
		c.PlyLimit = 8
	}
	if c.Depth <= 0 {
		c.Depth = 2
	}
	return c
}

// playoutMoveBudget bounds each searched move inside a candidate playout.
const playoutMoveBudget = 8 * time.Millisecond

// StaticScore ranks an arrangement without lookahead: stronger piece ids on
// start cells closer to the goal score higher.
func StaticScore(a game.Arrangement, p game.Player) float64 {
	cells := game.StartCells(p)
	target := game.Target(p)
	score := 0.0
	for i, id := range a {
		c := cells[i]
		dr := target.Row - c.Row
		if dr < 0 {
			dr = -dr
		}
		dc := target.Col - c.Col
		if dc < 0 {
			dc = -dc
		}
		score += float64(id) * float64(2*game.BoardSize-2-dr-dc)
	}
	return score
}

// allArrangements enumerates the 720 permutations in lexicographic order.
func allArrangements() []game.Arrangement {
	var out []game.Arrangement
	var perm game.Arrangement
	var used [7]bool
	var build func(pos int)
	build = func(pos int) {
		if pos == 6 {
			out = append(out, perm)
			return
		}
		for id := 1; id <= 6; id++ {
			if used[id] {
				continue
			}
			used[id] = true
			perm[pos] = id
			build(pos + 1)
			used[id] = false
		}
	}
	build(0)
	return out
}

// Search returns the best arrangement found for the given side within the
// budget. Candidates are taken from the static ranking and scored by seeded
// playouts against a small set of modeled opponent layouts; once the
// deadline nears, the best candidate so far is returned. The result is never
// empty: with no time at all the statically best arrangement wins. Ties keep
// the earlier candidate, so identical seeds and budgets reproduce the same
// layout.
func Search(p game.Player, budget time.Duration, seed uint64, cfg Config) game.Arrangement {
	cfg = cfg.withDefaults()
	start := time.Now()
	hasDeadline := budget > 0
	deadline := start.Add(budget)

	candidates := allArrangements()
	sort.SliceStable(candidates, func(i, j int) bool {
		return StaticScore(candidates[i], p) > StaticScore(candidates[j], p)
	})
	if len(candidates) > cfg.SampleSize {
		candidates = candidates[:cfg.SampleSize]
	}

	best := candidates[0]
	bestScore := 0.0
	scored := false

	rng := rand.New(rand.NewSource(seed))
	sequences := make([][]int, cfg.Playouts)
	for i := range sequences {
		seq := make([]int, cfg.PlyLimit)
		for j := range seq {
			seq[j] = rng.Intn(6) + 1
		}
		sequences[i] = seq
	}

	opponentLayouts := []game.Arrangement{
		{1, 2, 3, 4, 5, 6},
		{6, 5, 4, 3, 2, 1},
	}
	if heuristicLayout, err := agent.NewHeuristic(seed).ChooseLayout(p.Opponent(), 0); err == nil {
		opponentLayouts = append(opponentLayouts, heuristicLayout)
	}

	mover := agent.NewExpecti(searcher.WithMaxDepth(cfg.Depth))
	opponent := agent.NewHeuristic(seed + 1)

	expired := func() bool {
		return hasDeadline && !time.Now().Before(deadline)
	}

	for _, candidate := range candidates {
		if expired() {
			break
		}
		score, ok := scoreCandidate(candidate, p, opponentLayouts, sequences, mover, opponent, expired)
		if !ok {
			break
		}
		if !scored || score > bestScore {
			best = candidate
			bestScore = score
			scored = true
		}
	}
	return best
}

// scoreCandidate averages playout outcomes for one arrangement. ok is false
// when the deadline cut the candidate short before any playout finished.
func scoreCandidate(
	candidate game.Arrangement,
	p game.Player,
	opponentLayouts []game.Arrangement,
	sequences [][]int,
	mover, opponent agent.Agent,
	expired func() bool,
) (float64, bool) {
	sum := 0.0
	samples := 0
	for _, oppLayout := range opponentLayouts {
		red, blue := candidate, oppLayout
		if p == game.Blue {
			red, blue = oppLayout, candidate
		}
		initial, err := game.NewGameFromArrangements(red, blue, p)
		if err != nil {
			continue
		}

		for _, seq := range sequences {
			if expired() {
				if samples == 0 {
					return 0, false
				}
				return sum / float64(samples), true
			}
			sum += playout(initial, p, seq, mover, opponent)
			samples++
		}
	}
	if samples == 0 {
		return 0, false
	}
	return sum / float64(samples), true
}

func playout(state game.State, p game.Player, dice []int, mover, opponent agent.Agent) float64 {
	for _, die := range dice {
		var (
			m   game.Move
			err error
		)
		if state.Turn == p {
			m, err = mover.ChooseMove(state, die, playoutMoveBudget)
		} else {
			m, err = opponent.ChooseMove(state, die, playoutMoveBudget)
		}
		if err != nil {
			break
		}
		state = state.Apply(m)
		if state.Terminal() {
			break
		}
	}
	if winner, done := state.Winner(); done {
		if winner == p {
			return game.WinScore
		}
		return -game.WinScore
	}
	return game.EvaluatePosition(state, p)
}
