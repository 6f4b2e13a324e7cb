// Package timectl allocates per-move search budgets from a side's remaining
// clock time, spending more on critical turns (imminent wins, threats,
// captures, endgames) and hurrying when comfortably ahead.
package timectl

import (
	"fmt"
	"time"

	"einstein/game"
)

// Config tunes budget allocation.
type Config struct {
	BaseFrac     float64       // fraction of remaining time per ordinary move
	Min          time.Duration // floor for any budget while time remains
	Max          time.Duration // ceiling for any budget
	CriticalMult float64       // applied when a win or loss is one move away
	EndgameMult  float64       // applied when few pieces remain
	HurryMult    float64       // applied on quiet turns with a material lead
	SafeCapFrac  float64       // never spend more than this fraction of the clock
}

// Default returns the tuning used for standard play.
func Default() Config {
	return Config{
		BaseFrac:     0.06,
		Min:          8 * time.Millisecond,
		Max:          1200 * time.Millisecond,
		CriticalMult: 2.5,
		EndgameMult:  1.8,
		HurryMult:    0.7,
		SafeCapFrac:  0.2,
	}
}

// Preset returns a named configuration: "fast", "default", or "slow".
func Preset(name string) (Config, error) {
	cfg := Default()
	switch name {
	case "default", "":
		return cfg, nil
	case "fast":
		cfg.BaseFrac = 0.04
		cfg.Max = 400 * time.Millisecond
		return cfg, nil
	case "slow":
		cfg.BaseFrac = 0.08
		cfg.Max = 2500 * time.Millisecond
		return cfg, nil
	}
	return Config{}, fmt.Errorf("unknown time preset %q", name)
}

// Urgency flags reported alongside a budget.
const (
	FlagWin     = "WIN"
	FlagThreat  = "THREAT"
	FlagCapture = "CAP"
	FlagDanger  = "DANGER"
	FlagEndgame = "ENDGAME"
)

// MoveBudget computes the time to spend on this move given the remaining
// clock. A non-positive remaining time means an unlimited clock and yields
// the configured maximum. The returned flags describe why the budget was
// raised.
func MoveBudget(s game.State, die int, remaining time.Duration, cfg Config) (time.Duration, []string) {
	if remaining <= 0 {
		return cfg.Max, nil
	}

	p := s.Turn
	var flags []string
	immediate := hasImmediateWin(s, die, p)
	if immediate {
		flags = append(flags, FlagWin)
	}
	threat := opponentWinThreat(s, p)
	if threat {
		flags = append(flags, FlagThreat)
	}
	capture := captureOpportunity(s, die, p)
	if capture {
		flags = append(flags, FlagCapture)
	}
	danger := dangerIncoming(s, p)
	if danger {
		flags = append(flags, FlagDanger)
	}
	endgame := s.AliveCount(game.Red)+s.AliveCount(game.Blue) <= 4
	if endgame {
		flags = append(flags, FlagEndgame)
	}

	multiplier := 1.0
	if immediate || threat {
		multiplier *= cfg.CriticalMult
	}
	if capture {
		multiplier *= 1.2
	}
	if danger {
		multiplier *= 1.2
	}
	if endgame {
		multiplier *= cfg.EndgameMult
	}
	if len(flags) == 0 {
		lead := s.AliveCount(p) - s.AliveCount(p.Opponent())
		if lead >= 2 {
			multiplier *= cfg.HurryMult
		}
	}

	budget := time.Duration(float64(remaining) * cfg.BaseFrac * multiplier)
	if budget > cfg.Max {
		budget = cfg.Max
	}
	safeCap := time.Duration(float64(remaining) * cfg.SafeCapFrac)
	if safeCap < cfg.Min {
		safeCap = cfg.Min
	}
	if budget > safeCap {
		budget = safeCap
	}

	if remaining < cfg.Min {
		return remaining, flags
	}
	if budget < cfg.Min {
		budget = cfg.Min
	}
	if budget > remaining {
		budget = remaining
	}
	return budget, flags
}

func hasImmediateWin(s game.State, die int, p game.Player) bool {
	for _, m := range game.LegalMoves(s, die) {
		if winner, done := s.Apply(m).Winner(); done && winner == p {
			return true
		}
	}
	return false
}

// opponentWinThreat reports whether an opposing piece stands one step from
// its goal and some die roll would let it move.
func opponentWinThreat(s game.State, p game.Player) bool {
	opp := p.Opponent()
	target := game.Target(opp)
	dirs := game.Directions(opp)
	for id := 1; id <= 6; id++ {
		c, ok := s.PieceCell(opp, id)
		if !ok {
			continue
		}
		reaches := false
		for _, d := range dirs {
			if (game.Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}) == target {
				reaches = true
				break
			}
		}
		if !reaches {
			continue
		}
		for die := 1; die <= 6; die++ {
			for _, candidate := range game.MovablePieceIDs(s, opp, die) {
				if candidate == id {
					return true
				}
			}
		}
	}
	return false
}

func captureOpportunity(s game.State, die int, p game.Player) bool {
	for _, m := range game.LegalMoves(s, die) {
		occupant := s.Board[m.To.Row][m.To.Col]
		if occupant == 0 {
			continue
		}
		if (p == game.Red && occupant < 0) || (p == game.Blue && occupant > 0) {
			return true
		}
	}
	return false
}

// dangerIncoming reports whether any of the player's pieces sits inside the
// opponent's one-step capture reach.
func dangerIncoming(s game.State, p game.Player) bool {
	opp := p.Opponent()
	dirs := game.Directions(opp)
	for id := 1; id <= 6; id++ {
		from, ok := s.PieceCell(opp, id)
		if !ok {
			continue
		}
		for _, d := range dirs {
			to := game.Cell{Row: from.Row + d.Row, Col: from.Col + d.Col}
			if !to.InBounds() {
				continue
			}
			occupant := s.Board[to.Row][to.Col]
			if (p == game.Red && occupant > 0) || (p == game.Blue && occupant < 0) {
				return true
			}
		}
	}
	return false
}
