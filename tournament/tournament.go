// Package tournament runs batches of games between two agent builders and
// aggregates the outcomes.
package tournament

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"einstein/agent"
	"einstein/engine"
	"einstein/game"
	"einstein/searcher"
	"einstein/timectl"
)

// Builder constructs a fresh agent for one game. Agents carry per-game
// search state and seeded RNGs, so each game gets its own instance.
type Builder func(seed uint64) (agent.Agent, error)

// Config describes one tournament.
type Config struct {
	Games     int
	Red, Blue Builder
	RedName   string
	BlueName  string

	// Seed derives per-game seeds; games are reproducible given the same
	// seed and builders.
	Seed uint64

	// TimeLimit is each side's clock per game; zero means untimed.
	TimeLimit time.Duration
	Budget    timectl.Config

	// AlternateFirst swaps the opening player every game. Otherwise Red
	// always starts.
	AlternateFirst bool

	Verbose bool
}

// GameRecord is the per-game row written to results.
type GameRecord struct {
	ID        int
	RedAgent  string
	BlueAgent string
	First     game.Player
	Winner    game.Player
	Turns     int
	Timeout   bool
	Duration  time.Duration
	AvgDepth  float64
}

// Result aggregates a finished tournament.
type Result struct {
	Games       int
	RedWins     int
	BlueWins    int
	Timeouts    int
	AvgTurns    float64
	AvgMoveTime time.Duration
	Records     []GameRecord
}

// RedWinRate is the fraction of games won by Red.
func (r Result) RedWinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.RedWins) / float64(r.Games)
}

// Run plays the configured number of games sequentially and aggregates.
func Run(cfg Config) (Result, error) {
	if cfg.Games <= 0 {
		return Result{}, fmt.Errorf("tournament: game count must be positive, got %d", cfg.Games)
	}
	if cfg.Red == nil || cfg.Blue == nil {
		return Result{}, fmt.Errorf("tournament: both agent builders must be set")
	}

	result := Result{Games: cfg.Games}
	var totalTurns int
	var totalMoveTime time.Duration
	var totalMoves int

	for i := 0; i < cfg.Games; i++ {
		gameSeed := cfg.Seed + uint64(i)*0x9e3779b97f4a7c15

		red, err := cfg.Red(gameSeed)
		if err != nil {
			return Result{}, fmt.Errorf("building red agent for game %d: %w", i+1, err)
		}
		blue, err := cfg.Blue(gameSeed + 1)
		if err != nil {
			return Result{}, fmt.Errorf("building blue agent for game %d: %w", i+1, err)
		}

		first := game.Red
		if cfg.AlternateFirst && i%2 == 1 {
			first = game.Blue
		}

		e := engine.Engine{
			Red:       red,
			Blue:      blue,
			First:     first,
			Seed:      gameSeed + 2,
			TimeLimit: cfg.TimeLimit,
			Budget:    cfg.Budget,
			Verbose:   cfg.Verbose,
		}
		summary, err := e.Run()
		if err != nil {
			return Result{}, fmt.Errorf("game %d: %w", i+1, err)
		}

		if summary.Winner == game.Red {
			result.RedWins++
		} else {
			result.BlueWins++
		}
		if summary.Timeout {
			result.Timeouts++
		}
		totalTurns += summary.Turns
		for _, times := range summary.MoveTimes {
			for _, d := range times {
				totalMoveTime += d
				totalMoves++
			}
		}

		result.Records = append(result.Records, GameRecord{
			ID:        i + 1,
			RedAgent:  cfg.RedName,
			BlueAgent: cfg.BlueName,
			First:     first,
			Winner:    summary.Winner,
			Turns:     summary.Turns,
			Timeout:   summary.Timeout,
			Duration:  summary.Duration,
			AvgDepth:  averageDepth(summary.Stats),
		})

		log.Info().
			Int("game", i+1).
			Stringer("winner", summary.Winner).
			Int("turns", summary.Turns).
			Bool("timeout", summary.Timeout).
			Msg("game finished")
	}

	if cfg.Games > 0 {
		result.AvgTurns = float64(totalTurns) / float64(cfg.Games)
	}
	if totalMoves > 0 {
		result.AvgMoveTime = totalMoveTime / time.Duration(totalMoves)
	}
	return result, nil
}

func averageDepth(stats map[game.Player][]searcher.Stats) float64 {
	var sum, n int
	for _, perPlayer := range stats {
		for _, s := range perPlayer {
			sum += s.Depth
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
