// Command einstein-tournament runs batches of games between two agents and
// writes aggregate results as CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"einstein/agent"
	"einstein/player"
	"einstein/timectl"
	"einstein/tournament"
)

func main() {
	games := flag.Int("games", 100, "number of games to play")
	redName := flag.String("red", "expecti", "red agent")
	blueName := flag.String("blue", "heuristic", "blue agent")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "base seed, per-game seeds derive from it")
	timeLimit := flag.Duration("time", 0, "per-side clock per game, zero for untimed")
	preset := flag.String("preset", "default", "time preset: fast, default, or slow")
	alternate := flag.Bool("alternate", true, "alternate the first player between games")
	outDir := flag.String("out", "results", "directory for CSV results, empty to skip writing")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	budget, err := timectl.Preset(*preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "einstein-tournament: %v\n", err)
		os.Exit(2)
	}

	cfg := tournament.Config{
		Games:          *games,
		Red:            builder(*redName),
		Blue:           builder(*blueName),
		RedName:        *redName,
		BlueName:       *blueName,
		Seed:           *seed,
		TimeLimit:      *timeLimit,
		Budget:         budget,
		AlternateFirst: *alternate,
		Verbose:        *verbose,
	}

	result, err := tournament.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "einstein-tournament: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (red) vs %s (blue): %d games\n", *redName, *blueName, result.Games)
	fmt.Printf("red %d, blue %d, timeouts %d\n", result.RedWins, result.BlueWins, result.Timeouts)
	fmt.Printf("red win rate %.1f%%, avg turns %.1f, avg move time %s\n",
		result.RedWinRate()*100, result.AvgTurns, result.AvgMoveTime)

	if *outDir != "" {
		writer, err := tournament.NewWriter(*outDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "einstein-tournament: %v\n", err)
			os.Exit(1)
		}
		if err := writer.WriteGameRecords(result.Records); err != nil {
			fmt.Fprintf(os.Stderr, "einstein-tournament: %v\n", err)
			os.Exit(1)
		}
		if err := writer.WriteSummary(result); err != nil {
			fmt.Fprintf(os.Stderr, "einstein-tournament: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("results written to %s\n", writer.Dir())
	}
}

func builder(name string) tournament.Builder {
	return func(seed uint64) (agent.Agent, error) {
		return player.Build(name, seed)
	}
}
