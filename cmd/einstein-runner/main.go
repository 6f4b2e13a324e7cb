// Command einstein-runner plays games locally: a single game between two
// agents, a best-of-seven match, or a replay of a saved WTN record.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"einstein/engine"
	"einstein/game"
	"einstein/player"
	"einstein/timectl"
	"einstein/wtn"
)

const matchLength = 7

func main() {
	mode := flag.String("mode", "game", "game, match, or replay")
	redName := flag.String("red", "expecti", "red agent")
	blueName := flag.String("blue", "heuristic", "blue agent")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed for dice and agent randomness")
	timeLimit := flag.Duration("time", 0, "per-side clock, zero for untimed")
	preset := flag.String("preset", "default", "time preset: fast, default, or slow")
	firstName := flag.String("first", "red", "side that moves first")
	redOrder := flag.String("red-order", "", "fixed red arrangement, e.g. 1,2,3,4,5,6")
	blueOrder := flag.String("blue-order", "", "fixed blue arrangement")
	wtnOut := flag.String("wtn", "", "write the game record to this file")
	wtnIn := flag.String("in", "", "record to replay (replay mode)")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	var err error
	switch *mode {
	case "game":
		err = runGame(*redName, *blueName, *seed, *timeLimit, *preset, *firstName, *redOrder, *blueOrder, *wtnOut, *verbose)
	case "match":
		err = runMatch(*redName, *blueName, *seed, *timeLimit, *preset, *verbose)
	case "replay":
		err = runReplay(*wtnIn)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "einstein-runner: %v\n", err)
		os.Exit(1)
	}
}

func runGame(redName, blueName string, seed uint64, timeLimit time.Duration, preset, firstName, redOrder, blueOrder, wtnOut string, verbose bool) error {
	e, err := buildEngine(redName, blueName, seed, timeLimit, preset, verbose)
	if err != nil {
		return err
	}
	if e.First, err = game.ParsePlayer(firstName); err != nil {
		return err
	}
	if e.RedOrder, err = parseOrder(redOrder); err != nil {
		return fmt.Errorf("red order: %w", err)
	}
	if e.BlueOrder, err = parseOrder(blueOrder); err != nil {
		return fmt.Errorf("blue order: %w", err)
	}
	e.KeepRecord = wtnOut != ""

	summary, err := e.Run()
	if err != nil {
		return err
	}
	outcome := "on the board"
	if summary.Timeout {
		outcome = "by timeout"
	}
	fmt.Printf("%s wins %s after %d turns in %s\n", summary.Winner, outcome, summary.Turns, summary.Duration.Round(time.Millisecond))

	if wtnOut != "" && summary.Record != nil {
		if err := os.WriteFile(wtnOut, []byte(summary.Record.String()), 0o644); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		fmt.Printf("record written to %s\n", wtnOut)
	}
	return nil
}

// runMatch plays a best-of-seven series. The first player alternates game by
// game, Red starting game one, so neither side keeps the tempo advantage.
func runMatch(redName, blueName string, seed uint64, timeLimit time.Duration, preset string, verbose bool) error {
	wins := map[game.Player]int{}
	for i := 0; i < matchLength; i++ {
		e, err := buildEngine(redName, blueName, seed+uint64(i)*101, timeLimit, preset, verbose)
		if err != nil {
			return err
		}
		e.First = game.Red
		if i%2 == 1 {
			e.First = game.Blue
		}

		summary, err := e.Run()
		if err != nil {
			return fmt.Errorf("match game %d: %w", i+1, err)
		}
		wins[summary.Winner]++
		fmt.Printf("game %d: %s wins after %d turns (score %d-%d)\n",
			i+1, summary.Winner, summary.Turns, wins[game.Red], wins[game.Blue])

		if wins[summary.Winner] > matchLength/2 {
			break
		}
	}

	winner := game.Red
	if wins[game.Blue] > wins[game.Red] {
		winner = game.Blue
	}
	fmt.Printf("match: %s (%s) defeats %s (%s) %d-%d\n",
		winner, nameFor(winner, redName, blueName),
		winner.Opponent(), nameFor(winner.Opponent(), redName, blueName),
		wins[winner], wins[winner.Opponent()])
	return nil
}

func runReplay(path string) error {
	if path == "" {
		return fmt.Errorf("replay mode requires -in")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rec, err := wtn.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	state, winner, done, err := wtn.Replay(rec)
	if err != nil {
		return fmt.Errorf("replaying %s: %w", path, err)
	}

	fmt.Printf("%d moves replayed\n", len(rec.Moves))
	fmt.Println(state)
	if done {
		fmt.Printf("result: %s wins\n", winner)
	} else {
		fmt.Printf("game unfinished, %s to move\n", state.Turn)
	}
	return nil
}

func buildEngine(redName, blueName string, seed uint64, timeLimit time.Duration, preset string, verbose bool) (*engine.Engine, error) {
	red, err := player.Build(redName, seed)
	if err != nil {
		return nil, err
	}
	blue, err := player.Build(blueName, seed+1)
	if err != nil {
		return nil, err
	}
	budget, err := timectl.Preset(preset)
	if err != nil {
		return nil, err
	}
	return &engine.Engine{
		Red:       red,
		Blue:      blue,
		First:     game.Red,
		Seed:      seed + 2,
		TimeLimit: timeLimit,
		Budget:    budget,
		Verbose:   verbose,
	}, nil
}

func parseOrder(s string) (*game.Arrangement, error) {
	if s == "" {
		return nil, nil
	}
	arr, err := game.ParseArrangement(s)
	if err != nil {
		return nil, err
	}
	return &arr, nil
}

func nameFor(p game.Player, redName, blueName string) string {
	if p == game.Red {
		return redName
	}
	return blueName
}
