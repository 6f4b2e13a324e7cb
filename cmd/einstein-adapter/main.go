// Command einstein-adapter speaks the line protocol on stdin/stdout for
// plugging an agent into an external arbiter. Diagnostics go to stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"einstein/adapter"
	"einstein/agent"
	"einstein/player"
)

func main() {
	agentName := flag.String("agent", "expecti", "agent to play with (random, heuristic, expecti, layoutsearch, opening-expecti)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed for the agent's random choices")
	budget := flag.Duration("budget", 50*time.Millisecond, "search time per GO request")
	saveWTN := flag.String("save-wtn", "", "write a WTN record of the observed game to this file")
	flag.Parse()

	mover, err := player.Build(*agentName, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "einstein-adapter: %v\n", err)
		os.Exit(2)
	}

	a := adapter.New(adapter.Config{
		Agent:    mover,
		Fallback: agent.NewHeuristic(*seed + 1),
		Budget:   *budget,
		SaveWTN:  *saveWTN,
	}, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(a.Run())
}
