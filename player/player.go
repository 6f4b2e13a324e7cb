// Package player builds agents from their command-line names, so the
// binaries share one factory.
package player

import (
	"fmt"
	"sort"
	"strings"

	"einstein/agent"
	"einstein/opening"
)

// Names lists every buildable agent name, sorted.
func Names() []string {
	names := []string{"random", "heuristic", "expecti", "layoutsearch", "opening-expecti"}
	sort.Strings(names)
	return names
}

// Build constructs the named agent. The seed drives every random choice the
// agent makes, so identical seeds reproduce identical games.
func Build(name string, seed uint64) (agent.Agent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return agent.NewRandom(seed), nil
	case "heuristic":
		return agent.NewHeuristic(seed), nil
	case "expecti":
		return agent.NewExpecti(), nil
	case "layoutsearch":
		return opening.WrapAgent(agent.NewHeuristic(seed), seed, opening.Config{}), nil
	case "opening-expecti":
		return opening.WrapAgent(agent.NewExpecti(), seed, opening.Config{}), nil
	}
	return nil, fmt.Errorf("unknown agent %q (available: %s)", name, strings.Join(Names(), ", "))
}
