// Package searcher implements time-budgeted expectiminimax for the dice-driven
// race game: chance nodes average over the six die faces, choice nodes pick
// the best legal move for the side to move.
package searcher

import (
	"errors"
	"math"
	"time"

	"einstein/game"
)

const numDice = 6

// ErrNoLegalMoves is returned when the side to move has no surviving pieces.
// Such a state is already terminal and should not be searched.
var ErrNoLegalMoves = errors.New("searcher: no legal moves available")

// ErrDeadlineExceeded is returned when not even a depth-1 search completed
// within the budget. Callers recover by substituting a cheaper decision.
var ErrDeadlineExceeded = errors.New("searcher: deadline exceeded before completing depth 1")

// Stats describes the last search performed by an Expectiminimax.
type Stats struct {
	Depth   int
	Nodes   int64
	Elapsed time.Duration
}

// Expectiminimax searches move trees with iterative deepening under a
// wall-clock budget. It is not safe for concurrent use; each goroutine
// should own its instance.
type Expectiminimax struct {
	maxDepth int
	evaluate game.Evaluate
	pruning  bool
	stats    Stats
}

// Option configures an Expectiminimax.
type Option func(*Expectiminimax)

// WithMaxDepth caps iterative deepening at the given depth (in full turns).
func WithMaxDepth(depth int) Option {
	return func(e *Expectiminimax) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithEvaluationFn replaces the default static evaluation.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectiminimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

// WithoutPruning disables the chance-node bounds. Values are identical with
// and without pruning; this exists for cross-checking.
func WithoutPruning() Option {
	return func(e *Expectiminimax) {
		e.pruning = false
	}
}

func New(options ...Option) *Expectiminimax {
	e := &Expectiminimax{
		maxDepth: 8,
		evaluate: game.EvaluatePosition,
		pruning:  true,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Stats returns metrics for the most recent FindMove call.
func (e *Expectiminimax) Stats() Stats {
	return e.stats
}

// FindMove returns the best move for the side to move given the actual die
// roll. It deepens iteratively, keeping the best move of the last fully
// completed depth, and polls the deadline at every node so an in-progress
// depth can abort without corrupting that result. A zero budget means no
// deadline. Identical inputs yield identical moves: move ordering is the
// deterministic generator order and ties keep the earliest move.
func (e *Expectiminimax) FindMove(state game.State, die int, budget time.Duration) (game.Move, error) {
	start := time.Now()
	moves := game.LegalMoves(state, die)
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMoves
	}

	s := &search{
		evaluate:    e.evaluate,
		perspective: state.Turn,
		pruning:     e.pruning,
		maxValue:    game.WinScore + float64(e.maxDepth+1),
	}
	if budget > 0 {
		s.deadline = start.Add(budget)
		s.hasDeadline = true
	}

	var best game.Move
	completed := 0
	for depth := 1; depth <= e.maxDepth; depth++ {
		move, ok := s.searchRoot(state, moves, depth)
		if !ok {
			break
		}
		best = move
		completed = depth
	}

	e.stats = Stats{Depth: completed, Nodes: s.nodes, Elapsed: time.Since(start)}
	if completed == 0 {
		return game.Move{}, ErrDeadlineExceeded
	}
	return best, nil
}

type search struct {
	deadline    time.Time
	hasDeadline bool
	evaluate    game.Evaluate
	perspective game.Player
	pruning     bool
	maxValue    float64
	nodes       int64
	aborted     bool
}

func (s *search) expired() bool {
	if s.aborted {
		return true
	}
	if s.hasDeadline && !time.Now().Before(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// searchRoot evaluates every root move at the given depth and returns the
// maximizing one, or ok=false if the deadline hit mid-depth.
func (s *search) searchRoot(state game.State, moves []game.Move, depth int) (game.Move, bool) {
	best := moves[0]
	bestValue := math.Inf(-1)
	alpha, beta := -s.maxValue, s.maxValue
	for _, m := range moves {
		v := s.chanceValue(state.Apply(m), depth-1, alpha, beta)
		if s.aborted {
			return game.Move{}, false
		}
		if v > bestValue {
			bestValue = v
			best = m
		}
		if v > alpha {
			alpha = v
		}
	}
	return best, true
}

// chanceValue averages the six equally likely die outcomes. With pruning
// enabled it applies Star1 bounds: knowing every child value lies within
// [-maxValue, +maxValue], a partial sum can already prove the average falls
// outside (alpha, beta), in which case the returned bound is enough for the
// parent choice node to cut.
func (s *search) chanceValue(state game.State, depth int, alpha, beta float64) float64 {
	s.nodes++
	if s.expired() {
		return 0
	}

	if winner, done := state.Winner(); done {
		// Deeper remaining depth means the win is closer to the root;
		// prefer quick wins and distant losses.
		if winner == s.perspective {
			return game.WinScore + float64(depth)
		}
		return -(game.WinScore + float64(depth))
	}
	if depth == 0 {
		return s.evaluate(state, s.perspective)
	}

	lo, hi := -s.maxValue, s.maxValue
	sum := 0.0
	for i := 0; i < numDice; i++ {
		die := i + 1
		remaining := float64(numDice - i - 1)

		childAlpha, childBeta := lo, hi
		if s.pruning {
			childAlpha = numDice*alpha - sum - hi*remaining
			childBeta = numDice*beta - sum - lo*remaining
			if childAlpha < lo {
				childAlpha = lo
			}
			if childBeta > hi {
				childBeta = hi
			}
		}

		v := s.choiceValue(state, die, depth, childAlpha, childBeta)
		if s.aborted {
			return 0
		}
		sum += v

		if s.pruning {
			if sum+hi*remaining <= numDice*alpha {
				return (sum + hi*remaining) / numDice
			}
			if sum+lo*remaining >= numDice*beta {
				return (sum + lo*remaining) / numDice
			}
		}
	}
	return sum / numDice
}

// choiceValue picks the best move for the side to move: maximizing for the
// searching player, minimizing when modeling the opponent. Alpha-beta cuts
// at choice nodes never change the value inside the window.
func (s *search) choiceValue(state game.State, die int, depth int, alpha, beta float64) float64 {
	s.nodes++
	if s.expired() {
		return 0
	}

	moves := orderMoves(state, game.LegalMoves(state, die))
	if state.Turn == s.perspective {
		value := math.Inf(-1)
		for _, m := range moves {
			v := s.chanceValue(state.Apply(m), depth-1, alpha, beta)
			if s.aborted {
				return 0
			}
			if v > value {
				value = v
			}
			if value > alpha {
				alpha = value
			}
			if s.pruning && alpha >= beta {
				break
			}
		}
		return value
	}

	value := math.Inf(1)
	for _, m := range moves {
		v := s.chanceValue(state.Apply(m), depth-1, alpha, beta)
		if s.aborted {
			return 0
		}
		if v < value {
			value = v
		}
		if value < beta {
			beta = value
		}
		if s.pruning && alpha >= beta {
			break
		}
	}
	return value
}

// orderMoves puts goal entries and captures first, preserving generator
// order within each class. Ordering only affects cut efficiency, not values.
func orderMoves(state game.State, moves []game.Move) []game.Move {
	if len(moves) < 2 {
		return moves
	}
	target := game.Target(state.Turn)
	ordered := make([]game.Move, 0, len(moves))
	for _, m := range moves {
		if m.To == target || state.Board[m.To.Row][m.To.Col] != 0 {
			ordered = append(ordered, m)
		}
	}
	if len(ordered) == 0 || len(ordered) == len(moves) {
		return moves
	}
	for _, m := range moves {
		if m.To != target && state.Board[m.To.Row][m.To.Col] == 0 {
			ordered = append(ordered, m)
		}
	}
	return ordered
}
