package timectl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"einstein/game"
)

func TestPreset(t *testing.T) {
	for _, name := range []string{"", "default", "fast", "slow"} {
		_, err := Preset(name)
		require.NoError(t, err, "Preset %q should exist", name)
	}

	fast, err := Preset("fast")
	require.NoError(t, err)
	slow, err := Preset("slow")
	require.NoError(t, err)
	require.Less(t, fast.Max, slow.Max, "The fast preset should cap moves tighter")

	_, err = Preset("blitz")
	require.Error(t, err)
}

func TestMoveBudget(t *testing.T) {
	cfg := Default()
	opening, err := game.NewGameFromArrangements(
		game.DefaultArrangement, game.DefaultArrangement, game.Red)
	require.NoError(t, err)

	t.Run("unlimited clock yields the maximum", func(t *testing.T) {
		budget, _ := MoveBudget(opening, 3, 0, cfg)
		require.Equal(t, cfg.Max, budget)
	})

	t.Run("budget stays within the configured bounds", func(t *testing.T) {
		for _, remaining := range []time.Duration{
			50 * time.Millisecond,
			time.Second,
			30 * time.Second,
			5 * time.Minute,
		} {
			budget, _ := MoveBudget(opening, 3, remaining, cfg)
			require.GreaterOrEqual(t, budget, cfg.Min, "remaining=%s", remaining)
			require.LessOrEqual(t, budget, cfg.Max, "remaining=%s", remaining)
			require.LessOrEqual(t, budget, remaining, "Budget may never exceed the clock")
		}
	})

	t.Run("never spends more than the safe fraction", func(t *testing.T) {
		remaining := 10 * time.Second
		budget, _ := MoveBudget(opening, 3, remaining, cfg)

		safeCap := time.Duration(float64(remaining) * cfg.SafeCapFrac)
		require.LessOrEqual(t, budget, safeCap)
	})

	t.Run("a nearly empty clock is spent whole", func(t *testing.T) {
		remaining := cfg.Min / 2
		budget, _ := MoveBudget(opening, 3, remaining, cfg)
		require.Equal(t, remaining, budget)
	})

	t.Run("an immediate win raises the budget", func(t *testing.T) {
		board := [game.BoardSize][game.BoardSize]int8{}
		board[3][3] = 1
		board[0][4] = -2
		critical, err := game.FromBoard(board, game.Red)
		require.NoError(t, err)
		remaining := 10 * time.Second

		criticalBudget, flags := MoveBudget(critical, 1, remaining, cfg)
		quietBudget, _ := MoveBudget(opening, 3, remaining, cfg)

		require.Contains(t, flags, FlagWin)
		require.Greater(t, criticalBudget, quietBudget,
			"A winning chance deserves more thought than a quiet opening move")
	})

	t.Run("flags an opposing runner", func(t *testing.T) {
		board := [game.BoardSize][game.BoardSize]int8{}
		board[1][1] = -1
		board[4][0] = 3
		threatened, err := game.FromBoard(board, game.Red)
		require.NoError(t, err)

		_, flags := MoveBudget(threatened, 2, 10*time.Second, cfg)

		require.Contains(t, flags, FlagThreat)
	})

	t.Run("flags the endgame", func(t *testing.T) {
		board := [game.BoardSize][game.BoardSize]int8{}
		board[0][1] = 2
		board[4][2] = -5
		endgame, err := game.FromBoard(board, game.Red)
		require.NoError(t, err)

		_, flags := MoveBudget(endgame, 2, 10*time.Second, cfg)

		require.Contains(t, flags, FlagEndgame)
	})
}
