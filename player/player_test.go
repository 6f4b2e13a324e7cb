package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"einstein/game"
)

func TestBuild(t *testing.T) {
	t.Run("builds every listed agent", func(t *testing.T) {
		state, err := game.NewGameFromArrangements(
			game.DefaultArrangement, game.DefaultArrangement, game.Red)
		require.NoError(t, err)

		for _, name := range Names() {
			a, err := Build(name, 1)
			require.NoError(t, err, "Agent %q should build", name)

			move, err := a.ChooseMove(state, 3, 50*time.Millisecond)
			require.NoError(t, err)
			require.True(t, game.IsLegal(state, 3, move), "Agent %q played %s", name, move)
		}
	})

	t.Run("names are case-insensitive", func(t *testing.T) {
		_, err := Build("  Random ", 1)
		require.NoError(t, err)
	})

	t.Run("unknown names error", func(t *testing.T) {
		_, err := Build("alphazero", 1)
		require.Error(t, err)
	})
}
