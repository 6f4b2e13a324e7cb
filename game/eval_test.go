package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatePosition(t *testing.T) {
	t.Run("terminal states dominate", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[4][4] = 1
		board[0][1] = -2
		s, err := FromBoard(board, Blue)
		require.NoError(t, err)

		require.Equal(t, WinScore, EvaluatePosition(s, Red))
		require.Equal(t, -WinScore, EvaluatePosition(s, Blue))
	})

	t.Run("perspectives are antisymmetric", func(t *testing.T) {
		s, err := NewGameFromArrangements(DefaultArrangement, DefaultArrangement, Red)
		require.NoError(t, err)
		s = s.Apply(Move{PieceID: 1, From: Cell{0, 0}, To: Cell{1, 1}})

		require.InDelta(t, -EvaluatePosition(s, Blue), EvaluatePosition(s, Red), 1e-9,
			"Red and Blue scores of one position should be exact negatives")
	})

	t.Run("advancement increases the score", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[1][1] = 3
		board[4][4] = -2
		before, err := FromBoard(board, Red)
		require.NoError(t, err)

		after := before.Apply(Move{PieceID: 3, From: Cell{1, 1}, To: Cell{2, 2}})

		require.Greater(t, EvaluatePosition(after, Red), EvaluatePosition(before, Red),
			"Moving a piece toward its goal should raise the mover's score")
	})

	t.Run("losing material lowers the score", func(t *testing.T) {
		full, err := NewGameFromArrangements(DefaultArrangement, DefaultArrangement, Red)
		require.NoError(t, err)

		reduced := full.Apply(Move{PieceID: 1, From: Cell{0, 0}, To: Cell{0, 1}})

		require.Less(t, EvaluatePosition(reduced, Red), EvaluatePosition(full, Red),
			"Capturing its own piece should cost red")
	})

	t.Run("exposed pieces are penalized", func(t *testing.T) {
		// Same goal distances in both positions, so only the threat term
		// differs: exposed puts both red pieces in blue's capture reach.
		safeBoard := [BoardSize][BoardSize]int8{}
		safeBoard[2][0] = 4
		safeBoard[3][0] = 5
		safeBoard[2][2] = -3
		safe, err := FromBoard(safeBoard, Red)
		require.NoError(t, err)

		exposedBoard := [BoardSize][BoardSize]int8{}
		exposedBoard[1][1] = 4
		exposedBoard[2][1] = 5
		exposedBoard[2][2] = -3
		exposed, err := FromBoard(exposedBoard, Red)
		require.NoError(t, err)

		require.Less(t, EvaluatePosition(exposed, Red), EvaluatePosition(safe, Red),
			"A piece inside the opponent's capture reach should score worse")
	})
}
