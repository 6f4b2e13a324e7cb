package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMovablePieceIDs(t *testing.T) {
	t.Run("rolled id moves when alive", func(t *testing.T) {
		s, err := NewGameFromArrangements(DefaultArrangement, DefaultArrangement, Red)
		require.NoError(t, err)

		for die := 1; die <= 6; die++ {
			require.Equal(t, []int{die}, MovablePieceIDs(s, Red, die),
				"A surviving rolled id should be the sole candidate")
		}
	})

	t.Run("dead rolled id yields closest survivors on both sides", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[0][0] = 2
		board[1][1] = 5
		board[4][4] = -1
		s, err := FromBoard(board, Red)
		require.NoError(t, err)

		require.Equal(t, []int{2, 5}, MovablePieceIDs(s, Red, 4),
			"Both the closest lower and closest higher survivor should move")
		require.Equal(t, []int{2, 5}, MovablePieceIDs(s, Red, 3))
	})

	t.Run("only a lower survivor", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[2][2] = 3
		board[4][4] = -1
		s, err := FromBoard(board, Red)
		require.NoError(t, err)

		require.Equal(t, []int{3}, MovablePieceIDs(s, Red, 6))
	})

	t.Run("only a higher survivor", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[2][2] = 4
		board[4][4] = -1
		s, err := FromBoard(board, Red)
		require.NoError(t, err)

		require.Equal(t, []int{4}, MovablePieceIDs(s, Red, 1))
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening roll of 1 moves only piece 1", func(t *testing.T) {
		s, err := NewGameFromArrangements(DefaultArrangement, DefaultArrangement, Red)
		require.NoError(t, err)

		moves := LegalMoves(s, 1)

		require.Len(t, moves, 3, "Piece 1 in the corner should have all three steps")
		for _, m := range moves {
			require.Equal(t, 1, m.PieceID, "Only the rolled piece should appear")
			require.Equal(t, Cell{0, 0}, m.From)
			require.True(t, m.To.InBounds())
		}
		require.Equal(t, []Move{
			{PieceID: 1, From: Cell{0, 0}, To: Cell{0, 1}},
			{PieceID: 1, From: Cell{0, 0}, To: Cell{1, 0}},
			{PieceID: 1, From: Cell{0, 0}, To: Cell{1, 1}},
		}, moves, "Moves should follow the documented generator order")
	})

	t.Run("roll for a dead id offers exactly the nearest survivors", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[3][4] = 3
		board[1][1] = 5
		board[0][0] = 1
		board[4][0] = -2
		s, err := FromBoard(board, Red)
		require.NoError(t, err)

		moves := LegalMoves(s, 4)

		ids := map[int]bool{}
		for _, m := range moves {
			ids[m.PieceID] = true
		}
		require.Equal(t, map[int]bool{3: true, 5: true}, ids,
			"Only the closest survivors around the dead id should move")
	})

	t.Run("edge pieces stay in bounds", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[4][4] = -1
		board[0][0] = 2
		s, err := FromBoard(board, Blue)
		require.NoError(t, err)

		moves := LegalMoves(s, 1)

		require.Len(t, moves, 3)
		for _, m := range moves {
			require.True(t, m.To.InBounds(), "Destination %s must stay on the board", m.To)
		}
	})

	t.Run("corner piece one step from goal", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[4][3] = 6
		board[0][4] = -4
		s, err := FromBoard(board, Red)
		require.NoError(t, err)

		moves := LegalMoves(s, 6)

		require.Equal(t, []Move{
			{PieceID: 6, From: Cell{4, 3}, To: Cell{4, 4}},
		}, moves, "Only the rightward step stays in bounds from (4,3)")
	})

	t.Run("non-empty whenever the moving side has a piece", func(t *testing.T) {
		board := [BoardSize][BoardSize]int8{}
		board[2][2] = 1
		board[0][4] = -6
		s, err := FromBoard(board, Red)
		require.NoError(t, err)

		for die := 1; die <= 6; die++ {
			require.NotEmpty(t, LegalMoves(s, die), "Die %d should still offer moves", die)
		}
	})
}

func TestIsLegal(t *testing.T) {
	s, err := NewGameFromArrangements(DefaultArrangement, DefaultArrangement, Red)
	require.NoError(t, err)

	require.True(t, IsLegal(s, 1, Move{PieceID: 1, From: Cell{0, 0}, To: Cell{1, 1}}))
	require.False(t, IsLegal(s, 1, Move{PieceID: 2, From: Cell{0, 1}, To: Cell{1, 1}}),
		"A piece other than the rolled one must not move")
	require.False(t, IsLegal(s, 1, Move{PieceID: 1, From: Cell{0, 0}, To: Cell{0, 2}}),
		"Moves span exactly one step")
}
