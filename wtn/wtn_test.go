package wtn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"einstein/game"
)

func TestSquare(t *testing.T) {
	t.Run("formats corners and interior", func(t *testing.T) {
		cases := []struct {
			cell game.Cell
			want string
		}{
			{game.Cell{Row: 0, Col: 0}, "A1"},
			{game.Cell{Row: 4, Col: 4}, "E5"},
			{game.Cell{Row: 0, Col: 4}, "E1"},
			{game.Cell{Row: 4, Col: 0}, "A5"},
			{game.Cell{Row: 2, Col: 2}, "C3"},
		}
		for _, c := range cases {
			got, err := FormatSquare(c.cell)
			require.NoError(t, err)
			require.Equal(t, c.want, got, "Cell %s", c.cell)
		}
	})

	t.Run("round trips every board cell", func(t *testing.T) {
		for r := 0; r < game.BoardSize; r++ {
			for c := 0; c < game.BoardSize; c++ {
				cell := game.Cell{Row: r, Col: c}
				sq, err := FormatSquare(cell)
				require.NoError(t, err)
				back, err := ParseSquare(sq)
				require.NoError(t, err)
				require.Equal(t, cell, back)
			}
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := FormatSquare(game.Cell{Row: 5, Col: 0})
		require.Error(t, err)

		for _, bad := range []string{"", "A", "F1", "A6", "a1", "11", "AA"} {
			_, err := ParseSquare(bad)
			require.Error(t, err, "Square %q should be rejected", bad)
		}
	})
}

func TestMoveEncoding(t *testing.T) {
	t.Run("encodes die, id, and squares", func(t *testing.T) {
		line, err := EncodeMove(3, game.Move{
			PieceID: 5,
			From:    game.Cell{Row: 1, Col: 1},
			To:      game.Cell{Row: 2, Col: 2},
		})

		require.NoError(t, err)
		require.Equal(t, "3:5;(B2,C3)", line)
	})

	t.Run("round trips across directions and edges", func(t *testing.T) {
		moves := []struct {
			die  int
			move game.Move
		}{
			{1, game.Move{PieceID: 1, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 0, Col: 1}}},
			{2, game.Move{PieceID: 2, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 1, Col: 0}}},
			{6, game.Move{PieceID: 6, From: game.Cell{Row: 3, Col: 3}, To: game.Cell{Row: 4, Col: 4}}},
			{4, game.Move{PieceID: 4, From: game.Cell{Row: 4, Col: 4}, To: game.Cell{Row: 3, Col: 3}}},
			{5, game.Move{PieceID: 3, From: game.Cell{Row: 4, Col: 1}, To: game.Cell{Row: 4, Col: 0}}},
		}
		for _, c := range moves {
			line, err := EncodeMove(c.die, c.move)
			require.NoError(t, err)
			die, move, err := DecodeMove(line)
			require.NoError(t, err)
			require.Equal(t, c.die, die)
			require.Equal(t, c.move, move)
		}
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"3",
			"7:1;(A1,B2)",
			"3:9;(A1,B2)",
			"3:1;A1,B2",
			"3:1;(A1)",
			"3:1;(A1,F9)",
			"x:1;(A1,B2)",
		} {
			_, _, err := DecodeMove(bad)
			require.Error(t, err, "Line %q should be rejected", bad)
		}
	})
}

func TestRecord(t *testing.T) {
	t.Run("serializes and parses a full record", func(t *testing.T) {
		rec := &Record{
			Comments:  []string{"# test game"},
			RedOrder:  game.Arrangement{1, 2, 3, 4, 5, 6},
			BlueOrder: game.Arrangement{6, 5, 4, 3, 2, 1},
		}
		rec.AddMove(1, game.Move{PieceID: 1, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 1, Col: 1}})
		rec.AddMove(6, game.Move{PieceID: 1, From: game.Cell{Row: 4, Col: 4}, To: game.Cell{Row: 3, Col: 3}})

		parsed, err := Parse(rec.String())

		require.NoError(t, err)
		require.Equal(t, rec, parsed)
	})

	t.Run("rejects unencodable plies", func(t *testing.T) {
		rec := &Record{
			RedOrder:  game.DefaultArrangement,
			BlueOrder: game.DefaultArrangement,
		}

		require.Error(t, rec.AddMove(0, game.Move{
			PieceID: 1, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 1, Col: 1}}))
		require.Error(t, rec.AddMove(3, game.Move{
			PieceID: 7, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 1, Col: 1}}))
		require.Error(t, rec.AddMove(3, game.Move{
			PieceID: 1, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 0, Col: 5}}))

		require.Empty(t, rec.Moves, "No rejected ply may enter the record")
		parsed, err := Parse(rec.String())
		require.NoError(t, err)
		require.Empty(t, parsed.Moves, "Serialization must match the record exactly")
	})

	t.Run("requires both layout lines", func(t *testing.T) {
		_, err := Parse("1,2,3,4,5,6\n")
		require.Error(t, err)

		_, err = Parse("# only comments\n")
		require.Error(t, err)
	})

	t.Run("rejects malformed layout lines", func(t *testing.T) {
		_, err := Parse("1,2,3,4,5,6\n1,1,2,3,4,5\n")
		require.Error(t, err)
	})
}

func TestReplay(t *testing.T) {
	t.Run("rebuilds the position move by move", func(t *testing.T) {
		rec := &Record{
			RedOrder:  game.DefaultArrangement,
			BlueOrder: game.DefaultArrangement,
		}
		rec.AddMove(1, game.Move{PieceID: 1, From: game.Cell{Row: 0, Col: 0}, To: game.Cell{Row: 0, Col: 1}})
		rec.AddMove(2, game.Move{PieceID: 2, From: game.Cell{Row: 4, Col: 3}, To: game.Cell{Row: 4, Col: 2}})

		state, _, done, err := Replay(rec)

		require.NoError(t, err)
		require.False(t, done)
		require.Equal(t, 5, state.AliveCount(game.Red), "Red 1 captured its own piece 2")
		require.Equal(t, 5, state.AliveCount(game.Blue), "Blue 2 captured its own piece 3")
		require.Equal(t, game.Red, state.Turn, "Two plies return the move to red")
	})

	t.Run("replays through to a win", func(t *testing.T) {
		rec := &Record{
			RedOrder:  game.DefaultArrangement,
			BlueOrder: game.DefaultArrangement,
		}
		dice := []int{6, 6, 6, 6}
		steps := []game.Move{
			{PieceID: 6, From: game.Cell{Row: 2, Col: 0}, To: game.Cell{Row: 3, Col: 1}},
			{PieceID: 6, From: game.Cell{Row: 2, Col: 4}, To: game.Cell{Row: 1, Col: 3}},
			{PieceID: 6, From: game.Cell{Row: 3, Col: 1}, To: game.Cell{Row: 4, Col: 2}},
			{PieceID: 6, From: game.Cell{Row: 1, Col: 3}, To: game.Cell{Row: 0, Col: 2}},
		}
		for i, m := range steps {
			rec.AddMove(dice[i], m)
		}
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 4, Col: 2}, To: game.Cell{Row: 4, Col: 3}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 0, Col: 2}, To: game.Cell{Row: 0, Col: 1}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 4, Col: 3}, To: game.Cell{Row: 4, Col: 4}})

		_, winner, done, err := Replay(rec)

		require.NoError(t, err)
		require.True(t, done, "The final step reaches red's goal corner")
		require.Equal(t, game.Red, winner)
	})

	t.Run("rejects an illegal ply", func(t *testing.T) {
		rec := &Record{
			RedOrder:  game.DefaultArrangement,
			BlueOrder: game.DefaultArrangement,
		}
		rec.AddMove(1, game.Move{PieceID: 2, From: game.Cell{Row: 0, Col: 1}, To: game.Cell{Row: 1, Col: 1}})

		_, _, _, err := Replay(rec)

		require.Error(t, err, "Piece 2 may not move on a roll of 1 while piece 1 lives")
	})

	t.Run("rejects moves after the game ended", func(t *testing.T) {
		rec := &Record{
			RedOrder:  game.DefaultArrangement,
			BlueOrder: game.DefaultArrangement,
		}
		// Red 6 marches to the goal while blue 6 shuffles.
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 2, Col: 0}, To: game.Cell{Row: 3, Col: 1}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 2, Col: 4}, To: game.Cell{Row: 1, Col: 3}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 3, Col: 1}, To: game.Cell{Row: 4, Col: 2}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 1, Col: 3}, To: game.Cell{Row: 1, Col: 2}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 4, Col: 2}, To: game.Cell{Row: 4, Col: 3}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 1, Col: 2}, To: game.Cell{Row: 1, Col: 1}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 4, Col: 3}, To: game.Cell{Row: 4, Col: 4}})
		rec.AddMove(6, game.Move{PieceID: 6, From: game.Cell{Row: 1, Col: 1}, To: game.Cell{Row: 1, Col: 0}})

		_, _, _, err := Replay(rec)

		require.Error(t, err, "A ply after the winning move must be rejected")
	})
}
