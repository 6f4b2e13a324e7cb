package wtn

import (
	"fmt"

	"einstein/game"
)

// Replay reconstructs a game from a record, validating every move against
// the move generator. Red moves first. It returns the final state and the
// winner, if the record ends in a terminal position.
func Replay(rec *Record) (game.State, game.Player, bool, error) {
	state, err := game.NewGameFromArrangements(rec.RedOrder, rec.BlueOrder, game.Red)
	if err != nil {
		return game.State{}, game.Red, false, err
	}

	for i, ply := range rec.Moves {
		if state.Terminal() {
			return game.State{}, game.Red, false, fmt.Errorf("move %d follows a terminal position", i+1)
		}
		if !game.IsLegal(state, ply.Die, ply.Move) {
			return game.State{}, game.Red, false, fmt.Errorf(
				"illegal move at ply %d: %s with die %d", i+1, ply.Move, ply.Die)
		}
		state = state.Apply(ply.Move)
	}

	winner, done := state.Winner()
	return state, winner, done, nil
}
