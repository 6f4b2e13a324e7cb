package game

// MovablePieceIDs returns the candidate mover ids for a die roll, in
// ascending order. If the rolled id survives it is the sole candidate;
// otherwise the closest surviving id below and/or above the roll may move.
func MovablePieceIDs(s State, p Player, die int) []int {
	if s.Alive(p, die) {
		return []int{die}
	}

	var candidates []int
	for id := die - 1; id >= 1; id-- {
		if s.Alive(p, id) {
			candidates = append(candidates, id)
			break
		}
	}
	for id := die + 1; id <= 6; id++ {
		if s.Alive(p, id) {
			candidates = append(candidates, id)
			break
		}
	}
	return candidates
}

// LegalMoves enumerates the legal moves for the side to move given a die
// roll. Every in-bounds destination is legal: landing captures any occupant,
// friendly or enemy. The order is deterministic (ascending mover id, then
// the side's direction order) so callers can rely on it for reproducible
// tie-breaking. The result is empty only if the moving side has no pieces
// left, which is already a terminal state.
func LegalMoves(s State, die int) []Move {
	p := s.Turn
	candidates := MovablePieceIDs(s, p, die)
	moves := make([]Move, 0, len(candidates)*3)
	dirs := Directions(p)
	for _, id := range candidates {
		from, ok := s.PieceCell(p, id)
		if !ok {
			continue
		}
		for _, d := range dirs {
			to := Cell{from.Row + d.Row, from.Col + d.Col}
			if to.InBounds() {
				moves = append(moves, Move{PieceID: id, From: from, To: to})
			}
		}
	}
	return moves
}

// IsLegal reports whether the move is among the legal moves for the state
// and die roll.
func IsLegal(s State, die int, m Move) bool {
	for _, legal := range LegalMoves(s, die) {
		if legal == m {
			return true
		}
	}
	return false
}
