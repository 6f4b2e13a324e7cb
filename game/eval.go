package game

import "sort"

// WinScore dominates any achievable positional score, so search prefers a
// forced win (and avoids a forced loss) over every heuristic tradeoff.
const WinScore = 1000.0

func goalDistance(p Player, c Cell) int {
	t := Target(p)
	dr := t.Row - c.Row
	if dr < 0 {
		dr = -dr
	}
	dc := t.Col - c.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

func reachableSquares(s State, p Player) map[Cell]bool {
	squares := make(map[Cell]bool, 18)
	dirs := Directions(p)
	for id := 1; id <= 6; id++ {
		from, ok := s.PieceCell(p, id)
		if !ok {
			continue
		}
		for _, d := range dirs {
			to := Cell{from.Row + d.Row, from.Col + d.Col}
			if to.InBounds() {
				squares[to] = true
			}
		}
	}
	return squares
}

// EvaluatePosition is the default static evaluation: material weighted by
// piece id, advancement of each side's two most advanced pieces, and a
// penalty for pieces standing in the opponent's capture reach. Scores are
// Red-centric and negated for Blue, so the function is antisymmetric between
// perspectives. Terminal states return the dominating ±WinScore.
func EvaluatePosition(s State, perspective Player) float64 {
	if winner, done := s.Winner(); done {
		if winner == perspective {
			return WinScore
		}
		return -WinScore
	}

	score := 0.0
	var redDists, blueDists []int
	for id := 1; id <= 6; id++ {
		if c, ok := s.PieceCell(Red, id); ok {
			d := goalDistance(Red, c)
			score += 2 + float64(id)*0.5 - 0.1*float64(d)
			redDists = append(redDists, d)
		}
		if c, ok := s.PieceCell(Blue, id); ok {
			d := goalDistance(Blue, c)
			score -= 2 + float64(id)*0.5 - 0.1*float64(d)
			blueDists = append(blueDists, d)
		}
	}

	// Reward the two closest runners on each side.
	sort.Ints(redDists)
	sort.Ints(blueDists)
	for i, d := range redDists {
		if i == 2 {
			break
		}
		if d < 6 {
			score += float64(6 - d)
		}
	}
	for i, d := range blueDists {
		if i == 2 {
			break
		}
		if d < 6 {
			score -= float64(6 - d)
		}
	}

	redReach := reachableSquares(s, Red)
	blueReach := reachableSquares(s, Blue)
	for id := 1; id <= 6; id++ {
		if c, ok := s.PieceCell(Red, id); ok && blueReach[c] {
			score -= 1.5
		}
		if c, ok := s.PieceCell(Blue, id); ok && redReach[c] {
			score += 1.5
		}
	}

	if perspective == Blue {
		return -score
	}
	return score
}
