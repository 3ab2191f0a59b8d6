package game

import "math"

const (
	// WinningValue is the magnitude of a decided game, positive when the
	// defenders won.
	WinningValue = math.MaxInt32 - 20
	// WillWinValue scores a king with two open lanes to the edge. It stays
	// below WinningValue so finishing a win beats approaching one.
	WillWinValue = math.MaxInt32 - 40

	centerCap       = 11
	clearPathBonus  = 5
	crowdingPenalty = 2
)

// Evaluate scores a board; positive values favour the defenders.
type Evaluate func(*Board) int

// EvaluateHeuristic combines king centralisation, open lanes to the edge,
// crowding around the king, attacker spread and material.
func EvaluateHeuristic(b *Board) int {
	if score, done := terminalScore(b); done {
		return score
	}
	g := b.geom
	king := b.KingPosition()
	kc, kr := g.Col(king), g.Row(king)
	tc, tr := g.Col(g.Throne()), g.Row(g.Throne())

	score := min((kc-tc)*(kc-tc)+(kr-tr)*(kr-tr), centerCap)

	openLanes := 0
	for _, dir := range Directions {
		if b.clearPathToEdge(dir) {
			openLanes++
			score += clearPathBonus
		}
		if n, ok := g.Step(king, dir, 1); ok && b.cells[n] != Empty {
			score -= crowdingPenalty
		}
	}
	if openLanes > 1 {
		return WillWinValue - (openLanes + 2*b.moveCount)
	}

	spread := 0
	attackers, defenders := 0, 0
	for sq, p := range b.cells {
		switch p.Side() {
		case Attackers:
			attackers++
			dc, dr := g.Col(Square(sq))-kc, g.Row(Square(sq))-kr
			spread += dc*dc + dr*dr
		case Defenders:
			defenders++
		}
	}

	return score + spread + defenders - attackers/2
}

// EvaluateMaterial scores only the piece balance.
func EvaluateMaterial(b *Board) int {
	if score, done := terminalScore(b); done {
		return score
	}
	attackers, defenders := 0, 0
	for _, p := range b.cells {
		switch p.Side() {
		case Attackers:
			attackers++
		case Defenders:
			defenders++
		}
	}
	return 2*defenders - attackers
}

func terminalScore(b *Board) (int, bool) {
	switch b.winner {
	case Defenders:
		return WinningValue - b.moveCount, true
	case Attackers:
		return -WinningValue + b.moveCount, true
	default:
		return 0, false
	}
}

// clearPathToEdge reports whether the king can slide to the edge in dir.
func (b *Board) clearPathToEdge(dir Direction) bool {
	ray := b.geom.Ray(b.king, dir)
	if len(ray) == 0 {
		return false
	}
	return b.IsUnblockedMove(b.king, ray[len(ray)-1])
}
