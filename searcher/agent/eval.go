package agent

import (
	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/searcher"
)

type searchAgent struct {
	ab *searcher.AlphaBeta
}

// NewSearchAgent returns an agent playing the alpha-beta search's choice.
func NewSearchAgent(ab *searcher.AlphaBeta) Agent {
	return searchAgent{ab: ab}
}

func (a searchAgent) FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error) {
	move, _, err := a.ab.FindNextMove(board)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	return move, a.ab.LastMetric(), nil
}
