package agent

import (
	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/searcher"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal
// moves. Equal seeds replay equal games.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error) {
	if board.Winner() != game.NoSide {
		return game.NoMove, metrics.SearchMetric{}, errors.Wrapf(searcher.ErrNoMove, "%s already won", board.Winner())
	}
	moves := board.LegalMoves(board.Turn())
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, errors.Wrapf(searcher.ErrNoMove, "%s cannot move", board.Turn())
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Evaluator: "random"}, nil
}
