package agent

import (
	"tablut/experiments/metrics"
	"tablut/game"
)

type Agent interface {
	// FindMove returns a move for the side to move on board and the search
	// metrics (if collected). The board must not be modified.
	FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error)
}
