package searcher

import (
	"math"

	"tablut/game"

	"github.com/pkg/errors"
)

// Infinity bounds every evaluation, including decided games.
const Infinity = math.MaxInt32

// ErrNoMove is returned when the side to move cannot move or the game is over.
var ErrNoMove = errors.New("no move available")

type Searcher interface {
	FindNextMove(board *game.Board) (game.Move, int, error)
}

// sense is +1 where the side to move maximises (defenders) and -1 otherwise.
func sense(side game.Side) int {
	if side == game.Defenders {
		return 1
	}
	return -1
}
