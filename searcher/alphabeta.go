package searcher

import (
	"reflect"
	"runtime"
	"strings"

	"tablut/experiments/metrics"
	"tablut/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(ab *AlphaBeta)

// AlphaBeta is a depth-bounded minimax search with alpha-beta pruning.
// Defenders maximise, attackers minimise.
type AlphaBeta struct {
	depth     int // 0 defers to DepthFor
	evaluate  game.Evaluate
	evaluator string
	metrics   metrics.Collector
	last      metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
			ab.evaluator = functionName(evaluate)
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		evaluate:  game.EvaluateHeuristic,
		evaluator: functionName(game.EvaluateHeuristic),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

// FindNextMove searches from board for the side to move and returns the
// chosen move with its value. The board is not modified.
func (ab *AlphaBeta) FindNextMove(board *game.Board) (game.Move, int, error) {
	if board.Winner() != game.NoSide {
		return game.NoMove, 0, errors.Wrapf(ErrNoMove, "%s already won", board.Winner())
	}
	if !board.HasMove(board.Turn()) {
		return game.NoMove, 0, errors.Wrapf(ErrNoMove, "%s cannot move", board.Turn())
	}

	depth := ab.depth
	if depth == 0 {
		depth = DepthFor(board)
	}

	ab.metrics.Start(depth, ab.evaluator)
	value, move := ab.search(board, depth, -Infinity, Infinity)
	ab.last = ab.metrics.Complete(value)

	log.Debug().
		Str("side", board.Turn().String()).
		Str("move", move.Notation(board.Geometry())).
		Int("value", value).
		Int("depth", depth).
		Msg("search complete")
	return move, value, nil
}

// LastMetric returns the statistics of the most recent search. They are
// empty unless WithMetrics was given.
func (ab *AlphaBeta) LastMetric() metrics.SearchMetric {
	return ab.last
}

// search returns the value of board and, when it has children, the first
// move reaching that value. Each child is played on its own copy of board.
func (ab *AlphaBeta) search(board *game.Board, depth, alpha, beta int) (int, game.Move) {
	ab.metrics.AddNode()
	if depth == 0 || board.Winner() != game.NoSide {
		ab.metrics.AddLeaf()
		return ab.evaluate(board), game.NoMove
	}

	s := sense(board.Turn())
	bestValue := -s * Infinity
	bestMove := game.NoMove
	for _, move := range board.LegalMoves(board.Turn()) {
		child := board.Copy()
		if err := child.ApplyMove(move); err != nil {
			panic(errors.Wrap(err, "generated move rejected"))
		}
		value, _ := ab.search(child, depth-1, alpha, beta)

		if s*value > s*bestValue {
			bestValue, bestMove = value, move
			if s > 0 {
				alpha = max(alpha, value)
			} else {
				beta = min(beta, value)
			}
			if beta <= alpha {
				ab.metrics.AddCutoff()
				break
			}
		}
	}
	return bestValue, bestMove
}

func functionName(f any) string {
	name := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	return name[strings.LastIndex(name, ".")+1:]
}
