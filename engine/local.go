package engine

import (
	"time"

	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/meta"
	"tablut/searcher/agent"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(e *LocalGame)

// LocalGame owns the authoritative board of one game between two in-process agents.
type LocalGame struct {
	ID        uuid.UUID
	Board     *game.Board
	Agents    map[game.Side]agent.Agent
	maxTurns  int
	moveLimit int
}

// WithBoard starts from board instead of the standard opening.
func WithBoard(board *game.Board) Option {
	return func(e *LocalGame) {
		if board != nil {
			e.Board = board
		}
	}
}

// WithMoveLimit makes the side to move lose once more than n moves were played.
func WithMoveLimit(n int) Option {
	return func(e *LocalGame) {
		if n > 0 {
			e.moveLimit = n
		}
	}
}

// WithMaxTurns stops Run without a winner after n moves.
func WithMaxTurns(n int) Option {
	return func(e *LocalGame) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

func LocalEngine(attackers, defenders agent.Agent, options ...Option) (*LocalGame, error) {
	if attackers == nil || defenders == nil {
		return nil, errors.New("both sides need an agent")
	}
	e := &LocalGame{
		ID:    uuid.New(),
		Board: game.NewBoard(),
		Agents: map[game.Side]agent.Agent{
			game.Attackers: attackers,
			game.Defenders: defenders,
		},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	if e.moveLimit > 0 {
		if err := e.Board.SetMoveLimit(e.moveLimit); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Play validates m against the legal moves of the side to move and applies
// it. A rejected move leaves the board untouched.
func (e *LocalGame) Play(m game.Move) error {
	if winner := e.Board.Winner(); winner != game.NoSide {
		return errors.Wrapf(game.ErrGameOver, "%s already won", winner)
	}
	legal := e.Board.LegalMoves(e.Board.Turn())
	if !slices.Contains(legal, m) {
		return errors.Wrapf(game.ErrIllegalMove, "%s is not available to %s", m.Notation(e.Board.Geometry()), e.Board.Turn())
	}
	return e.Board.ApplyMove(m)
}

// Run executes the entire game loop until a winner is found.
func (e *LocalGame) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	logger := log.With().Str("game", e.ID.String()).Logger()
	gameMetric := metrics.GameMetric{
		ID:           e.ID.String(),
		StartingSide: e.Board.Turn().String(),
		StartTime:    time.Now(),
	}
	logger.Info().Msgf("%s are starting", e.Board.Turn())

	var moveMetrics []metrics.MoveMetric
	for turn := 1; e.Board.Winner() == game.NoSide && turn <= e.maxTurns; turn++ {
		side := e.Board.Turn()
		move, searchMetric, err := e.Agents[side].FindMove(e.Board)
		if err != nil {
			return game.NoSide, gameMetric, moveMetrics, errors.Wrapf(err, "turn %d: %s agent failed", turn, side)
		}
		if err := e.Play(move); err != nil {
			return game.NoSide, gameMetric, moveMetrics, errors.Wrapf(err, "turn %d", turn)
		}

		notation := move.Notation(e.Board.Geometry())
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Side:         side.String(),
			Move:         notation,
			SearchMetric: searchMetric,
		})
		logger.Debug().Int("turn", turn).Str("side", side.String()).Str("move", notation).Msg("move played")
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.Board.MoveCount()
	gameMetric.Winner = e.Board.Winner().String()
	gameMetric.Repeated = e.Board.RepeatedPosition()

	if e.Board.Winner() != game.NoSide {
		logger.Info().Bool("repeated", gameMetric.Repeated).Msgf("game over after %d moves, %s won", gameMetric.TotalMoves, e.Board.Winner())
	} else {
		logger.Info().Msgf("stopped after %d moves without a winner", gameMetric.TotalMoves)
	}
	return e.Board.Winner(), gameMetric, moveMetrics, nil
}
