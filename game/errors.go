package game

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrIllegalMove is returned for a move that breaks the movement or turn rules.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned when a move is attempted after the game was decided.
	ErrGameOver = errors.New("game is over")
	// ErrMoveLimit is returned when a move limit is already exceeded by the moves played.
	ErrMoveLimit = errors.New("invalid move limit")
	// ErrInvalidLayout wraps every problem found while validating a Layout.
	ErrInvalidLayout = errors.New("invalid layout")
)

// LayoutError lists every problem found in a Layout. It matches
// ErrInvalidLayout and unwraps to the underlying *multierror.Error.
type LayoutError struct {
	Problems *multierror.Error
}

func (e *LayoutError) Error() string {
	return ErrInvalidLayout.Error() + ": " + e.Problems.Error()
}

func (e *LayoutError) Is(target error) bool { return target == ErrInvalidLayout }

func (e *LayoutError) Unwrap() error { return e.Problems }
