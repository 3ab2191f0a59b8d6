package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// change is one cell edit of a move, kept so the move can be reverted.
type change struct {
	sq   Square
	prev Piece
}

// undoRecord holds everything a single ApplyMove changed.
type undoRecord struct {
	changes  []change
	king     Square
	winner   Side
	repeated bool
	// key is the position before the move; recorded says the move inserted it
	// into the seen table.
	key      positionKey
	recorded bool
}

// Board is the full mutable state of one game. It is changed only through
// ApplyMove and Undo; Copy gives an independent board for look-ahead.
type Board struct {
	geom      *Geometry
	cells     []Piece
	turn      Side
	moveCount int
	limit     int // 0 for none
	king      Square
	winner    Side
	repeated  bool
	seen      map[positionKey]Side
	history   []undoRecord
}

// NewBoard returns a board in the standard 9x9 opening position.
func NewBoard() *Board {
	b, err := NewBoardFromLayout(StandardLayout())
	if err != nil {
		panic(fmt.Sprintf("standard layout rejected: %v", err))
	}
	return b
}

// NewBoardFromLayout validates l and returns a board in that position.
func NewBoardFromLayout(l Layout) (*Board, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	g, _ := GeometryOf(l.Size)
	b := &Board{
		geom:  g,
		cells: make([]Piece, g.NumSquares()),
		turn:  l.Turn,
		king:  g.Sq(l.King[0], l.King[1]),
		seen:  make(map[positionKey]Side),
	}
	for _, p := range l.Attackers {
		b.cells[g.Sq(p[0], p[1])] = Attacker
	}
	for _, p := range l.Defenders {
		b.cells[g.Sq(p[0], p[1])] = Defender
	}
	b.cells[b.king] = King
	return b, nil
}

// Copy returns a deep copy sharing no mutable state with b.
func (b *Board) Copy() *Board {
	cells := make([]Piece, len(b.cells))
	copy(cells, b.cells)
	history := make([]undoRecord, len(b.history))
	copy(history, b.history)

	return &Board{
		geom:      b.geom, // Geometry is immutable
		cells:     cells,
		turn:      b.turn,
		moveCount: b.moveCount,
		limit:     b.limit,
		king:      b.king,
		winner:    b.winner,
		repeated:  b.repeated,
		seen:      maps.Clone(b.seen),
		history:   history,
	}
}

func (b *Board) Geometry() *Geometry { return b.geom }

// Turn returns the side to move.
func (b *Board) Turn() Side { return b.turn }

// Winner returns the side that has won, NoSide while the game is running.
func (b *Board) Winner() Side { return b.winner }

// MoveCount is the number of moves applied and not undone.
func (b *Board) MoveCount() int { return b.moveCount }

// RepeatedPosition reports whether the game ended by repetition.
func (b *Board) RepeatedPosition() bool { return b.repeated }

// KingPosition returns the king's square, or NoSquare once it was captured.
func (b *Board) KingPosition() Square {
	if b.king != NoSquare && b.cells[b.king] != King {
		panic(fmt.Sprintf("king cache %s holds %s", b.geom.Name(b.king), b.cells[b.king]))
	}
	return b.king
}

func (b *Board) Get(sq Square) Piece { return b.cells[sq] }

// At returns the piece at (col, row).
func (b *Board) At(col, row int) Piece {
	return b.cells[b.geom.Sq(col, row)]
}

// SetMoveLimit makes the mover lose once more than n moves have been played.
// It fails when 2n moves have already been played.
func (b *Board) SetMoveLimit(n int) error {
	if 2*n <= b.moveCount {
		return errors.Wrapf(ErrMoveLimit, "limit %d rejected after %d moves", n, b.moveCount)
	}
	b.limit = n
	return nil
}

// PieceLocations returns the squares holding side's pieces in index order.
// The king counts as a defender.
func (b *Board) PieceLocations(side Side) []Square {
	var out []Square
	for sq, p := range b.cells {
		if p != Empty && p.Side() == side {
			out = append(out, Square(sq))
		}
	}
	return out
}

// ClearUndo drops the undo history. The position and result are unchanged.
func (b *Board) ClearUndo() {
	b.history = nil
}

func (b *Board) String() string {
	return b.Render(true)
}

// Render draws the board with the highest row first. With coordinates, row
// numbers run down the left side and column letters along the bottom.
func (b *Board) Render(coordinates bool) string {
	var sb strings.Builder
	size := b.geom.Size()
	for r := size - 1; r >= 0; r-- {
		if coordinates {
			fmt.Fprintf(&sb, "%2d", r+1)
		} else {
			sb.WriteString("  ")
		}
		for c := 0; c < size; c++ {
			fmt.Fprintf(&sb, " %s", b.At(c, r))
		}
		sb.WriteString("\n")
	}
	if coordinates {
		sb.WriteString("  ")
		for c := 0; c < size; c++ {
			fmt.Fprintf(&sb, " %c", 'a'+c)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// set writes p to sq and records the old content for undo.
func (b *Board) set(rec *undoRecord, sq Square, p Piece) {
	rec.changes = append(rec.changes, change{sq: sq, prev: b.cells[sq]})
	b.cells[sq] = p
}

// declare records the result unless one was already decided.
func (b *Board) declare(side Side) {
	if b.winner == NoSide {
		b.winner = side
	}
}
