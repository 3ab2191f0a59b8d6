package game

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Layout describes a starting position. Squares are given as (col, row) pairs
// so a layout can be written before its geometry exists.
type Layout struct {
	Size      int
	Attackers [][2]int
	Defenders [][2]int
	King      [2]int
	Turn      Side
}

// StandardLayout is the canonical 9x9 opening: attackers in four T-shaped
// groups on the edges, defenders in a cross around the king on the throne.
func StandardLayout() Layout {
	return Layout{
		Size: StandardSize,
		Attackers: [][2]int{
			{0, 3}, {0, 4}, {0, 5}, {1, 4},
			{8, 3}, {8, 4}, {8, 5}, {7, 4},
			{3, 0}, {4, 0}, {5, 0}, {4, 1},
			{3, 8}, {4, 8}, {5, 8}, {4, 7},
		},
		Defenders: [][2]int{
			{4, 5}, {5, 4}, {4, 3}, {3, 4},
			{4, 6}, {4, 2}, {2, 4}, {6, 4},
		},
		King: [2]int{4, 4},
		Turn: Attackers,
	}
}

// Validate reports every problem with the layout at once.
func (l Layout) Validate() error {
	g, err := GeometryOf(l.Size)
	if err != nil {
		return errors.Wrap(ErrInvalidLayout, err.Error())
	}

	var errs *multierror.Error
	seen := make(map[Square]bool)
	place := func(kind string, p [2]int) {
		sq := g.Sq(p[0], p[1])
		if sq == NoSquare {
			errs = multierror.Append(errs, errors.Errorf("%s at (%d, %d) is off the board", kind, p[0], p[1]))
			return
		}
		if seen[sq] {
			errs = multierror.Append(errs, errors.Errorf("%s at %s overlaps another piece", kind, g.Name(sq)))
		}
		seen[sq] = true
		if sq == g.Throne() && kind != "king" {
			errs = multierror.Append(errs, errors.Errorf("%s may not start on the throne %s", kind, g.Name(sq)))
		}
	}
	place("king", l.King)
	for _, p := range l.Attackers {
		place("attacker", p)
	}
	for _, p := range l.Defenders {
		place("defender", p)
	}
	if sq := g.Sq(l.King[0], l.King[1]); sq != NoSquare && g.IsEdge(sq) {
		errs = multierror.Append(errs, errors.Errorf("king may not start on the edge square %s", g.Name(sq)))
	}
	if l.Turn != Attackers && l.Turn != Defenders {
		errs = multierror.Append(errs, errors.Errorf("turn must be attackers or defenders, got %s", l.Turn))
	}

	if errs != nil {
		return &LayoutError{Problems: errs}
	}
	return nil
}
