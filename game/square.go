package game

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

const (
	MinSize      = 5
	MaxSize      = 11
	StandardSize = 9
)

// Direction of a rook step. The order is relied upon by ThroneNeighbors.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the four rook directions in enumeration order.
var Directions = [4]Direction{North, East, South, West}

var deltas = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Square is a linear index col + row*size into a Geometry.
type Square int

// NoSquare marks an off-board result.
const NoSquare Square = -1

// Geometry holds the static tables for one board size. Geometries are shared
// between boards and never mutated after construction.
type Geometry struct {
	size   int
	throne Square
	// rays[sq][dir] lists the squares reached from sq stepping outward in dir.
	rays [][4][]Square
}

var (
	geometries   = map[int]*Geometry{}
	geometriesMu sync.Mutex
)

// GeometryOf returns the cached geometry for an odd size in [MinSize, MaxSize].
func GeometryOf(size int) (*Geometry, error) {
	if size < MinSize || size > MaxSize || size%2 == 0 {
		return nil, errors.Errorf("board size %d must be odd and within [%d, %d]", size, MinSize, MaxSize)
	}
	geometriesMu.Lock()
	defer geometriesMu.Unlock()
	if g, ok := geometries[size]; ok {
		return g, nil
	}
	g := newGeometry(size)
	geometries[size] = g
	return g, nil
}

func newGeometry(size int) *Geometry {
	g := &Geometry{
		size:   size,
		throne: Square(size/2 + (size/2)*size),
		rays:   make([][4][]Square, size*size),
	}
	for sq := Square(0); int(sq) < size*size; sq++ {
		for _, dir := range Directions {
			var ray []Square
			for n := 1; ; n++ {
				next, ok := g.Step(sq, dir, n)
				if !ok {
					break
				}
				ray = append(ray, next)
			}
			g.rays[sq][dir] = ray
		}
	}
	return g
}

func (g *Geometry) Size() int { return g.size }

// NumSquares is size*size.
func (g *Geometry) NumSquares() int { return g.size * g.size }

func (g *Geometry) Throne() Square { return g.throne }

// Sq returns the square at (col, row), or NoSquare when off the board.
func (g *Geometry) Sq(col, row int) Square {
	if !g.Contains(col, row) {
		return NoSquare
	}
	return Square(col + row*g.size)
}

func (g *Geometry) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.size && row < g.size
}

func (g *Geometry) Col(sq Square) int { return int(sq) % g.size }

func (g *Geometry) Row(sq Square) int { return int(sq) / g.size }

func (g *Geometry) IsEdge(sq Square) bool {
	c, r := g.Col(sq), g.Row(sq)
	return c == 0 || r == 0 || c == g.size-1 || r == g.size-1
}

// Step moves n squares from sq in dir.
func (g *Geometry) Step(sq Square, dir Direction, n int) (Square, bool) {
	c := g.Col(sq) + deltas[dir][0]*n
	r := g.Row(sq) + deltas[dir][1]*n
	if !g.Contains(c, r) {
		return NoSquare, false
	}
	return Square(c + r*g.size), true
}

// Ray returns the squares outward from sq in dir, nearest first.
func (g *Geometry) Ray(sq Square, dir Direction) []Square {
	return g.rays[sq][dir]
}

// ThroneNeighbors returns the four squares around the throne in N, E, S, W order.
func (g *Geometry) ThroneNeighbors() [4]Square {
	var out [4]Square
	for i, dir := range Directions {
		out[i], _ = g.Step(g.throne, dir, 1)
	}
	return out
}

func (g *Geometry) IsThroneNeighbor(sq Square) bool {
	for _, n := range g.ThroneNeighbors() {
		if n == sq {
			return true
		}
	}
	return false
}

// IsRookMove reports whether from and to are distinct squares on one rank or file.
func (g *Geometry) IsRookMove(from, to Square) bool {
	if from == to {
		return false
	}
	return g.Col(from) == g.Col(to) || g.Row(from) == g.Row(to)
}

// Direction returns the direction of the rook move from-to. ok is false when
// the squares are not on one line.
func (g *Geometry) Direction(from, to Square) (Direction, bool) {
	if !g.IsRookMove(from, to) {
		return 0, false
	}
	switch {
	case g.Row(to) > g.Row(from):
		return North, true
	case g.Row(to) < g.Row(from):
		return South, true
	case g.Col(to) > g.Col(from):
		return East, true
	default:
		return West, true
	}
}

// Between returns the square halfway between two squares two steps apart on a line.
func (g *Geometry) Between(a, b Square) Square {
	return Square((g.Col(a)+g.Col(b))/2 + ((g.Row(a)+g.Row(b))/2)*g.size)
}

// Name renders sq as column letter plus 1-based row, e.g. "e5".
func (g *Geometry) Name(sq Square) string {
	if sq < 0 || int(sq) >= g.NumSquares() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+g.Col(sq), g.Row(sq)+1)
}

// ParseSquare is the inverse of Name.
func (g *Geometry) ParseSquare(name string) (Square, error) {
	var col rune
	var row int
	if _, err := fmt.Sscanf(name, "%c%d", &col, &row); err != nil {
		return NoSquare, errors.Wrapf(err, "invalid square %q", name)
	}
	sq := g.Sq(int(col-'a'), row-1)
	if sq == NoSquare {
		return NoSquare, errors.Errorf("square %q is off a %dx%d board", name, g.size, g.size)
	}
	return sq, nil
}
