package game

// Move relocates the piece on From to To along a rank or file.
type Move struct {
	From Square
	To   Square
}

// NoMove is returned when no move could be found.
var NoMove = Move{From: NoSquare, To: NoSquare}

func (m Move) IsNone() bool { return m == NoMove }

// Notation renders the move as "from-to" using g's square names.
func (m Move) Notation(g *Geometry) string {
	return g.Name(m.From) + "-" + g.Name(m.To)
}
