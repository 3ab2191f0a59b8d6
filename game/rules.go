package game

import (
	"github.com/pkg/errors"
)

func (b *Board) onBoard(sq Square) bool {
	return sq >= 0 && int(sq) < len(b.cells)
}

// IsUnblockedMove reports whether from-to is a rook move whose destination
// and intermediate squares are all empty.
func (b *Board) IsUnblockedMove(from, to Square) bool {
	if !b.onBoard(from) || !b.onBoard(to) || b.cells[to] != Empty {
		return false
	}
	dir, ok := b.geom.Direction(from, to)
	if !ok {
		return false
	}
	for _, sq := range b.geom.Ray(from, dir) {
		if b.cells[sq] != Empty {
			return false
		}
		if sq == to {
			return true
		}
	}
	return false
}

// IsLegal reports whether the side to move may play from-to. Only the king
// may land on the throne; any piece may pass over it while it is empty.
func (b *Board) IsLegal(from, to Square) bool {
	if !b.onBoard(from) || !b.onBoard(to) {
		return false
	}
	piece := b.cells[from]
	if piece == Empty || piece.Side() != b.turn {
		return false
	}
	if to == b.geom.Throne() && piece != King {
		return false
	}
	return b.IsUnblockedMove(from, to)
}

// LegalMoves lists every move available to side's pieces, regardless of
// whose turn it is. Moves are ordered by origin square index, then by
// direction, then by distance.
func (b *Board) LegalMoves(side Side) []Move {
	var moves []Move
	b.eachMove(side, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasMove reports whether side has at least one move.
func (b *Board) HasMove(side Side) bool {
	found := false
	b.eachMove(side, func(Move) bool {
		found = true
		return false
	})
	return found
}

// eachMove calls yield for side's moves until yield returns false.
func (b *Board) eachMove(side Side, yield func(Move) bool) {
	throne := b.geom.Throne()
	for from, piece := range b.cells {
		if piece == Empty || piece.Side() != side {
			continue
		}
		for _, dir := range Directions {
			for _, to := range b.geom.Ray(Square(from), dir) {
				if b.cells[to] != Empty {
					break
				}
				if to == throne && piece != King {
					continue
				}
				if !yield(Move{From: Square(from), To: to}) {
					return
				}
			}
		}
	}
}

// ApplyMove plays m for the side to move and resolves captures, wins,
// repetition and stalemate.
func (b *Board) ApplyMove(m Move) error {
	if b.winner != NoSide {
		return errors.Wrapf(ErrGameOver, "%s already won", b.winner)
	}
	if !b.IsLegal(m.From, m.To) {
		return errors.Wrapf(ErrIllegalMove, "%s for %s", m.Notation(b.geom), b.turn)
	}
	piece := b.cells[m.From]
	if b.king != NoSquare && b.cells[b.king] != King {
		panic("king position out of sync with board")
	}

	rec := undoRecord{
		king:     b.king,
		winner:   b.winner,
		repeated: b.repeated,
		key:      b.key(),
	}

	if b.limit > 0 && b.moveCount > b.limit {
		b.declare(b.turn.Opponent())
	}

	if _, ok := b.seen[rec.key]; !ok {
		b.seen[rec.key] = b.turn
		rec.recorded = true
	}

	b.set(&rec, m.From, Empty)
	b.set(&rec, m.To, piece)
	if piece == King {
		b.king = m.To
		if b.geom.IsEdge(m.To) {
			b.declare(Defenders)
		}
	}

	for _, dir := range Directions {
		companion, ok := b.geom.Step(m.To, dir, 2)
		if !ok {
			continue
		}
		if b.cells[companion].Side() == b.turn || companion == b.geom.Throne() {
			b.capture(&rec, m.To, companion)
		}
	}

	b.history = append(b.history, rec)
	b.moveCount++
	b.turn = b.turn.Opponent()

	if side, ok := b.seen[b.key()]; ok && side == b.turn {
		b.repeated = true
		b.declare(b.turn)
	}
	if !b.HasMove(b.turn) {
		b.declare(b.turn.Opponent())
	}
	return nil
}

// capture removes the piece between sq0, where a piece just landed, and sq2
// if the capture rules allow it.
func (b *Board) capture(rec *undoRecord, sq0, sq2 Square) {
	throne := b.geom.Throne()
	victim := b.geom.Between(sq0, sq2)
	mover := b.cells[sq0].Side()

	switch target := b.cells[victim]; {
	case target == King:
		if mover == Attackers && b.kingSurrounded(victim, sq0, sq2) {
			b.set(rec, victim, Empty)
			b.king = NoSquare
			b.declare(Attackers)
		}
	case target != Empty && target.Side() == mover.Opponent() &&
		(b.cells[sq2].Side() == mover || (sq2 == throne && b.cells[throne] == Empty)):
		b.set(rec, victim, Empty)
	case target == Defender && mover == Attackers && sq2 == throne && b.cells[throne] == King:
		// A defender beside the occupied throne falls once exactly three
		// throne neighbours hold attackers.
		if b.attackersAroundThrone() == 3 {
			b.set(rec, victim, Empty)
		}
	}
}

// kingSurrounded applies the king's capture rules for a king on sq.
func (b *Board) kingSurrounded(sq, sq0, sq2 Square) bool {
	throne := b.geom.Throne()
	switch {
	case sq == throne:
		return b.attackersAroundThrone() == 4
	case b.geom.IsThroneNeighbor(sq):
		for _, dir := range Directions {
			n, _ := b.geom.Step(sq, dir, 1)
			if n != throne && b.cells[n] != Attacker {
				return false
			}
		}
		return true
	default:
		return b.cells[sq0] == Attacker && b.cells[sq2] == Attacker
	}
}

func (b *Board) attackersAroundThrone() int {
	count := 0
	for _, sq := range b.geom.ThroneNeighbors() {
		if b.cells[sq] == Attacker {
			count++
		}
	}
	return count
}

// Undo reverts the last applied move. It does nothing at the start of the
// history. When the move being undone ended the game by repetition, the
// position it recorded stays in the seen table.
func (b *Board) Undo() {
	if len(b.history) == 0 {
		return
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	endedByRepetition := b.repeated && !rec.repeated
	if rec.recorded && !endedByRepetition {
		delete(b.seen, rec.key)
	}

	for i := len(rec.changes) - 1; i >= 0; i-- {
		c := rec.changes[i]
		b.cells[c.sq] = c.prev
	}
	b.king = rec.king
	b.winner = rec.winner
	b.repeated = rec.repeated
	b.moveCount--
	b.turn = b.turn.Opponent()
}
