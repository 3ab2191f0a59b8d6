package game

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// custom builds a 9x9 board from (col, row) pairs.
func custom(t *testing.T, turn Side, king [2]int, attackers, defenders [][2]int) *Board {
	t.Helper()
	b, err := NewBoardFromLayout(Layout{
		Size:      StandardSize,
		Attackers: attackers,
		Defenders: defenders,
		King:      king,
		Turn:      turn,
	})
	require.NoError(t, err)
	return b
}

func mv(b *Board, fc, fr, tc, tr int) Move {
	return Move{From: b.geom.Sq(fc, fr), To: b.geom.Sq(tc, tr)}
}

func play(t *testing.T, b *Board, fc, fr, tc, tr int) {
	t.Helper()
	require.NoError(t, b.ApplyMove(mv(b, fc, fr, tc, tr)))
}

func TestStandardBoard(t *testing.T) {
	b := NewBoard()

	require.Equal(t, Attackers, b.Turn(), "Attackers should move first")
	require.Equal(t, NoSide, b.Winner())
	require.Equal(t, 0, b.MoveCount())
	require.Equal(t, b.geom.Throne(), b.KingPosition(), "King should start on the throne")
	require.Len(t, b.PieceLocations(Attackers), 16)
	require.Len(t, b.PieceLocations(Defenders), 9, "Defender locations should include the king")

	rendered := b.String()
	require.Contains(t, rendered, " 9 - - - B B B - - -\n")
	require.Contains(t, rendered, " 5 B B W W K W W B B\n")
	require.Contains(t, rendered, "   a b c d e f g h i\n")
	require.NotContains(t, b.Render(false), "a b c")
}

func TestLegalMovesMatchIsLegal(t *testing.T) {
	check := func(t *testing.T, b *Board) {
		legal := map[Move]bool{}
		for _, m := range b.LegalMoves(b.Turn()) {
			require.True(t, b.IsLegal(m.From, m.To), "Generated move %s should be legal", m.Notation(b.geom))
			legal[m] = true
		}
		n := Square(b.geom.NumSquares())
		for from := Square(0); from < n; from++ {
			for to := Square(0); to < n; to++ {
				if b.IsLegal(from, to) {
					require.True(t, legal[Move{From: from, To: to}],
						"Legal move %s should be generated", Move{From: from, To: to}.Notation(b.geom))
				}
			}
		}
	}

	t.Run("opening position", func(t *testing.T) {
		check(t, NewBoard())
	})

	t.Run("after several moves", func(t *testing.T) {
		b := NewBoard()
		for i := 0; i < 6 && b.Winner() == NoSide; i++ {
			moves := b.LegalMoves(b.Turn())
			require.NoError(t, b.ApplyMove(moves[(i*7)%len(moves)]))
			check(t, b)
		}
	})

	t.Run("has move agrees with legal moves", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.HasMove(Attackers))
		require.True(t, b.HasMove(Defenders), "Move generation should ignore whose turn it is")
	})
}

func TestMovementRules(t *testing.T) {
	b := custom(t, Defenders, [2]int{2, 2}, [][2]int{{7, 7}}, [][2]int{{4, 6}})
	throne := b.geom.Throne()
	defender := b.geom.Sq(4, 6)

	require.False(t, b.IsLegal(defender, throne), "Only the king may land on the throne")
	require.True(t, b.IsLegal(defender, b.geom.Sq(4, 3)), "Pieces may pass over the empty throne")
	require.NotContains(t, b.LegalMoves(Defenders), Move{From: defender, To: throne})
	require.Contains(t, b.LegalMoves(Defenders), Move{From: defender, To: b.geom.Sq(4, 3)})

	require.False(t, b.IsLegal(defender, b.geom.Sq(5, 7)), "Diagonal moves are illegal")
	require.False(t, b.IsLegal(b.geom.Sq(7, 7), b.geom.Sq(7, 5)), "Attackers may not move on the defenders' turn")
	require.False(t, b.IsLegal(b.geom.Sq(0, 0), b.geom.Sq(0, 1)), "Empty squares cannot move")
	require.False(t, b.IsLegal(NoSquare, b.geom.Sq(0, 1)))

	blocked := custom(t, Defenders, [2]int{2, 2}, [][2]int{{4, 7}}, [][2]int{{4, 5}})
	require.False(t, blocked.IsLegal(blocked.geom.Sq(4, 5), blocked.geom.Sq(4, 8)), "Pieces cannot jump")
	require.False(t, blocked.IsLegal(blocked.geom.Sq(4, 5), blocked.geom.Sq(4, 7)), "Pieces cannot land on an occupied square")

	err := blocked.ApplyMove(Move{From: blocked.geom.Sq(4, 5), To: blocked.geom.Sq(4, 8)})
	require.True(t, errors.Is(err, ErrIllegalMove))
	require.Equal(t, Defender, blocked.At(4, 5), "A rejected move should not change the board")
	require.Equal(t, 0, blocked.MoveCount())

	king := custom(t, Defenders, [2]int{4, 6}, [][2]int{{7, 7}}, nil)
	require.True(t, king.IsLegal(king.geom.Sq(4, 6), throne), "The king may return to the throne")
}

func TestCustodialCapture(t *testing.T) {
	t.Run("attackers flank a defender", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{1, 6}, {3, 8}}, [][2]int{{2, 6}})
		play(t, b, 3, 8, 3, 6)
		require.Equal(t, Empty, b.At(2, 6))
		require.Equal(t, Attacker, b.At(1, 6))
	})

	t.Run("defenders flank an attacker", func(t *testing.T) {
		b := custom(t, Defenders, [2]int{4, 4}, [][2]int{{1, 1}, {6, 7}}, [][2]int{{0, 1}, {2, 3}})
		play(t, b, 2, 3, 2, 1)
		require.Equal(t, Empty, b.At(1, 1))
	})

	t.Run("own pieces are never captured", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{1, 6}, {2, 6}, {3, 8}}, [][2]int{{6, 6}})
		play(t, b, 3, 8, 3, 6)
		require.Equal(t, Attacker, b.At(2, 6))
		require.Equal(t, Attacker, b.At(1, 6))
	})

	t.Run("a single flank does not capture", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{3, 8}}, [][2]int{{2, 6}})
		play(t, b, 3, 8, 3, 6)
		require.Equal(t, Defender, b.At(2, 6))
	})

	t.Run("the king helps defenders capture", func(t *testing.T) {
		b := custom(t, Defenders, [2]int{2, 2}, [][2]int{{3, 2}, {8, 8}}, [][2]int{{4, 7}})
		play(t, b, 4, 7, 4, 2)
		require.Equal(t, Empty, b.At(3, 2))
	})
}

func TestThroneCaptures(t *testing.T) {
	t.Run("empty throne is hostile to defenders", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{1, 1}, [][2]int{{6, 6}}, [][2]int{{4, 5}})
		play(t, b, 6, 6, 4, 6)
		require.Equal(t, Empty, b.At(4, 5))
	})

	t.Run("empty throne is hostile to attackers", func(t *testing.T) {
		b := custom(t, Defenders, [2]int{1, 1}, [][2]int{{3, 4}, {7, 7}}, [][2]int{{2, 7}})
		play(t, b, 2, 7, 2, 4)
		require.Equal(t, Empty, b.At(3, 4))
	})

	t.Run("defender beside the occupied throne falls to three attackers", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{4, 5}, {5, 4}, {4, 3}, {2, 7}}, [][2]int{{3, 4}})
		play(t, b, 2, 7, 2, 4)
		require.Equal(t, Empty, b.At(3, 4))
		require.Equal(t, King, b.At(4, 4), "The king itself should survive")
		require.Equal(t, NoSide, b.Winner())
	})

	t.Run("defender beside the occupied throne survives two attackers", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{4, 5}, {5, 4}, {2, 7}}, [][2]int{{3, 4}, {7, 0}})
		play(t, b, 2, 7, 2, 4)
		require.Equal(t, Defender, b.At(3, 4))
	})

	t.Run("defenders never capture their own piece against the occupied throne", func(t *testing.T) {
		b := custom(t, Defenders, [2]int{4, 4}, [][2]int{{4, 5}, {5, 4}, {4, 3}}, [][2]int{{3, 4}, {2, 7}})
		play(t, b, 2, 7, 2, 4)
		require.Equal(t, Defender, b.At(3, 4))
		require.Equal(t, King, b.At(4, 4))
		require.Equal(t, NoSide, b.Winner())
	})
}

func TestKingCapture(t *testing.T) {
	t.Run("king on the throne needs all four neighbours", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{4, 5}, {5, 4}, {4, 3}, {2, 4}}, nil)
		play(t, b, 2, 4, 3, 4)
		require.Equal(t, Empty, b.At(4, 4))
		require.Equal(t, Attackers, b.Winner())
		require.Equal(t, NoSquare, b.KingPosition())
	})

	t.Run("king on the throne survives three attackers", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{4, 5}, {5, 4}, {2, 3}}, [][2]int{{0, 8}})
		play(t, b, 2, 3, 4, 3)
		require.Equal(t, King, b.At(4, 4))
		require.Equal(t, NoSide, b.Winner())
	})

	t.Run("king beside the throne needs three attackers and the throne", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 5}, [][2]int{{3, 5}, {5, 5}, {4, 8}}, nil)
		play(t, b, 4, 8, 4, 6)
		require.Equal(t, Empty, b.At(4, 5))
		require.Equal(t, Attackers, b.Winner())
	})

	t.Run("king beside the throne survives an open side", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 5}, [][2]int{{5, 5}, {4, 8}}, nil)
		play(t, b, 4, 8, 4, 6)
		require.Equal(t, King, b.At(4, 5))
		require.Equal(t, NoSide, b.Winner())
	})

	t.Run("king elsewhere needs two attackers", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{2, 2}, [][2]int{{1, 2}, {3, 7}}, nil)
		play(t, b, 3, 7, 3, 2)
		require.Equal(t, Empty, b.At(2, 2))
		require.Equal(t, Attackers, b.Winner())
	})

	t.Run("king elsewhere ignores a defender flank", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{2, 2}, [][2]int{{3, 7}}, [][2]int{{1, 2}})
		play(t, b, 3, 7, 3, 2)
		require.Equal(t, King, b.At(2, 2))
	})
}

func TestGameEnd(t *testing.T) {
	t.Run("king reaching the edge wins", func(t *testing.T) {
		b := custom(t, Defenders, [2]int{2, 2}, [][2]int{{7, 7}}, nil)
		play(t, b, 2, 2, 2, 0)
		require.Equal(t, Defenders, b.Winner())

		err := b.ApplyMove(mv(b, 7, 7, 7, 6))
		require.True(t, errors.Is(err, ErrGameOver))
	})

	t.Run("side without moves loses", func(t *testing.T) {
		b := custom(t, Defenders, [2]int{4, 4}, [][2]int{{0, 0}}, [][2]int{{1, 0}, {0, 3}})
		play(t, b, 0, 3, 0, 1)
		require.Equal(t, Attackers, b.Turn())
		require.False(t, b.HasMove(Attackers))
		require.Equal(t, Defenders, b.Winner())
	})

	t.Run("move limit ends the game", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.SetMoveLimit(1))
		play(t, b, 0, 3, 1, 3)
		play(t, b, 4, 6, 3, 6)
		require.Equal(t, NoSide, b.Winner())

		err := b.SetMoveLimit(1)
		require.True(t, errors.Is(err, ErrMoveLimit), "A limit already reached should be rejected")

		play(t, b, 1, 3, 1, 2)
		require.Equal(t, Defenders, b.Winner(), "Attackers exceeded the limit")

		b.Undo()
		require.Equal(t, NoSide, b.Winner())
	})

	t.Run("the move played after the limit loses", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.SetMoveLimit(2))
		play(t, b, 0, 3, 1, 3)
		play(t, b, 4, 6, 3, 6)
		play(t, b, 1, 3, 1, 2)
		require.Equal(t, NoSide, b.Winner(), "Two moves played does not exceed the limit")

		play(t, b, 3, 6, 3, 7)
		require.Equal(t, 4, b.MoveCount())
		require.Equal(t, Attackers, b.Winner(), "Defenders moved with three moves already played")
	})
}

func TestRepetition(t *testing.T) {
	setup := func(t *testing.T) *Board {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{0, 2}}, [][2]int{{8, 6}})
		play(t, b, 0, 2, 0, 1)
		play(t, b, 8, 6, 8, 7)
		play(t, b, 0, 1, 0, 2)
		return b
	}

	t.Run("returning to a seen position wins for the side to move", func(t *testing.T) {
		b := setup(t)
		require.Equal(t, NoSide, b.Winner())
		play(t, b, 8, 7, 8, 6)
		require.True(t, b.RepeatedPosition())
		require.Equal(t, Attackers, b.Turn())
		require.Equal(t, Attackers, b.Winner())
	})

	t.Run("undo keeps the position that triggered the repetition", func(t *testing.T) {
		b := setup(t)
		before := b.key()
		play(t, b, 8, 7, 8, 6)

		b.Undo()
		require.False(t, b.RepeatedPosition())
		require.Equal(t, NoSide, b.Winner())
		require.Equal(t, before, b.key())
		_, kept := b.seen[before]
		require.True(t, kept, "The repeating line must replay the same way")

		play(t, b, 8, 7, 8, 6)
		require.True(t, b.RepeatedPosition())
	})

	t.Run("repetition is flagged when the move already decided the game", func(t *testing.T) {
		b := setup(t)
		require.NoError(t, b.SetMoveLimit(2))
		play(t, b, 8, 7, 8, 6)
		require.Equal(t, Attackers, b.Winner())
		require.True(t, b.RepeatedPosition())

		b.Undo()
		require.False(t, b.RepeatedPosition())
		require.Equal(t, NoSide, b.Winner())
	})
}

func TestUndo(t *testing.T) {
	t.Run("undo at the start does nothing", func(t *testing.T) {
		b := NewBoard()
		b.Undo()
		require.Equal(t, NewBoard().String(), b.String())
		require.Equal(t, Attackers, b.Turn())
	})

	t.Run("undo reverses moves and captures", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{4, 4}, [][2]int{{1, 6}, {3, 8}}, [][2]int{{2, 6}, {6, 6}})
		key, king := b.key(), b.KingPosition()

		play(t, b, 3, 8, 3, 6)
		require.Equal(t, Empty, b.At(2, 6))
		b.Undo()

		require.Equal(t, key, b.key())
		require.Equal(t, king, b.KingPosition())
		require.Equal(t, Attackers, b.Turn())
		require.Equal(t, 0, b.MoveCount())
		require.Empty(t, b.seen, "Undo should forget the position it recorded")
	})

	t.Run("undo restores a captured king", func(t *testing.T) {
		b := custom(t, Attackers, [2]int{2, 2}, [][2]int{{1, 2}, {3, 7}}, nil)
		play(t, b, 3, 7, 3, 2)
		b.Undo()
		require.Equal(t, b.geom.Sq(2, 2), b.KingPosition())
		require.Equal(t, NoSide, b.Winner())
	})

	t.Run("a played line unwinds completely", func(t *testing.T) {
		b := NewBoard()
		start := b.key()
		for i := 0; i < 10 && b.Winner() == NoSide; i++ {
			moves := b.LegalMoves(b.Turn())
			require.NoError(t, b.ApplyMove(moves[(i*13)%len(moves)]))
		}
		for b.MoveCount() > 0 {
			b.Undo()
		}
		require.Equal(t, start, b.key())
		require.Empty(t, b.seen)
	})

	t.Run("clear undo keeps the position", func(t *testing.T) {
		b := NewBoard()
		play(t, b, 0, 3, 1, 3)
		rendered := b.String()
		b.ClearUndo()
		b.Undo()
		require.Equal(t, rendered, b.String())
	})
}

func TestCopy(t *testing.T) {
	b := NewBoard()
	play(t, b, 0, 3, 1, 3)
	c := b.Copy()

	require.NoError(t, c.ApplyMove(mv(c, 4, 6, 3, 6)))
	require.Equal(t, Defenders, b.Turn(), "Playing on the copy should not affect the original")
	require.Equal(t, Defender, b.At(4, 6))
	require.Equal(t, 1, b.MoveCount())

	c.Undo()
	c.Undo()
	require.Equal(t, NewBoard().String(), c.String())
	require.Equal(t, 1, b.MoveCount())
}

func TestLayoutValidation(t *testing.T) {
	_, err := NewBoardFromLayout(Layout{Size: 8, Turn: Attackers})
	require.True(t, errors.Is(err, ErrInvalidLayout))

	_, err = NewBoardFromLayout(Layout{
		Size:      StandardSize,
		Attackers: [][2]int{{1, 1}, {4, 4}, {9, 0}},
		Defenders: [][2]int{{1, 1}},
		King:      [2]int{4, 4},
		Turn:      Attackers,
	})
	require.True(t, errors.Is(err, ErrInvalidLayout))
	require.Contains(t, err.Error(), "off the board")
	require.Contains(t, err.Error(), "overlaps")
	require.Contains(t, err.Error(), "throne")

	var problems *multierror.Error
	require.True(t, errors.As(err, &problems))
	require.Len(t, problems.Errors, 4)

	_, err = NewBoardFromLayout(Layout{Size: 5, King: [2]int{2, 2}, Turn: Defenders})
	require.NoError(t, err)
}
