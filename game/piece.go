package game

// Side identifies one of the two players. The king plays for the defenders.
type Side int

const (
	NoSide Side = iota
	Attackers
	Defenders
)

func (s Side) Opponent() Side {
	switch s {
	case Attackers:
		return Defenders
	case Defenders:
		return Attackers
	default:
		return NoSide
	}
}

func (s Side) String() string {
	switch s {
	case Attackers:
		return "attackers"
	case Defenders:
		return "defenders"
	default:
		return "none"
	}
}

// Piece is the content of a single square.
type Piece uint8

const (
	Empty Piece = iota
	Attacker
	Defender
	King
)

// Side returns the player owning the piece, NoSide for an empty square.
func (p Piece) Side() Side {
	switch p {
	case Attacker:
		return Attackers
	case Defender, King:
		return Defenders
	default:
		return NoSide
	}
}

func (p Piece) String() string {
	switch p {
	case Attacker:
		return "B"
	case Defender:
		return "W"
	case King:
		return "K"
	default:
		return "-"
	}
}
