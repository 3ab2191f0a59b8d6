package searcher

// Depth policy by game phase
const (
	OpeningMoves   = 16 // moves played before the opening ends
	OpeningDepth   = 3
	MiddleDepth    = 4
	EndgameDepth   = 5
	NarrowBranches = 3 // at most this many moves counts as a narrow position
)
