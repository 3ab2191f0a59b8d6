package searcher

import "tablut/game"

// DepthFor picks a search depth from the game phase: shallow in the opening,
// deeper once the side to move has few options.
func DepthFor(board *game.Board) int {
	if board.MoveCount() < OpeningMoves {
		return OpeningDepth
	}
	if len(board.LegalMoves(board.Turn())) > NarrowBranches {
		return MiddleDepth
	}
	return EndgameDepth
}
