package agent

import (
	"math"

	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
)

// ScoreFunc rates a position from the point of view of player.
type ScoreFunc func(board *isolation.Board, player isolation.PlayerID) float64

// terminal returns ±Inf for a decided game.
func terminal(board *isolation.Board, player isolation.PlayerID) (float64, bool) {
	switch {
	case board.IsLoser(player):
		return math.Inf(-1), true
	case board.IsWinner(player):
		return math.Inf(1), true
	default:
		return 0, false
	}
}

// Null - scores every position 0.
func Null(board *isolation.Board, player isolation.PlayerID) float64 {
	if score, ok := terminal(board, player); ok {
		return score
	}
	return 0
}

// Open - number of moves available to player.
func Open(board *isolation.Board, player isolation.PlayerID) float64 {
	if score, ok := terminal(board, player); ok {
		return score
	}
	return float64(len(board.LegalMoves(player)))
}

// MoreMoves - own moves minus opponent moves.
func MoreMoves(board *isolation.Board, player isolation.PlayerID) float64 {
	if score, ok := terminal(board, player); ok {
		return score
	}
	own := len(board.LegalMoves(player))
	opp := len(board.LegalMoves(player.Opponent()))

	return float64(own - opp)
}

// AggressiveMoves - own moves minus twice the opponent moves.
func AggressiveMoves(board *isolation.Board, player isolation.PlayerID) float64 {
	if score, ok := terminal(board, player); ok {
		return score
	}
	own := len(board.LegalMoves(player))
	opp := len(board.LegalMoves(player.Opponent()))

	return float64(own - 2*opp)
}

// CenterDistance - ratio of the opponent's distance to the centre over the
// player's own. Standing on the centre yields the corner-to-centre distance,
// and a player that has not moved yet counts as standing in the corner.
func CenterDistance(board *isolation.Board, player isolation.PlayerID) float64 {
	if score, ok := terminal(board, player); ok {
		return score
	}

	centerRow, centerCol := board.Height()/2, board.Width()/2
	own := distance(board.Location(player), centerRow, centerCol)
	if own == 0 {
		return math.Hypot(float64(centerRow), float64(centerCol))
	}

	opp := distance(board.Location(player.Opponent()), centerRow, centerCol)

	return opp / own
}

// Combined - MoreMoves plus CenterDistance.
func Combined(board *isolation.Board, player isolation.PlayerID) float64 {
	if score, ok := terminal(board, player); ok {
		return score
	}
	return MoreMoves(board, player) + CenterDistance(board, player)
}

func distance(loc isolation.Move, row, col int) float64 {
	if loc.IsNotMoved() {
		return math.Hypot(float64(row), float64(col))
	}
	return math.Hypot(float64(loc.Row-row), float64(loc.Col-col))
}
