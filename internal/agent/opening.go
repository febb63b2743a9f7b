package agent

import "github.com/rocketscienceinc/isolation-backend/internal/isolation"

// OpeningRule suggests a move or reports false.
type OpeningRule func(board *isolation.Board, player isolation.PlayerID) (isolation.Move, bool)

// OpeningBook tries its rules in order and returns the first suggestion.
type OpeningBook struct {
	rules []OpeningRule
}

func NewOpeningBook(rules ...OpeningRule) *OpeningBook {
	if len(rules) == 0 {
		rules = []OpeningRule{OccupyCenter}
	}
	return &OpeningBook{rules: rules}
}

func (that *OpeningBook) MoveFor(board *isolation.Board, player isolation.PlayerID) (isolation.Move, bool) {
	for _, rule := range that.rules {
		if move, ok := rule(board, player); ok {
			return move, true
		}
	}

	return isolation.NotMoved, false
}

// OccupyCenter - take the centre square on a player's first move if it is free.
func OccupyCenter(board *isolation.Board, player isolation.PlayerID) (isolation.Move, bool) {
	if !board.Location(player).IsNotMoved() {
		return isolation.NotMoved, false
	}

	center := isolation.Placed(board.Height()/2, board.Width()/2)
	if player != board.ActivePlayer() || !board.IsLegal(center) {
		return isolation.NotMoved, false
	}

	return center, true
}
