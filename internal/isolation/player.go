package isolation

import "fmt"

type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

func (that PlayerID) String() string {
	switch that {
	case Player1:
		return "player_1"
	case Player2:
		return "player_2"
	default:
		return fmt.Sprintf("player_%d", int(that))
	}
}

// Opponent - returns the other player.
func (that PlayerID) Opponent() PlayerID {
	if that == Player1 {
		return Player2
	}
	return Player1
}

func (that PlayerID) index() int {
	return int(that) - 1
}

func (that PlayerID) valid() bool {
	return that == Player1 || that == Player2
}
