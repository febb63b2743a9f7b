package isolation

import (
	"encoding/json"
	"fmt"
)

// Move is either a placement at (Row, Col) or NotMoved. The zero value is NotMoved.
type Move struct {
	Row    int
	Col    int
	placed bool
}

// NotMoved marks a player with no move recorded for a turn.
var NotMoved = Move{}

// Placed - creates a move to the given cell.
func Placed(row, col int) Move {
	return Move{Row: row, Col: col, placed: true}
}

func (that Move) IsNotMoved() bool {
	return !that.placed
}

// coords returns the move coordinates, (-1,-1) for NotMoved.
func (that Move) coords() (int, int) {
	if !that.placed {
		return -1, -1
	}
	return that.Row, that.Col
}

// Compact - formats the move as "(r,c)".
func (that Move) Compact() string {
	r, c := that.coords()
	return fmt.Sprintf("(%d,%d)", r, c)
}

// Spaced - formats the move as "(r, c)".
func (that Move) Spaced() string {
	r, c := that.coords()
	return fmt.Sprintf("(%d, %d)", r, c)
}

func (that Move) String() string {
	return that.Compact()
}

// MarshalJSON encodes a placed move as [row, col] and NotMoved as null.
func (that Move) MarshalJSON() ([]byte, error) {
	if !that.placed {
		return []byte("null"), nil
	}
	return json.Marshal([2]int{that.Row, that.Col})
}

func (that *Move) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = NotMoved
		return nil
	}

	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("could not unmarshal move: %w", err)
	}

	*that = Placed(pair[0], pair[1])
	return nil
}
