package isolation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
)

const (
	DefaultWidth  = 7
	DefaultHeight = 7
)

var knightDirections = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Board holds the state of an Isolation game: blocked cells, both player
// locations and whose turn it is. Players move like chess knights and every
// visited cell stays blocked.
type Board struct {
	width  int
	height int

	blocked   []bool
	locations [2]Move
	active    PlayerID
	moveCount int
}

// NewBoard - creates an empty board with player 1 to move.
func NewBoard(width, height int) *Board {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return &Board{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		active:  Player1,
	}
}

func (that *Board) Width() int { return that.width }
func (that *Board) Height() int { return that.height }

// NotMoved - returns the sentinel used for a missing move.
func (that *Board) NotMoved() Move {
	return NotMoved
}

func (that *Board) ActivePlayer() PlayerID { return that.active }
func (that *Board) InactivePlayer() PlayerID { return that.active.Opponent() }
func (that *Board) MoveCount() int { return that.moveCount }

// Location - returns the player's current cell, NotMoved before the first move.
func (that *Board) Location(player PlayerID) Move {
	if !player.valid() {
		return NotMoved
	}
	return that.locations[player.index()]
}

// Copy - returns an independent copy of the board.
func (that *Board) Copy() *Board {
	clone := *that
	clone.blocked = make([]bool, len(that.blocked))
	copy(clone.blocked, that.blocked)

	return &clone
}

// ForecastMove - returns a copy of the board with the move applied.
func (that *Board) ForecastMove(move Move) (*Board, error) {
	next := that.Copy()
	if err := next.ApplyMove(move); err != nil {
		return nil, err
	}

	return next, nil
}

// ApplyMove - moves the active player to the given cell and passes the turn.
func (that *Board) ApplyMove(move Move) error {
	if move.IsNotMoved() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidMove, move)
	}

	if !that.inBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: %s is outside %dx%d board", apperror.ErrInvalidMove, move, that.height, that.width)
	}

	idx := that.index(move.Row, move.Col)
	if that.blocked[idx] {
		return fmt.Errorf("%w: %s is blocked", apperror.ErrInvalidMove, move)
	}

	that.blocked[idx] = true
	that.locations[that.active.index()] = move
	that.active = that.active.Opponent()
	that.moveCount++

	return nil
}

// IsOpen - reports whether the cell exists and has not been visited.
func (that *Board) IsOpen(row, col int) bool {
	return that.inBounds(row, col) && !that.blocked[that.index(row, col)]
}

// IsLegal - reports whether the move is legal for the active player.
func (that *Board) IsLegal(move Move) bool {
	for _, legal := range that.LegalMoves(that.active) {
		if legal == move {
			return true
		}
	}

	return false
}

// LegalMoves - lists the moves available to the player. A player that has
// not moved yet may take any open cell.
func (that *Board) LegalMoves(player PlayerID) []Move {
	loc := that.Location(player)
	if loc.IsNotMoved() {
		return that.BlankSpaces()
	}

	moves := make([]Move, 0, len(knightDirections))
	for _, d := range knightDirections {
		r, c := loc.Row+d[0], loc.Col+d[1]
		if that.IsOpen(r, c) {
			moves = append(moves, Placed(r, c))
		}
	}

	return moves
}

// BlankSpaces - lists every open cell in row-major order.
func (that *Board) BlankSpaces() []Move {
	moves := make([]Move, 0, len(that.blocked))
	for r := 0; r < that.height; r++ {
		for c := 0; c < that.width; c++ {
			if !that.blocked[that.index(r, c)] {
				moves = append(moves, Placed(r, c))
			}
		}
	}

	return moves
}

// IsLoser - the active player with no legal moves has lost.
func (that *Board) IsLoser(player PlayerID) bool {
	return player == that.active && len(that.LegalMoves(player)) == 0
}

func (that *Board) IsWinner(player PlayerID) bool {
	return player == that.InactivePlayer() && len(that.LegalMoves(that.active)) == 0
}

// Utility - +Inf for a won position, -Inf for a lost one, 0 otherwise.
func (that *Board) Utility(player PlayerID) float64 {
	switch {
	case that.IsWinner(player):
		return math.Inf(1)
	case that.IsLoser(player):
		return math.Inf(-1)
	default:
		return 0
	}
}

// String - draws the grid with "1" and "2" on the player cells and "-" on
// visited ones.
func (that *Board) String() string {
	margin := len(strconv.Itoa(that.height-1)) + 1
	offset := strings.Repeat(" ", margin+3)

	cols := make([]string, that.width)
	for c := range cols {
		cols[c] = strconv.Itoa(c)
	}

	var out strings.Builder
	out.WriteString(offset + strings.Join(cols, "   ") + "\n")

	p1, p2 := that.locations[0], that.locations[1]
	for r := 0; r < that.height; r++ {
		fmt.Fprintf(&out, "%-*d | ", margin, r)
		for c := 0; c < that.width; c++ {
			cell := Placed(r, c)
			switch {
			case !that.blocked[that.index(r, c)]:
				out.WriteString(" ")
			case cell == p1:
				out.WriteString("1")
			case cell == p2:
				out.WriteString("2")
			default:
				out.WriteString("-")
			}
			out.WriteString(" | ")
		}
		out.WriteString("\n")
	}

	return out.String()
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.height && col >= 0 && col < that.width
}

func (that *Board) index(row, col int) int {
	return row*that.width + col
}
