package isolation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
)

func TestNewBoard(t *testing.T) {
	// When: create a new board
	board := NewBoard(7, 7)

	// Then: player 1 is to move and every cell is open
	require.NotNil(t, board)
	assert.Equal(t, Player1, board.ActivePlayer())
	assert.Equal(t, Player2, board.InactivePlayer())
	assert.Len(t, board.BlankSpaces(), 49)
	assert.True(t, board.Location(Player1).IsNotMoved())
	assert.True(t, board.Location(Player2).IsNotMoved())
	assert.Equal(t, NotMoved, board.NotMoved())
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Moves active player and passes the turn", func(t *testing.T) {
		// Given: a new board
		board := NewBoard(7, 7)

		// When: both players make their first moves
		require.NoError(t, board.ApplyMove(Placed(3, 3)))
		require.NoError(t, board.ApplyMove(Placed(0, 0)))

		// Then: locations, turn and blocked cells are updated
		assert.Equal(t, Placed(3, 3), board.Location(Player1))
		assert.Equal(t, Placed(0, 0), board.Location(Player2))
		assert.Equal(t, Player1, board.ActivePlayer())
		assert.Equal(t, 2, board.MoveCount())
		assert.False(t, board.IsOpen(3, 3))
		assert.False(t, board.IsOpen(0, 0))
	})

	t.Run("Error on NotMoved", func(t *testing.T) {
		board := NewBoard(7, 7)

		err := board.ApplyMove(NotMoved)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, 0, board.MoveCount())
	})

	t.Run("Error on out of bounds", func(t *testing.T) {
		board := NewBoard(7, 7)

		err := board.ApplyMove(Placed(7, 0))
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		err = board.ApplyMove(Placed(0, -1))
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Error on blocked cell", func(t *testing.T) {
		// Given: player 1 already sits on (2,2)
		board := NewBoard(7, 7)
		require.NoError(t, board.ApplyMove(Placed(2, 2)))

		// When: player 2 tries the same cell
		err := board.ApplyMove(Placed(2, 2))

		// Then: the move is rejected and the turn does not pass
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, Player2, board.ActivePlayer())
	})
}

func TestBoard_LegalMoves(t *testing.T) {
	t.Run("Any open cell before the first move", func(t *testing.T) {
		board := NewBoard(3, 3)
		require.NoError(t, board.ApplyMove(Placed(1, 1)))

		moves := board.LegalMoves(Player2)

		assert.Len(t, moves, 8)
		assert.NotContains(t, moves, Placed(1, 1))
	})

	t.Run("Knight moves after the first move", func(t *testing.T) {
		// Given: player 1 in the centre of a 7x7 board
		board := NewBoard(7, 7)
		require.NoError(t, board.ApplyMove(Placed(3, 3)))
		require.NoError(t, board.ApplyMove(Placed(1, 2)))

		// When: listing player 1 moves
		moves := board.LegalMoves(Player1)

		// Then: every knight target but the one taken by player 2 is legal
		assert.ElementsMatch(t, []Move{
			Placed(1, 4), Placed(2, 1), Placed(2, 5),
			Placed(4, 1), Placed(4, 5), Placed(5, 2), Placed(5, 4),
		}, moves)
		assert.True(t, board.IsLegal(Placed(5, 4)))
		assert.False(t, board.IsLegal(Placed(3, 4)))
	})
}

func TestBoard_WinnerAndLoser(t *testing.T) {
	// Given: a 3x3 board where player 1 sits in the centre, which has no knight moves
	board := NewBoard(3, 3)
	require.NoError(t, board.ApplyMove(Placed(1, 1)))
	require.NoError(t, board.ApplyMove(Placed(0, 0)))

	// Then: player 1 is to move and has lost
	assert.Empty(t, board.LegalMoves(Player1))
	assert.True(t, board.IsLoser(Player1))
	assert.True(t, board.IsWinner(Player2))
	assert.True(t, math.IsInf(board.Utility(Player1), -1))
	assert.True(t, math.IsInf(board.Utility(Player2), 1))
}

func TestBoard_ForecastMove(t *testing.T) {
	board := NewBoard(5, 5)

	next, err := board.ForecastMove(Placed(2, 2))

	require.NoError(t, err)
	assert.Equal(t, 0, board.MoveCount())
	assert.True(t, board.IsOpen(2, 2))
	assert.Equal(t, 1, next.MoveCount())
	assert.False(t, next.IsOpen(2, 2))
}

func TestBoard_String(t *testing.T) {
	// Given: a 3x3 board after three moves
	board := NewBoard(3, 3)
	require.NoError(t, board.ApplyMove(Placed(0, 0)))
	require.NoError(t, board.ApplyMove(Placed(2, 2)))
	require.NoError(t, board.ApplyMove(Placed(1, 2)))

	// Then: player cells, visited cells and open cells are drawn
	expected := "" +
		"     0   1   2\n" +
		"0  | - |   |   | \n" +
		"1  |   |   | 1 | \n" +
		"2  |   |   | 2 | \n"
	assert.Equal(t, expected, board.String())
}

func TestMove(t *testing.T) {
	t.Run("Formatting", func(t *testing.T) {
		assert.Equal(t, "(3,4)", Placed(3, 4).Compact())
		assert.Equal(t, "(3, 4)", Placed(3, 4).Spaced())
		assert.Equal(t, "(-1,-1)", NotMoved.Compact())
		assert.Equal(t, "(-1, -1)", NotMoved.Spaced())
	})

	t.Run("Zero value is NotMoved", func(t *testing.T) {
		var move Move
		assert.True(t, move.IsNotMoved())
		assert.False(t, Placed(0, 0).IsNotMoved())
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal([]Move{Placed(1, 2), NotMoved})
		require.NoError(t, err)
		assert.JSONEq(t, `[[1,2],null]`, string(data))

		var moves []Move
		require.NoError(t, json.Unmarshal(data, &moves))
		assert.Equal(t, []Move{Placed(1, 2), NotMoved}, moves)
	})
}

func TestPlayerID(t *testing.T) {
	assert.Equal(t, "player_1", Player1.String())
	assert.Equal(t, "player_2", Player2.String())
	assert.Equal(t, Player2, Player1.Opponent())
	assert.Equal(t, Player1, Player2.Opponent())
}
