// Package transcript renders a finished Isolation game as text, replaying
// every move onto a board so each line is followed by the board after it.
package transcript

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
)

// Turn holds the moves of one round: player 1 first, player 2 if the game
// went on long enough.
type Turn []isolation.Move

// Board is what the renderer needs from a game board. It is mutated during
// rendering and must not be shared with other goroutines meanwhile.
type Board interface {
	NotMoved() isolation.Move
	ApplyMove(move isolation.Move) error
	String() string
}

// Render - writes the transcript of a completed game. Every move that is not
// the board's NotMoved sentinel is applied to board, so the board ends up in
// the final position of the game.
//
// The line before the winner line holds termination, so it is blank only for
// a normal ending; a non-empty reason such as "timeout" takes its place.
func Render[W any](winner W, history []Turn, termination string, board Board) (string, error) {
	if err := validate(history); err != nil {
		return "", err
	}

	var out strings.Builder
	for i, turn := range history {
		number := i + 1

		fmt.Fprintf(&out, "%d. %s\n", number, turn[0].Compact())
		if err := replay(&out, board, turn[0]); err != nil {
			return "", fmt.Errorf("turn %d: %w", number, err)
		}

		if len(turn) > 1 {
			fmt.Fprintf(&out, "%d. ...  %s\n", number, turn[1].Spaced())
			if err := replay(&out, board, turn[1]); err != nil {
				return "", fmt.Errorf("turn %d: %w", number, err)
			}
		}
	}

	out.WriteString(termination + "\n")
	fmt.Fprintf(&out, "Winner: %v\n", winner)

	return out.String(), nil
}

// replay applies the move unless it is the sentinel and appends a snapshot.
func replay(out *strings.Builder, board Board, move isolation.Move) error {
	if move != board.NotMoved() {
		if err := board.ApplyMove(move); err != nil {
			return fmt.Errorf("could not apply %s: %w", move, err)
		}
	}

	out.WriteString(board.String())

	return nil
}

func validate(history []Turn) error {
	for i, turn := range history {
		if len(turn) == 0 || len(turn) > 2 {
			return fmt.Errorf("%w: turn %d has %d moves", apperror.ErrMalformedHistory, i+1, len(turn))
		}
	}

	return nil
}
