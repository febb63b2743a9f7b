package agent

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
)

// Player picks a move for the active player of board. ctx carries the move
// deadline. NotMoved means the player has nothing to play.
type Player interface {
	Name() string
	Move(ctx context.Context, board *isolation.Board, legal []isolation.Move) isolation.Move
}

// RandomPlayer picks uniformly among legal moves.
type RandomPlayer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rnd: rand.New(rand.NewSource(seed))} //nolint: gosec // it's ok
}

func (that *RandomPlayer) Name() string {
	return "random"
}

func (that *RandomPlayer) Move(_ context.Context, _ *isolation.Board, legal []isolation.Move) isolation.Move {
	if len(legal) == 0 {
		return isolation.NotMoved
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return legal[that.rnd.Intn(len(legal))]
}

// New - builds a player by its configured name.
func New(name string, seed int64) (Player, error) {
	switch name {
	case "random":
		return NewRandomPlayer(seed), nil
	case "minimax":
		return NewSearchPlayer(name, WithMethod(MethodMinimax), WithDepth(3), WithScore(Open)), nil
	case "alphabeta":
		return NewSearchPlayer(name, WithMethod(MethodAlphaBeta), WithDepth(3), WithScore(Open)), nil
	case "ab_iterative":
		return NewSearchPlayer(name, WithMethod(MethodAlphaBeta), WithIterative(), WithScore(MoreMoves)), nil
	case "custom":
		return NewSearchPlayer(name,
			WithMethod(MethodAlphaBeta),
			WithIterative(),
			WithScore(Combined),
			WithOpeningBook(NewOpeningBook()),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayer, name)
	}
}
