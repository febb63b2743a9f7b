package agent

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
)

const (
	MethodMinimax   = "minimax"
	MethodAlphaBeta = "alphabeta"

	defaultDepth          = 3
	defaultTimerThreshold = 10 * time.Millisecond
)

var ErrSearchTimeout = errors.New("search timed out")

// SearchPlayer chooses moves with depth-limited minimax or alpha-beta,
// optionally deepening until the move deadline gets close.
type SearchPlayer struct {
	name           string
	depth          int
	iterative      bool
	method         string
	score          ScoreFunc
	timerThreshold time.Duration
	book           *OpeningBook
}

type Option func(*SearchPlayer)

func WithDepth(depth int) Option {
	return func(p *SearchPlayer) { p.depth = depth }
}

func WithIterative() Option {
	return func(p *SearchPlayer) { p.iterative = true }
}

func WithMethod(method string) Option {
	return func(p *SearchPlayer) { p.method = method }
}

func WithScore(score ScoreFunc) Option {
	return func(p *SearchPlayer) { p.score = score }
}

func WithTimerThreshold(threshold time.Duration) Option {
	return func(p *SearchPlayer) { p.timerThreshold = threshold }
}

func WithOpeningBook(book *OpeningBook) Option {
	return func(p *SearchPlayer) { p.book = book }
}

func NewSearchPlayer(name string, opts ...Option) *SearchPlayer {
	player := &SearchPlayer{
		name:           name,
		depth:          defaultDepth,
		method:         MethodMinimax,
		score:          Combined,
		timerThreshold: defaultTimerThreshold,
	}
	for _, opt := range opts {
		opt(player)
	}

	return player
}

func (that *SearchPlayer) Name() string {
	return that.name
}

// Move - returns the best move of the last completed search. A search cut
// short by the deadline keeps the previous iteration's answer.
func (that *SearchPlayer) Move(ctx context.Context, board *isolation.Board, legal []isolation.Move) isolation.Move {
	if len(legal) == 0 {
		return isolation.NotMoved
	}

	me := board.ActivePlayer()
	if that.book != nil {
		if move, ok := that.book.MoveFor(board, me); ok {
			return move
		}
	}

	best := legal[0]

	if !that.iterative {
		if _, move, err := that.search(ctx, board, me, that.depth); err == nil && !move.IsNotMoved() {
			best = move
		}
		return best
	}

	// no point searching deeper than the number of remaining cells; without a
	// deadline the configured depth is the limit
	maxDepth := len(board.BlankSpaces())
	if _, ok := ctx.Deadline(); !ok {
		maxDepth = min(maxDepth, that.depth)
	}
	for depth := 1; depth <= maxDepth; depth++ {
		score, move, err := that.search(ctx, board, me, depth)
		if err != nil {
			return best
		}
		if !move.IsNotMoved() {
			best = move
		}
		if math.IsInf(score, 0) {
			break
		}
	}

	return best
}

func (that *SearchPlayer) search(ctx context.Context, board *isolation.Board, me isolation.PlayerID, depth int) (float64, isolation.Move, error) {
	if that.method == MethodAlphaBeta {
		return that.alphaBeta(ctx, board, me, depth, math.Inf(-1), math.Inf(1), true)
	}
	return that.minimax(ctx, board, me, depth, true)
}

func (that *SearchPlayer) checkTime(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrSearchTimeout
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < that.timerThreshold {
		return ErrSearchTimeout
	}

	return nil
}

func (that *SearchPlayer) minimax(ctx context.Context, board *isolation.Board, me isolation.PlayerID, depth int, maximizing bool) (float64, isolation.Move, error) {
	if err := that.checkTime(ctx); err != nil {
		return 0, isolation.NotMoved, err
	}

	legal := board.LegalMoves(board.ActivePlayer())
	if len(legal) == 0 || depth == 0 {
		return that.score(board, me), isolation.NotMoved, nil
	}

	bestMove := legal[0]
	bestScore := math.Inf(1)
	if maximizing {
		bestScore = math.Inf(-1)
	}

	for _, move := range legal {
		next, err := board.ForecastMove(move)
		if err != nil {
			return 0, isolation.NotMoved, err
		}

		score, _, err := that.minimax(ctx, next, me, depth-1, !maximizing)
		if err != nil {
			return 0, isolation.NotMoved, err
		}

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore, bestMove = score, move
		}
	}

	return bestScore, bestMove, nil
}

func (that *SearchPlayer) alphaBeta(ctx context.Context, board *isolation.Board, me isolation.PlayerID, depth int, alpha, beta float64, maximizing bool) (float64, isolation.Move, error) {
	if err := that.checkTime(ctx); err != nil {
		return 0, isolation.NotMoved, err
	}

	legal := board.LegalMoves(board.ActivePlayer())
	if len(legal) == 0 || depth == 0 {
		return that.score(board, me), isolation.NotMoved, nil
	}

	bestMove := legal[0]
	bestScore := math.Inf(1)
	if maximizing {
		bestScore = math.Inf(-1)
	}

	for _, move := range legal {
		next, err := board.ForecastMove(move)
		if err != nil {
			return 0, isolation.NotMoved, err
		}

		score, _, err := that.alphaBeta(ctx, next, me, depth-1, alpha, beta, !maximizing)
		if err != nil {
			return 0, isolation.NotMoved, err
		}

		if maximizing {
			if score > bestScore {
				bestScore, bestMove = score, move
			}
			if bestScore >= beta {
				return bestScore, bestMove, nil
			}
			alpha = math.Max(alpha, bestScore)
		} else {
			if score < bestScore {
				bestScore, bestMove = score, move
			}
			if bestScore <= alpha {
				return bestScore, bestMove, nil
			}
			beta = math.Min(beta, bestScore)
		}
	}

	return bestScore, bestMove, nil
}
