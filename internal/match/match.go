package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/isolation-backend/internal/agent"
	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
	"github.com/rocketscienceinc/isolation-backend/internal/transcript"
)

const (
	TerminationNormal      = ""
	TerminationTimeout     = "timeout"
	TerminationIllegalMove = "illegal move"
)

var ErrNoPlayers = errors.New("both players are required")

// Result is a completed game as handed to the transcript renderer.
type Result struct {
	ID          string             `json:"id"`
	Player1     string             `json:"player_1"`
	Player2     string             `json:"player_2"`
	Winner      isolation.PlayerID `json:"winner"`
	History     []transcript.Turn  `json:"history"`
	Termination string             `json:"termination"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
}

// WinnerName - name of the agent that won.
func (that *Result) WinnerName() string {
	if that.Winner == isolation.Player1 {
		return that.Player1
	}
	return that.Player2
}

// Transcript - renders the game onto a fresh board of the played size.
func (that *Result) Transcript() (string, error) {
	text, err := transcript.Render(that.Winner, that.History, that.Termination, isolation.NewBoard(that.Width, that.Height))
	if err != nil {
		return "", fmt.Errorf("could not render match %s: %w", that.ID, err)
	}

	return text, nil
}

type Runner struct {
	logger    *slog.Logger
	timeLimit time.Duration
}

func NewRunner(logger *slog.Logger, timeLimit time.Duration) *Runner {
	return &Runner{
		logger:    logger.With("component", "match"),
		timeLimit: timeLimit,
	}
}

// Play - runs a game until the active player cannot move, times out or
// returns an illegal move. The move that ends the game is recorded too, so a
// stuck player's last turn shows NotMoved. The board is left in the final
// position.
func (that *Runner) Play(ctx context.Context, board *isolation.Board, p1, p2 agent.Player) (*Result, error) {
	if p1 == nil || p2 == nil {
		return nil, ErrNoPlayers
	}

	result := &Result{
		ID:        uuid.NewString(),
		Player1:   p1.Name(),
		Player2:   p2.Name(),
		Width:     board.Width(),
		Height:    board.Height(),
		StartedAt: time.Now(),
	}
	log := that.logger.With("match_id", result.ID, "player_1", result.Player1, "player_2", result.Player2)

	players := map[isolation.PlayerID]agent.Player{
		isolation.Player1: p1,
		isolation.Player2: p2,
	}

	if board.IsLoser(board.ActivePlayer()) {
		return nil, fmt.Errorf("%w: %s has no legal moves", apperror.ErrGameFinished, board.ActivePlayer())
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("match %s aborted: %w", result.ID, err)
		}

		// a stuck player is still asked, so its NotMoved lands in the history
		active := board.ActivePlayer()
		legal := board.LegalMoves(active)

		move, late := that.ask(ctx, players[active], board, legal)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("match %s aborted: %w", result.ID, ctx.Err())
		}
		if len(legal) == 0 {
			move = isolation.NotMoved
		}
		record(result, board, active, move)

		switch {
		case late:
			that.finish(log, result, active.Opponent(), TerminationTimeout)
			return result, nil
		case len(legal) == 0:
			that.finish(log, result, active.Opponent(), TerminationNormal)
			return result, nil
		case !board.IsLegal(move):
			log.Debug("Illegal move", "player", active, "move", move)
			that.finish(log, result, active.Opponent(), TerminationIllegalMove)
			return result, nil
		}

		if err := board.ApplyMove(move); err != nil {
			return nil, fmt.Errorf("could not apply move %s: %w", move, err)
		}
	}
}

// ask runs the agent with its own copy of the board and reports whether it
// answered after the time limit.
func (that *Runner) ask(ctx context.Context, player agent.Player, board *isolation.Board, legal []isolation.Move) (isolation.Move, bool) {
	moveCtx := ctx
	cancel := func() {}
	if that.timeLimit > 0 {
		moveCtx, cancel = context.WithTimeout(ctx, that.timeLimit)
	}
	defer cancel()

	started := time.Now()
	move := player.Move(moveCtx, board.Copy(), legal)
	late := that.timeLimit > 0 && time.Since(started) > that.timeLimit

	return move, late
}

// record opens a new turn for player 1 and completes it for player 2. Moves
// the board cannot take (off the grid or onto a visited cell) are left out so
// the history always replays; NotMoved is kept.
func record(result *Result, board *isolation.Board, player isolation.PlayerID, move isolation.Move) {
	if !move.IsNotMoved() && !board.IsOpen(move.Row, move.Col) {
		return
	}

	if player == isolation.Player1 || len(result.History) == 0 {
		result.History = append(result.History, transcript.Turn{move})
		return
	}

	last := len(result.History) - 1
	result.History[last] = append(result.History[last], move)
}

func (that *Runner) finish(log *slog.Logger, result *Result, winner isolation.PlayerID, termination string) {
	result.Winner = winner
	result.Termination = termination
	result.FinishedAt = time.Now()

	log.Info("Match finished",
		"winner", result.WinnerName(),
		"termination", termination,
		"turns", len(result.History),
	)
}
