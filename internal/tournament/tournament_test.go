package tournament

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rocketscienceinc/isolation-backend/internal/agent"
	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/match"
)

var errStorageIsFull = errors.New("storage is full")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memoryRecorder struct {
	mu      sync.Mutex
	results map[string]*match.Result
	err     error
}

func (that *memoryRecorder) CreateOrUpdate(_ context.Context, result *match.Result) error {
	if that.err != nil {
		return that.err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.results == nil {
		that.results = make(map[string]*match.Result)
	}
	that.results[result.ID] = result

	return nil
}

func newTestTournament(recorder Recorder) *Tournament {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, match.NewRunner(logger, time.Second), agent.New, recorder)
}

func TestTournament_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays every pairing", func(t *testing.T) {
		// Given: three players, two rounds
		recorder := &memoryRecorder{}
		tour := newTestTournament(recorder)

		// When: running the tournament
		report, err := tour.Run(ctx, Config{
			Players:     []string{"random", "alphabeta", "minimax"},
			Rounds:      2,
			Concurrency: 4,
			Width:       5,
			Height:      5,
		})

		// Then: 3*2 ordered pairings per round are played and recorded
		require.NoError(t, err)
		require.Len(t, report.Results, 12)
		assert.Len(t, recorder.results, 12)

		wins, losses := 0, 0
		for _, row := range report.Standings {
			wins += row.Wins
			losses += row.Losses
		}
		assert.Equal(t, 12, wins)
		assert.Equal(t, 12, losses)

		for i := 1; i < len(report.Standings); i++ {
			assert.GreaterOrEqual(t, report.Standings[i-1].Wins, report.Standings[i].Wins)
		}
	})

	t.Run("Not enough players", func(t *testing.T) {
		_, err := newTestTournament(nil).Run(ctx, Config{Players: []string{"random"}})

		require.ErrorIs(t, err, ErrNotEnoughPlayers)
	})

	t.Run("Unknown player", func(t *testing.T) {
		_, err := newTestTournament(nil).Run(ctx, Config{Players: []string{"random", "nobody"}, Width: 5, Height: 5})

		require.ErrorIs(t, err, apperror.ErrUnknownPlayer)
	})

	t.Run("Recorder failure", func(t *testing.T) {
		recorder := &memoryRecorder{err: errStorageIsFull}

		_, err := newTestTournament(recorder).Run(ctx, Config{Players: []string{"random", "random"}, Width: 5, Height: 5})

		require.ErrorIs(t, err, errStorageIsFull)
	})
}

func TestSchedule(t *testing.T) {
	pairings := schedule([]string{"a", "b"}, 2)

	require.Len(t, pairings, 4)
	assert.Equal(t, "a", pairings[0].first)
	assert.Equal(t, "b", pairings[0].second)
	assert.Equal(t, "b", pairings[1].first)
	assert.Equal(t, "a", pairings[1].second)
	assert.NotEqual(t, pairings[0].seed, pairings[2].seed)
}
