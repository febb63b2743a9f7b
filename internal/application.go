package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/isolation-backend/internal/agent"
	"github.com/rocketscienceinc/isolation-backend/internal/config"
	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
	"github.com/rocketscienceinc/isolation-backend/internal/match"
	"github.com/rocketscienceinc/isolation-backend/internal/repository"
	"github.com/rocketscienceinc/isolation-backend/internal/repository/storage"
	"github.com/rocketscienceinc/isolation-backend/internal/tournament"
	"github.com/rocketscienceinc/isolation-backend/transport/rest"
)

var (
	ErrAddrNotFound    = errors.New("redis address string is empty")
	ErrStorageDisabled = errors.New("redis storage is disabled")
)

type App struct {
	logger *slog.Logger
	conf   *config.Config
	out    io.Writer
}

func New(logger *slog.Logger, conf *config.Config, out io.Writer) *App {
	return &App{
		logger: logger,
		conf:   conf,
		out:    out,
	}
}

// WithSignals - returns a context cancelled on SIGINT or SIGTERM.
func (that *App) WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	log := that.logger.With("component", "app")

	ctx, cancel := context.WithCancel(parent)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// RunPlay - plays one match between the configured players and writes its
// transcript.
func (that *App) RunPlay(ctx context.Context) error {
	conf := that.conf.Match

	p1, err := agent.New(conf.Player1, conf.Seed)
	if err != nil {
		return fmt.Errorf("player 1: %w", err)
	}

	p2, err := agent.New(conf.Player2, conf.Seed+1)
	if err != nil {
		return fmt.Errorf("player 2: %w", err)
	}

	runner := match.NewRunner(that.logger, conf.TimeLimit)
	result, err := runner.Play(ctx, isolation.NewBoard(conf.Width, conf.Height), p1, p2)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	text, err := result.Transcript()
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(that.out, "%s vs %s (match %s)\n%s", result.Player1, result.Player2, result.ID, text); err != nil {
		return fmt.Errorf("could not write transcript: %w", err)
	}

	return that.withRepository(ctx, func(matches repository.MatchRepository) error {
		return matches.CreateOrUpdate(ctx, result)
	})
}

// RunTournament - plays all pairings and prints the standings.
func (that *App) RunTournament(ctx context.Context) error {
	run := func(recorder tournament.Recorder) error {
		runner := match.NewRunner(that.logger, that.conf.Match.TimeLimit)
		tour := tournament.New(that.logger, runner, agent.New, recorder)

		report, err := tour.Run(ctx, tournament.Config{
			Players:     that.conf.Tournament.Players,
			Rounds:      that.conf.Tournament.Rounds,
			Concurrency: that.conf.Tournament.Concurrency,
			Width:       that.conf.Match.Width,
			Height:      that.conf.Match.Height,
		})
		if err != nil {
			return err
		}

		for _, row := range report.Standings {
			if _, err = fmt.Fprintf(that.out, "%-14s %4d %4d\n", row.Name, row.Wins, row.Losses); err != nil {
				return fmt.Errorf("could not write standings: %w", err)
			}
		}

		return nil
	}

	if !that.conf.Redis.Enabled {
		return run(nil)
	}

	return that.withRepository(ctx, func(matches repository.MatchRepository) error {
		return run(matches)
	})
}

// RunServer - serves stored matches over HTTP until ctx is cancelled.
func (that *App) RunServer(ctx context.Context) error {
	if !that.conf.Redis.Enabled {
		return ErrStorageDisabled
	}

	return that.withRepository(ctx, func(matches repository.MatchRepository) error {
		that.logger.Info("Starting HTTP server", "component", "app", "port", that.conf.HTTPPort)

		if err := rest.Start(ctx, that.conf.HTTPPort, rest.NewMux(that.logger, matches)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})
}

// withRepository connects to Redis when it is enabled; otherwise fn is skipped.
func (that *App) withRepository(ctx context.Context, fn func(repository.MatchRepository) error) error {
	if !that.conf.Redis.Enabled {
		return nil
	}

	log := that.logger.With("component", "app")

	if that.conf.Redis.Host == "" {
		return ErrAddrNotFound
	}
	redisAddrString := that.conf.Redis.GetRedisAddr()

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	return fn(repository.NewMatchRepository(redisStorage.Connection))
}
