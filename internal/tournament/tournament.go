package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/isolation-backend/internal/agent"
	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
	"github.com/rocketscienceinc/isolation-backend/internal/match"
)

var ErrNotEnoughPlayers = errors.New("tournament needs at least two players")

type matchRunner interface {
	Play(ctx context.Context, board *isolation.Board, p1, p2 agent.Player) (*match.Result, error)
}

// Recorder stores finished matches.
type Recorder interface {
	CreateOrUpdate(ctx context.Context, result *match.Result) error
}

// PlayerFactory builds a fresh player for each match, so agents with state
// are never shared between goroutines.
type PlayerFactory func(name string, seed int64) (agent.Player, error)

type Config struct {
	Players     []string
	Rounds      int
	Concurrency int
	Width       int
	Height      int
}

// Standing is one row of the final table.
type Standing struct {
	Name   string
	Wins   int
	Losses int
}

type Report struct {
	Results   []*match.Result
	Standings []Standing
}

type Tournament struct {
	logger   *slog.Logger
	runner   matchRunner
	factory  PlayerFactory
	recorder Recorder
}

func New(logger *slog.Logger, runner matchRunner, factory PlayerFactory, recorder Recorder) *Tournament {
	return &Tournament{
		logger:   logger.With("component", "tournament"),
		runner:   runner,
		factory:  factory,
		recorder: recorder,
	}
}

type pairing struct {
	first, second string
	seed          int64
}

// Run - plays every ordered pairing of distinct players Rounds times.
func (that *Tournament) Run(ctx context.Context, conf Config) (*Report, error) {
	if len(conf.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	pairings := schedule(conf.Players, max(conf.Rounds, 1))

	results := make([]*match.Result, len(pairings))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(conf.Concurrency, 1))

	for i, p := range pairings {
		group.Go(func() error {
			result, err := that.playOne(groupCtx, conf, p)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("tournament failed: %w", err)
	}

	report := &Report{
		Results:   results,
		Standings: standings(conf.Players, results),
	}
	that.logger.Info("Tournament finished", "matches", len(results))

	return report, nil
}

func (that *Tournament) playOne(ctx context.Context, conf Config, p pairing) (*match.Result, error) {
	p1, err := that.factory(p.first, p.seed)
	if err != nil {
		return nil, fmt.Errorf("could not create player %q: %w", p.first, err)
	}

	p2, err := that.factory(p.second, p.seed+1)
	if err != nil {
		return nil, fmt.Errorf("could not create player %q: %w", p.second, err)
	}

	result, err := that.runner.Play(ctx, isolation.NewBoard(conf.Width, conf.Height), p1, p2)
	if err != nil {
		return nil, fmt.Errorf("%s vs %s: %w", p.first, p.second, err)
	}

	if that.recorder != nil {
		if err = that.recorder.CreateOrUpdate(ctx, result); err != nil {
			return nil, fmt.Errorf("could not record match %s: %w", result.ID, err)
		}
	}

	return result, nil
}

func schedule(players []string, rounds int) []pairing {
	var pairings []pairing
	for round := 0; round < rounds; round++ {
		for i, first := range players {
			for j, second := range players {
				if i == j {
					continue
				}
				pairings = append(pairings, pairing{
					first:  first,
					second: second,
					seed:   int64(len(pairings)) * 2,
				})
			}
		}
	}

	return pairings
}

// standings are keyed by the configured names, so two entries with the same
// agent name share one row.
func standings(players []string, results []*match.Result) []Standing {
	table := make(map[string]*Standing, len(players))
	for _, name := range players {
		if _, ok := table[name]; !ok {
			table[name] = &Standing{Name: name}
		}
	}

	for _, result := range results {
		winner := result.WinnerName()
		loser := result.Player1
		if result.Winner == isolation.Player1 {
			loser = result.Player2
		}

		if row, ok := table[winner]; ok {
			row.Wins++
		}
		if row, ok := table[loser]; ok {
			row.Losses++
		}
	}

	rows := make([]Standing, 0, len(table))
	for _, row := range table {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Name < rows[j].Name
	})

	return rows
}
