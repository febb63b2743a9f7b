package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/match"
)

const (
	matchKeyPrefix = "match:"
	matchIndexKey  = "matches"
)

type MatchRepository interface {
	CreateOrUpdate(ctx context.Context, result *match.Result) error
	GetByID(ctx context.Context, id string) (*match.Result, error)
	DeleteByID(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

func (that *dbMatch) CreateOrUpdate(ctx context.Context, result *match.Result) error {
	matchJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+result.ID, matchJSON, 0)
		pipe.SAdd(ctx, matchIndexKey, result.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*match.Result, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var result match.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &result, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, matchKeyPrefix+id)
		pipe.SRem(ctx, matchIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete match by id: %w", err)
	}

	if deleted.Val() == 0 {
		return apperror.ErrMatchNotFound
	}

	return nil
}

func (that *dbMatch) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := that.client.SMembers(ctx, matchIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return ids, nil
}
