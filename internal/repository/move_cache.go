package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// MoveCache stores the set of best squares computed for a position.
type MoveCache interface {
	Get(ctx context.Context, key string) ([]int, error)
	Set(ctx context.Context, key string, squares []int) error
}

type dbMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveCache(client *redis.Client, ttl time.Duration) MoveCache {
	return &dbMoveCache{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMoveCache) Get(ctx context.Context, key string) ([]int, error) {
	response, err := that.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}

	var squares []int
	if err = json.Unmarshal([]byte(response), &squares); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}

	return squares, nil
}

func (that *dbMoveCache) Set(ctx context.Context, key string, squares []int) error {
	if squares == nil {
		squares = []int{}
	}

	movesJSON, err := json.Marshal(squares)
	if err != nil {
		return fmt.Errorf("could not marshal moves: %w", err)
	}

	if err = that.client.Set(ctx, key, movesJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set moves: %w", err)
	}

	return nil
}

type nullMoveCache struct{}

// NewNullMoveCache - a cache that never hits, for running without Redis.
func NewNullMoveCache() MoveCache {
	return nullMoveCache{}
}

func (nullMoveCache) Get(context.Context, string) ([]int, error) {
	return nil, apperror.ErrCacheMiss
}

func (nullMoveCache) Set(context.Context, string, []int) error {
	return nil
}
