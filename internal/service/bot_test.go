package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockMoveCache struct {
	mock.Mock
}

func (that *mockMoveCache) Get(ctx context.Context, key string) ([]int, error) {
	args := that.Called(ctx, key)
	squares, _ := args.Get(0).([]int)
	return squares, args.Error(1)
}

func (that *mockMoveCache) Set(ctx context.Context, key string, squares []int) error {
	args := that.Called(ctx, key, squares)
	return args.Error(0)
}

func newTestService(t *testing.T, cache moveCache, opts ...Option) BotService {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithRand(func() tictactoe.Rand {
		return rand.New(rand.NewPCG(1, 2))
	})}, opts...)

	return NewBotService(logger, cache, opts...)
}

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.NoPlayer
)

func TestBotService_NextMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Computes and caches on a miss", func(t *testing.T) {
		// Given: an empty cache and a position where X must block square 2
		cache := &mockMoveCache{}
		service := newTestService(t, cache)

		req := entity.MoveRequest{
			Board: entity.Board{
				o, o, e,
				e, x, e,
				e, x, e,
			},
			NextPlayer: x,
		}

		cache.On("Get", ctx, "moves:OO..X..X.:X:X").Return(nil, apperror.ErrCacheMiss).Once()
		cache.On("Set", ctx, "moves:OO..X..X.:X:X", []int{2}).Return(nil).Once()

		// When: asking for the next move
		move, err := service.NextMove(ctx, req)

		// Then: the block is played and the set is cached
		require.NoError(t, err)
		require.NotNil(t, move)
		assert.Equal(t, 2, move.Square)
		cache.AssertExpectations(t)
	})

	t.Run("Serves the cached set", func(t *testing.T) {
		// Given: a cache hit with a single square
		cache := &mockMoveCache{}
		service := newTestService(t, cache)

		cache.On("Get", ctx, "moves:.........:X:X").Return([]int{4}, nil).Once()

		// When: asking for a move on the empty board
		move, err := service.NextMove(ctx, entity.MoveRequest{NextPlayer: x})

		// Then: the cached square is used and nothing is written
		require.NoError(t, err)
		require.NotNil(t, move)
		assert.Equal(t, 4, move.Square)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache errors do not fail the request", func(t *testing.T) {
		// Given: a cache that is down
		cache := &mockMoveCache{}
		service := newTestService(t, cache)

		cache.On("Get", mock.Anything, mock.Anything).Return(nil, errRedisDown).Once()
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errRedisDown).Once()

		// When: X can win immediately on square 2
		move, err := service.NextMove(ctx, entity.MoveRequest{
			Board: entity.Board{
				x, x, e,
				o, o, e,
				o, x, e,
			},
			NextPlayer: x,
		})

		// Then: the engine answer is still returned
		require.NoError(t, err)
		require.NotNil(t, move)
		assert.Equal(t, 2, move.Square)
	})

	t.Run("Cached moves that do not fit the board are recomputed", func(t *testing.T) {
		board := entity.Board{
			x, x, e,
			o, o, e,
			o, x, e,
		}

		for _, cached := range [][]int{{0}, {9}, {-1}, {}, {2, 4}} {
			// Given: a cache entry pointing at an occupied, out of range or missing square
			cache := &mockMoveCache{}
			service := newTestService(t, cache)

			cache.On("Get", ctx, "moves:XX.OO.OX.:X:X").Return(cached, nil).Once()
			cache.On("Set", ctx, "moves:XX.OO.OX.:X:X", []int{2}).Return(nil).Once()

			// When: asking for a move
			move, err := service.NextMove(ctx, entity.MoveRequest{Board: board, NextPlayer: x})

			// Then: the entry is ignored and the engine answer is stored again
			require.NoError(t, err)
			require.NotNil(t, move)
			assert.Equal(t, 2, move.Square, cached)
			cache.AssertExpectations(t)
		}
	})

	t.Run("Full board has no move", func(t *testing.T) {
		cache := &mockMoveCache{}
		service := newTestService(t, cache)

		cache.On("Get", mock.Anything, mock.Anything).Return(nil, apperror.ErrCacheMiss).Once()
		cache.On("Set", mock.Anything, mock.Anything, []int{}).Return(nil).Once()

		move, err := service.NextMove(ctx, entity.MoveRequest{
			Board: entity.Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			NextPlayer: o,
		})

		require.NoError(t, err)
		assert.Nil(t, move)
	})

	t.Run("Invalid next player", func(t *testing.T) {
		cache := &mockMoveCache{}
		service := newTestService(t, cache)

		move, err := service.NextMove(ctx, entity.MoveRequest{})

		require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
		assert.Nil(t, move)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Explicit computer player is honoured", func(t *testing.T) {
		// Given: the request says the engine plays O
		cache := &mockMoveCache{}
		service := newTestService(t, cache, WithDefaultComputer(x))

		cache.On("Get", ctx, "moves:X........:O:O").Return([]int{4}, nil).Once()

		// When: asking for a move
		move, err := service.NextMove(ctx, entity.MoveRequest{
			Board:          entity.Board{x},
			NextPlayer:     o,
			ComputerPlayer: o,
		})

		// Then: the key is built for O
		require.NoError(t, err)
		require.NotNil(t, move)
		cache.AssertExpectations(t)
	})

	t.Run("Configured default computer player", func(t *testing.T) {
		cache := &mockMoveCache{}
		service := newTestService(t, cache, WithDefaultComputer(x))

		cache.On("Get", ctx, "moves:X........:O:X").Return([]int{4}, nil).Once()

		_, err := service.NextMove(ctx, entity.MoveRequest{
			Board:      entity.Board{x},
			NextPlayer: o,
		})

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})
}

func TestResolveComputer(t *testing.T) {
	t.Run("Fewer X marks", func(t *testing.T) {
		assert.Equal(t, x, ResolveComputer(entity.Board{o}, x))
	})

	t.Run("Fewer O marks", func(t *testing.T) {
		assert.Equal(t, o, ResolveComputer(entity.Board{x}, o))
	})

	t.Run("Equal counts fall back to the next player", func(t *testing.T) {
		assert.Equal(t, x, ResolveComputer(entity.Board{}, x))
		assert.Equal(t, o, ResolveComputer(entity.Board{x, o}, o))
	})
}
