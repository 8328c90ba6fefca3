package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type BotService interface {
	NextMove(ctx context.Context, req entity.MoveRequest) (*entity.Selection, error)
}

type moveCache interface {
	Get(ctx context.Context, key string) ([]int, error)
	Set(ctx context.Context, key string, squares []int) error
}

type botService struct {
	logger *slog.Logger

	cache           moveCache
	defaultComputer entity.Player
	newRand         func() tictactoe.Rand
}

type Option func(*botService)

// WithDefaultComputer - mark the engine plays when a request does not name one.
func WithDefaultComputer(player entity.Player) Option {
	return func(that *botService) {
		that.defaultComputer = player
	}
}

// WithRand - replaces the per-call random source, used by tests.
func WithRand(newRand func() tictactoe.Rand) Option {
	return func(that *botService) {
		that.newRand = newRand
	}
}

func NewBotService(logger *slog.Logger, cache moveCache, opts ...Option) BotService {
	service := &botService{
		logger:  logger.With("component", "bot"),
		cache:   cache,
		newRand: newCallRand,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// NextMove - picks the engine move for the submitted position. A nil selection
// with a nil error means there is no open square.
func (that *botService) NextMove(ctx context.Context, req entity.MoveRequest) (*entity.Selection, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid move request: %w", err)
	}

	computer := that.resolveComputer(req)
	state := tictactoe.NewGameState(req.Board, req.NextPlayer, computer)

	log := that.logger.With("method", "NextMove", "board", req.Board.String(), "next", req.NextPlayer, "computer", computer)

	best := that.bestMoves(ctx, log, state)

	move, ok := tictactoe.Choose(best, that.newRand())
	if !ok {
		log.Debug("no open squares")
		return nil, nil
	}

	log.Debug("move selected", "square", move.Square, "label", move.Label(), "candidates", len(best))

	return &move, nil
}

func (that *botService) resolveComputer(req entity.MoveRequest) entity.Player {
	if req.ComputerPlayer != entity.NoPlayer {
		return req.ComputerPlayer
	}

	if that.defaultComputer != entity.NoPlayer {
		return that.defaultComputer
	}

	return ResolveComputer(req.Board, req.NextPlayer)
}

// ResolveComputer - the mark with fewer cells on the board; next on equal counts.
func ResolveComputer(board entity.Board, next entity.Player) entity.Player {
	xCount, oCount := board.Count(entity.PlayerX), board.Count(entity.PlayerO)

	switch {
	case xCount < oCount:
		return entity.PlayerX
	case oCount < xCount:
		return entity.PlayerO
	default:
		return next
	}
}

func (that *botService) bestMoves(ctx context.Context, log *slog.Logger, state tictactoe.GameState) []entity.Selection {
	key := cacheKey(state)

	squares, err := that.cache.Get(ctx, key)
	switch {
	case err == nil && fitsState(state, squares):
		log.Debug("best moves served from cache", "squares", squares)
		return toSelections(squares)
	case err == nil:
		log.Warn("discarding cached moves that do not fit the board", "squares", squares)
	case !errors.Is(err, apperror.ErrCacheMiss):
		log.Warn("failed to read move cache", "error", err)
	}

	best := tictactoe.BestMoves(state)

	if err = that.cache.Set(ctx, key, toSquares(best)); err != nil {
		log.Warn("failed to write move cache", "error", err)
	}

	return best
}

func cacheKey(state tictactoe.GameState) string {
	return fmt.Sprintf("moves:%s:%s:%s", state.Board, state.NextPlayer, state.ComputerPlayer)
}

func toSquares(moves []entity.Selection) []int {
	squares := make([]int, 0, len(moves))
	for _, m := range moves {
		squares = append(squares, m.Square)
	}
	return squares
}

// fitsState - every square is open, and the set is empty only when the board is full.
func fitsState(state tictactoe.GameState, squares []int) bool {
	open := state.OpenSquares()
	if len(squares) == 0 {
		return len(open) == 0
	}

	for _, square := range squares {
		if square < 0 || square >= entity.BoardSize || state.Board[square] != entity.NoPlayer {
			return false
		}
	}

	return true
}

func toSelections(squares []int) []entity.Selection {
	moves := make([]entity.Selection, 0, len(squares))
	for _, square := range squares {
		moves = append(moves, entity.NewSelection(square))
	}
	return moves
}

func newCallRand() tictactoe.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // tie-breaking only
}
