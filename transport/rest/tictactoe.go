package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type botService interface {
	NextMove(ctx context.Context, req entity.MoveRequest) (*entity.Selection, error)
}

type TicTacToeHandler interface {
	CalculateMove(ctx echo.Context) error
}

type tictactoeHandler struct {
	logger *slog.Logger
	bot    botService
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewTicTacToeHandler(logger *slog.Logger, bot botService) TicTacToeHandler {
	return &tictactoeHandler{
		logger: logger.With("handler", "tictactoe"),
		bot:    bot,
	}
}

// CalculateMove - answers {"square": n} with the engine move, or null when the board is full.
func (that *tictactoeHandler) CalculateMove(ctx echo.Context) error {
	log := that.logger.With("method", "CalculateMove", "request_id", ctx.Response().Header().Get(echo.HeaderXRequestID))

	var req entity.MoveRequest
	if err := ctx.Bind(&req); err != nil {
		log.Debug("failed to bind request", "error", err)
		return bindError(ctx, err)
	}

	move, err := that.bot.NextMove(ctx.Request().Context(), req)
	if err != nil {
		if isBadRequest(err) {
			log.Debug("rejected move request", "error", err)
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}

		log.Error("failed to calculate move", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	return ctx.JSON(http.StatusOK, move)
}

func isBadRequest(err error) bool {
	return errors.Is(err, apperror.ErrInvalidPlayer) ||
		errors.Is(err, apperror.ErrInvalidBoard) ||
		errors.Is(err, apperror.ErrInvalidCell)
}

func bindError(ctx echo.Context, err error) error {
	status, message := http.StatusBadRequest, err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status, message = httpErr.Code, fmt.Sprint(httpErr.Message)
		if httpErr.Internal != nil {
			message = httpErr.Internal.Error()
		}
	}

	return ctx.JSON(status, errorResponse{Error: message})
}
