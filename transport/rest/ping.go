package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type PingHandler interface {
	Ping(ctx echo.Context) error
}

type pingHandler struct{}

func NewPingHandler() PingHandler {
	return &pingHandler{}
}

func (that *pingHandler) Ping(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler interface {
	Health(ctx echo.Context) error
}

type healthHandler struct {
	logger *slog.Logger
	checks map[string]HealthCheck
}

type healthResponse struct {
	OK bool `json:"ok"`
}

const healthTimeout = 2 * time.Second

func NewHealthHandler(logger *slog.Logger, checks map[string]HealthCheck) HealthHandler {
	return &healthHandler{
		logger: logger.With("handler", "health"),
		checks: checks,
	}
}

// Health - always answers 200, "ok" is false when a dependency check fails.
func (that *healthHandler) Health(ctx echo.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthTimeout)
	defer cancel()

	ok := true
	for name, check := range that.checks {
		if err := check(checkCtx); err != nil {
			that.logger.Error("health check failed", "dependency", name, "error", err)
			ok = false
		}
	}

	return ctx.JSON(http.StatusOK, healthResponse{OK: ok})
}
