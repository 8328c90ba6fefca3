package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

const (
	shutdownTimeout = 10 * time.Second
	maxBodySize     = "1K"
)

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
	port   string
}

func New(logger *slog.Logger, conf *config.Config, bot botService, checks map[string]HealthCheck) *Server {
	log := logger.With("component", "rest")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))

	ping := NewPingHandler()
	health := NewHealthHandler(log, checks)
	game := NewTicTacToeHandler(log, bot)

	e.GET("/ping", ping.Ping)
	e.GET("/_health", health.Health)

	api := e.Group("/api", middleware.BodyLimit(maxBodySize))
	if limiter := rateLimiter(conf.RateLimit); limiter != nil {
		api.Use(limiter)
	}

	api.POST("/tictactoe/", game.CalculateMove)
	api.POST("/tictactoe", game.CalculateMove)

	return &Server{
		logger: log,
		echo:   e,
		port:   conf.HTTPPort,
	}
}

// Handler - the routed handler, without a listener.
func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves HTTP until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := that.echo.Start(":" + that.port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	that.logger.Info("shutting down HTTP server")

	if err := that.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// rateLimiter - per client IP token bucket. Nil when rps is not positive.
func rateLimiter(conf config.RateLimit) echo.MiddlewareFunc {
	if conf.RPS <= 0 {
		return nil
	}

	burst := conf.Burst
	if burst < 1 {
		burst = 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(conf.RPS),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, _ string, _ error) error {
			return ctx.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		},
	})
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}

			if v.Error != nil {
				log.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}

			log.Info("request", attrs...)
			return nil
		},
	})
}
