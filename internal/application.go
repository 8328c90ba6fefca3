package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Serve(ctx, logger, conf)
}

// Serve - wires the cache, the bot service and the HTTP server, and blocks until ctx is done.
func Serve(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	var opts []service.Option
	if conf.Engine.DefaultComputer != "" {
		player, err := entity.ParsePlayer(conf.Engine.DefaultComputer)
		if err != nil {
			return fmt.Errorf("engine.default-computer: %w", err)
		}

		opts = append(opts, service.WithDefaultComputer(player))
	}

	cache := repository.NewNullMoveCache()
	checks := map[string]rest.HealthCheck{}

	if conf.Redis.Enabled {
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		cache = repository.NewMoveCache(redisStorage, conf.Cache.TTL)
		checks["redis"] = func(ctx context.Context) error {
			return redisStorage.Ping(ctx).Err()
		}
	}

	bot := service.NewBotService(logger, cache, opts...)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "redis", conf.Redis.Enabled)

	if err := rest.New(logger, conf, bot, checks).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
