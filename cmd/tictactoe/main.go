package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewRunner(RunnerOpts{
		Logger: logger,
		Output: os.Stdout,
	})

	app := &cli.Command{
		Name:     "tictactoe",
		Usage:    "Perfect-play tic-tac-toe engine",
		Version:  "1.0.0",
		Flags:    []cli.Flag{verboseFlag()},
		Before:   runner.Before,
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatal("application error", "error", err)
	}
}

// newLogger creates a [log.Logger] on stderr that also serves as a slog handler.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}
}

func slogger(l *log.Logger) *slog.Logger {
	return slog.New(l)
}
