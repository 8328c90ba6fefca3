package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrNoGames = errors.New("games must be positive")

// Runner holds the dependencies shared by all commands.
type Runner struct {
	logger  *log.Logger
	output  io.Writer
	newRand func() tictactoe.Rand
}

type RunnerOpts struct {
	Logger  *log.Logger
	Output  io.Writer
	NewRand func() tictactoe.Rand
}

func NewRunner(opts RunnerOpts) *Runner {
	r := &Runner{
		logger:  opts.Logger,
		output:  opts.Output,
		newRand: opts.NewRand,
	}

	if r.logger == nil {
		r.logger = newLogger()
	}

	if r.output == nil {
		r.output = os.Stdout
	}

	if r.newRand == nil {
		r.newRand = func() tictactoe.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}

	return r
}

// Before applies global flags.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	return ctx, nil
}

// Serve loads the configuration and blocks until ctx is canceled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	conf, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if !cmd.Bool("verbose") {
		r.logger.SetLevel(log.Level(config.ParseLevel(conf.LogLevel)))
	}

	return app.Serve(ctx, slogger(r.logger), conf)
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}

	return config.LoadEnv()
}

// Move prints the engine move for --board with --next to play.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	board, err := entity.ParseBoard(cmd.String("board"))
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	next, err := entity.ParsePlayer(cmd.String("next"))
	if err != nil {
		return fmt.Errorf("next: %w", err)
	}

	req := entity.MoveRequest{Board: board, NextPlayer: next}

	if mark := cmd.String("computer"); mark != "" {
		if req.ComputerPlayer, err = entity.ParsePlayer(mark); err != nil {
			return fmt.Errorf("computer: %w", err)
		}
	}

	bot := service.NewBotService(slogger(r.logger), repository.NewNullMoveCache(), service.WithRand(r.newRand))

	move, err := bot.NextMove(ctx, req)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return json.NewEncoder(r.output).Encode(move)
	}

	if move == nil {
		_, err = fmt.Fprintln(r.output, "no move")
		return err
	}

	_, err = fmt.Fprintf(r.output, "%d %s\n", move.Square, move.Label())

	return err
}

// SelfPlay plays --games engine-vs-engine games and prints the outcome counts.
func (r *Runner) SelfPlay(_ context.Context, cmd *cli.Command) error {
	games := cmd.Int("games")
	if games <= 0 {
		return ErrNoGames
	}

	outcomes := map[entity.Player]int{}

	for i := range games {
		start := tictactoe.NewGameState(entity.Board{}, entity.PlayerX, entity.PlayerX)
		final := tictactoe.SelfPlay(start, r.newRand())
		outcomes[final.Winner]++

		r.logger.Debug("game finished", "game", i+1, "board", final.Board.String(), "winner", final.Winner)

		if cmd.Bool("show") {
			if _, err := fmt.Fprintf(r.output, "%s\n", final); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(r.output, "games: %d  X wins: %d  O wins: %d  ties: %d\n",
		games, outcomes[entity.PlayerX], outcomes[entity.PlayerO], outcomes[entity.NoPlayer])

	return err
}

// Render draws --board and reports its winner.
func (r *Runner) Render(_ context.Context, cmd *cli.Command) error {
	board, err := entity.ParseBoard(cmd.String("board"))
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	state := tictactoe.NewGameState(board, entity.PlayerX, entity.NoPlayer)

	winner := "none"
	if state.HasWinner() {
		winner = string(state.Winner)
	}

	_, err = fmt.Fprintf(r.output, "%s\nwinner: %s\nopen squares: %d\n", state, winner, len(state.OpenSquares()))

	return err
}
