// commands of the tictactoe binary
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		serveCommand(r),
		moveCommand(r),
		selfPlayCommand(r),
		renderCommand(r),
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.yml",
			},
		},
		Action: r.Serve,
	}
}

func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "Print the engine move for a position",
		Flags: []cli.Flag{
			boardFlag(true),
			&cli.StringFlag{
				Name:     "next",
				Aliases:  []string{"n"},
				Usage:    "Player to move (X or O)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "computer",
				Usage: "Player the engine plays for, defaults to the mark with fewer cells",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the HTTP API response body",
			},
		},
		Action: r.Move,
	}
}

func selfPlayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "selfplay",
		Usage: "Let the engine play against itself from the empty board",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "games",
				Aliases: []string{"g"},
				Usage:   "Number of games to play",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "show",
				Usage: "Print every final board",
			},
		},
		Action: r.SelfPlay,
	}
}

func renderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "render",
		Usage:  "Draw a board and report its winner",
		Flags:  []cli.Flag{boardFlag(true)},
		Action: r.Render,
	}
}

func boardFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "board",
		Aliases:  []string{"b"},
		Usage:    "Nine cells in row-major order, X, O and . for empty",
		Required: required,
	}
}
