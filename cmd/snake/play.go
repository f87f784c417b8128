package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const defaultFrontend = "tea"

var flagFrontend string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD/HJKL  - Steer
  Ctrl+L            - Repaint the screen
  Q/Esc/Ctrl+C      - Quit

The snake cannot reverse onto itself; such turns are ignored.
The game ends when the snake hits a wall or its own body.

Examples:
  snake play
  snake play --frontend tcell
  snake play --seed 7 --fps 20
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagFrontend, "frontend", "f", defaultFrontend, "Renderer to use (see 'snake frontends')")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !registry.Exists(flagFrontend) {
		return fmt.Errorf("unknown frontend %q, run 'snake frontends' to see available ones", flagFrontend)
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	if err := checkTerminalSize(cfg, flagFrontend); err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting game",
		"frontend", flagFrontend,
		"grid", fmt.Sprintf("%dx%d", cfg.GridW, cfg.GridH),
		"seed", cfg.Seed,
		"tick_rate", cfg.TickRate,
	)

	fe, err := registry.Create(flagFrontend)
	if err != nil {
		return err
	}

	board := snake.NewBoard(cfg, snake.WithLogger(logger))
	if err := fe.Run(cmd.Context(), board, cfg, logger); err != nil {
		logger.Error("frontend failed", "err", err)
		return err
	}

	logger.Info("game finished", "state", board.State(), "length", board.Body().Len(), "ticks", board.Ticks())
	if board.GameOver() {
		fmt.Printf("Game over. Final length: %d\n", board.Body().Len())
	}
	return nil
}

// loadRuntimeConfig loads the config file, applies flag overrides and
// resolves a zero seed to the current time.
func loadRuntimeConfig() (core.RuntimeConfig, error) {
	sc, err := config.Load(flagConfig)
	if err != nil {
		return core.RuntimeConfig{}, err
	}

	if flagFPS > 0 {
		sc.Timing.TickRate = flagFPS
	}
	if flagSeed != 0 {
		sc.Seed = flagSeed
	}
	if err := sc.Validate(); err != nil {
		return core.RuntimeConfig{}, err
	}

	cfg := sc.Runtime()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// checkTerminalSize fails early when the grid and the frontend's extra lines
// cannot fit. Non-terminal output skips the check.
func checkTerminalSize(cfg core.RuntimeConfig, frontend string) error {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return nil
	}
	return fitTerminal(cfg, frontend, width, height)
}

// fitTerminal reports whether a width x height terminal can show the bordered
// grid plus the status line, and for the tea frontend its key help line.
func fitTerminal(cfg core.RuntimeConfig, frontend string, width, height int) error {
	needW, needH := cfg.ScreenSize()
	needH++ // status line
	if frontend == "tea" {
		needH++ // help line
	}
	if width < needW || height < needH {
		return fmt.Errorf("terminal is %dx%d but the %dx%d grid needs at least %dx%d; shrink the grid or cell_size",
			width, height, cfg.GridW, cfg.GridH, needW, needH)
	}
	return nil
}
