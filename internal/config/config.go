// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for a game.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Snake  SnakeParams  `yaml:"snake"`
	Timing TimingConfig `yaml:"timing"`
	Seed   int64        `yaml:"seed"` // 0 = time-based
}

// GridConfig defines board dimensions.
type GridConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// SnakeParams defines the starting snake.
type SnakeParams struct {
	InitialLength int `yaml:"initial_length"`
}

// TimingConfig defines the simulation rate.
type TimingConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// Validate reports every problem that would make the board impossible to build.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.CellSize < 1 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %d", c.Grid.CellSize))
	}
	if c.Snake.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("initial_length must be positive, got %d", c.Snake.InitialLength))
	} else if c.Snake.InitialLength > c.Grid.Width {
		errs = append(errs, fmt.Errorf("initial_length %d does not fit in %d columns", c.Snake.InitialLength, c.Grid.Width))
	} else if c.Snake.InitialLength >= c.Grid.Width*c.Grid.Height {
		errs = append(errs, fmt.Errorf("initial_length %d leaves no room for food", c.Snake.InitialLength))
	}
	if c.Timing.TickRate < 1 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Timing.TickRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Runtime converts the config into the constants handed to the board.
func (c SnakeConfig) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		GridW:         c.Grid.Width,
		GridH:         c.Grid.Height,
		CellSize:      c.Grid.CellSize,
		InitialLength: c.Snake.InitialLength,
		TickRate:      c.Timing.TickRate,
		Seed:          c.Seed,
	}
}
