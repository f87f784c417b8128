package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/core"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hard-coded default configuration.
func DefaultSnakeConfig() SnakeConfig {
	rc := core.DefaultConfig()
	return SnakeConfig{
		Grid: GridConfig{
			Width:    rc.GridW,
			Height:   rc.GridH,
			CellSize: rc.CellSize,
		},
		Snake: SnakeParams{
			InitialLength: rc.InitialLength,
		},
		Timing: TimingConfig{
			TickRate: rc.TickRate,
		},
		Seed: rc.Seed,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
