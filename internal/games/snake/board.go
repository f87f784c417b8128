// Package snake implements the deterministic snake game state: the occupancy
// grid, the snake body, food placement and fate resolution.
//
// The package has no knowledge of terminals. A frontend drives a Board through
// three entry points (OnTick, OnKey, OnRepaint) from a single goroutine and
// paints whatever cells OnRepaint hands back.
package snake

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DrawFunc paints one grid cell in the given color.
type DrawFunc func(c core.Coord, color core.Color)

// Board owns the grid, the snake and the food, and records which cells
// changed since the last repaint.
type Board struct {
	cfg    core.RuntimeConfig
	grid   *Grid
	body   *Body
	food   core.Coord
	dirty  []core.Coord // Cells written since the last OnRepaint
	state  State
	ticks  uint64
	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for game events.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRand replaces the seeded RNG used for food placement.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		if r != nil {
			b.rng = r
		}
	}
}

// NewBoard creates a board with the snake laid out horizontally on the middle
// row, head at column InitialLength-1 heading right, and the first food placed.
// Panics if cfg cannot hold the snake plus one food cell; validate with
// config.SnakeConfig.Validate first.
func NewBoard(cfg core.RuntimeConfig, opts ...Option) *Board {
	if cfg.GridW < 1 || cfg.GridH < 1 {
		panic(fmt.Sprintf("snake: invalid grid %dx%d", cfg.GridW, cfg.GridH))
	}
	if cfg.InitialLength < 1 || cfg.InitialLength > cfg.GridW || cfg.InitialLength >= cfg.Bounds().Area() {
		panic(fmt.Sprintf("snake: initial length %d does not fit a %dx%d grid", cfg.InitialLength, cfg.GridW, cfg.GridH))
	}

	b := &Board{
		cfg:    cfg,
		grid:   NewGrid(cfg.GridW, cfg.GridH),
		body:   NewBody(core.C(cfg.InitialLength-1, cfg.GridH/2), cfg.InitialLength),
		state:  StatePlaying,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, c := range b.body.Cells() {
		b.setCell(c, CellSnake)
	}
	b.renewFood()

	b.logger.Debug("board created",
		"grid", fmt.Sprintf("%dx%d", cfg.GridW, cfg.GridH),
		"length", b.body.Len(),
		"food", b.food,
	)

	return b
}

// OnTick advances the game by one step. It is a no-op once the game is over.
func (b *Board) OnTick() {
	if b.state == StateGameOver {
		return
	}
	b.ticks++

	switch fate := b.resolveFate(); fate {
	case FateDie:
		b.die()
	case FateMove:
		head, tail, _ := b.body.Advance(false)
		b.setCell(head, CellSnake)
		b.setCell(tail, CellEmpty)
	case FateEat:
		head, _, _ := b.body.Advance(true)
		b.setCell(head, CellSnake)
		if b.body.Len() == b.cfg.Bounds().Area() {
			// No free cell left for food.
			b.state = StateGameOver
			b.logger.Info("game over", "cause", "full", "length", b.body.Len(), "tick", b.ticks)
			return
		}
		b.renewFood()
	default:
		panic(fmt.Sprintf("snake: unhandled fate %v", fate))
	}
}

// OnKey steers the snake. Actions that carry no direction are ignored, as is
// everything after game over.
func (b *Board) OnKey(a core.Action) {
	if b.state == StateGameOver {
		return
	}
	dir, ok := a.Direction()
	if !ok {
		return
	}
	if !b.body.TryTurn(dir) {
		b.logger.Debug("reverse turn ignored", "heading", b.body.Direction(), "requested", dir)
	}
}

// OnRepaint calls draw for every cell when full is true, otherwise only for
// the cells changed since the previous call. Either way the change list is
// drained, so a second incremental repaint with nothing in between draws nothing.
func (b *Board) OnRepaint(full bool, draw DrawFunc) {
	if full {
		for y := 0; y < b.grid.Height(); y++ {
			for x := 0; x < b.grid.Width(); x++ {
				c := core.C(x, y)
				draw(c, b.grid.At(c).Color())
			}
		}
	} else {
		for _, c := range b.dirty {
			draw(c, b.grid.At(c).Color())
		}
	}
	b.dirty = b.dirty[:0]
}

// resolveFate classifies the move the snake is about to make.
// This is the only place a coordinate is checked against the grid bounds.
func (b *Board) resolveFate() Fate {
	next := b.body.NextHead()
	if !b.grid.InBounds(next) {
		return FateDie
	}

	switch b.grid.At(next) {
	case CellEmpty:
		return FateMove
	case CellFood:
		return FateEat
	default:
		return FateDie
	}
}

// die moves the board into its terminal state.
func (b *Board) die() {
	cause := "self"
	if !b.grid.InBounds(b.body.NextHead()) {
		cause = "wall"
	}
	b.state = StateGameOver

	b.logger.Info("game over",
		"cause", cause,
		"head", b.body.Head(),
		"heading", b.body.Direction(),
		"length", b.body.Len(),
		"tick", b.ticks,
	)
}

// renewFood samples random cells until one is not part of the snake and puts
// food there. It does not clear the previous food cell: by the time it runs,
// that cell is the snake's new head.
func (b *Board) renewFood() {
	attempts := 0
	for {
		attempts++
		c := core.C(b.rng.Intn(b.grid.Width()), b.rng.Intn(b.grid.Height()))
		if b.grid.At(c) != CellSnake {
			b.food = c
			break
		}
	}
	b.setCell(b.food, CellFood)

	b.logger.Debug("food placed", "at", b.food, "attempts", attempts, "tick", b.ticks)
}

// setCell writes an occupancy and records the cell for the next incremental repaint.
// Every grid write goes through here.
func (b *Board) setCell(c core.Coord, o Occupancy) {
	b.grid.Set(c, o)
	b.dirty = append(b.dirty, c)
}

// State returns the current lifecycle state.
func (b *Board) State() State {
	return b.state
}

// GameOver reports whether the game has ended.
func (b *Board) GameOver() bool {
	return b.state == StateGameOver
}

// Body returns the snake. Callers must not mutate it.
func (b *Board) Body() *Body {
	return b.body
}

// Food returns the current food cell.
func (b *Board) Food() core.Coord {
	return b.food
}

// Width returns the grid width in cells.
func (b *Board) Width() int {
	return b.grid.Width()
}

// Height returns the grid height in cells.
func (b *Board) Height() int {
	return b.grid.Height()
}

// Ticks returns the number of ticks processed while playing.
func (b *Board) Ticks() uint64 {
	return b.ticks
}

// Occupancy returns what the cell at c holds. c must be in bounds.
func (b *Board) Occupancy(c core.Coord) Occupancy {
	return b.grid.At(c)
}

// Config returns the configuration the board was built with.
func (b *Board) Config() core.RuntimeConfig {
	return b.cfg
}
