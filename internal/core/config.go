package core

// RuntimeConfig contains the constants a frontend hands to the board at construction.
type RuntimeConfig struct {
	GridW         int   // Grid width in cells (columns)
	GridH         int   // Grid height in cells (rows)
	CellSize      int   // Characters per cell horizontally; rendering only
	InitialLength int   // Snake length at start
	TickRate      int   // Board ticks per second
	Seed          int64 // RNG seed for food placement (0 = random, resolved by the caller)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GridW:         40,
		GridH:         20,
		CellSize:      2,
		InitialLength: 5,
		TickRate:      10,
		Seed:          0,
	}
}

// Bounds returns the rectangle covering every grid cell.
func (c RuntimeConfig) Bounds() Rect {
	return NewRect(0, 0, c.GridW, c.GridH)
}

// ScreenSize returns the character dimensions needed to draw the grid
// inside a one-character border.
func (c RuntimeConfig) ScreenSize() (w, h int) {
	cell := max(1, c.CellSize)
	return c.GridW*cell + 2, c.GridH + 2
}

// CellOrigin returns the screen position of the leftmost character of grid
// cell p, accounting for the border. A cell spans CellSize characters.
func (c RuntimeConfig) CellOrigin(p Coord) (x, y int) {
	return p.X*max(1, c.CellSize) + 1, p.Y + 1
}
