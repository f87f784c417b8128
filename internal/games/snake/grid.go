package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Occupancy is what a grid cell currently holds.
type Occupancy uint8

const (
	CellEmpty Occupancy = iota
	CellSnake
	CellFood
)

// String returns the name of the occupancy.
func (o Occupancy) String() string {
	switch o {
	case CellEmpty:
		return "empty"
	case CellSnake:
		return "snake"
	case CellFood:
		return "food"
	default:
		return "unknown"
	}
}

// Color returns the color a frontend paints for this occupancy.
func (o Occupancy) Color() core.Color {
	switch o {
	case CellSnake:
		return core.ColorBrightGreen
	case CellFood:
		return core.ColorBrightRed
	default:
		return core.ColorDefault
	}
}

// Grid is the occupancy matrix of the board.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	bounds core.Rect
	cells  []Occupancy
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		bounds: core.NewRect(0, 0, w, h),
		cells:  make([]Occupancy, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.bounds.W
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.bounds.H
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c core.Coord) bool {
	return g.bounds.Contains(c)
}

// index converts a coordinate to a flat array index.
// Out-of-bounds access is a programming error.
func (g *Grid) index(c core.Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("snake: grid index %v outside %dx%d", c, g.bounds.W, g.bounds.H))
	}
	return c.Y*g.bounds.W + c.X
}

// At returns the occupancy of the cell at c.
func (g *Grid) At(c core.Coord) Occupancy {
	return g.cells[g.index(c)]
}

// Set changes the occupancy of the cell at c.
func (g *Grid) Set(c core.Coord, o Occupancy) {
	g.cells[g.index(c)] = o
}

// Count returns the number of cells holding o.
func (g *Grid) Count(o Occupancy) int {
	n := 0
	for _, cell := range g.cells {
		if cell == o {
			n++
		}
	}
	return n
}
