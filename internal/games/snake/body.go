package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Body is the snake itself: an ordered run of orthogonally adjacent cells plus
// the current heading.
//
// Cells are stored tail first, so growing at the head is an append and dropping
// the tail is a reslice. A Body always holds at least one cell.
type Body struct {
	cells []core.Coord // tail at index 0, head at len-1
	dir   core.Direction
}

// NewBody lays out a horizontal snake of the given length with its head at head,
// trailing to the left and heading right.
// Panics if length < 1.
func NewBody(head core.Coord, length int) *Body {
	if length < 1 {
		panic(fmt.Sprintf("snake: body length %d, must be at least 1", length))
	}

	dir := core.DirRight
	back := dir.Opposite().Unit()

	cells := make([]core.Coord, 0, length)
	for i := length - 1; i >= 0; i-- {
		cells = append(cells, head.Add(back.Scale(i)))
	}

	return &Body{
		cells: cells,
		dir:   dir,
	}
}

// Head returns the head cell.
func (b *Body) Head() core.Coord {
	return b.cells[len(b.cells)-1]
}

// Tail returns the last cell.
func (b *Body) Tail() core.Coord {
	return b.cells[0]
}

// Len returns the number of cells in the body.
func (b *Body) Len() int {
	return len(b.cells)
}

// Direction returns the current heading.
func (b *Body) Direction() core.Direction {
	return b.dir
}

// Cells returns a copy of the body, head first.
func (b *Body) Cells() []core.Coord {
	out := make([]core.Coord, len(b.cells))
	for i, c := range b.cells {
		out[len(b.cells)-1-i] = c
	}
	return out
}

// Contains reports whether any body cell equals c.
func (b *Body) Contains(c core.Coord) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// NextHead returns the cell the head would move into this tick.
func (b *Body) NextHead() core.Coord {
	return b.Head().Add(b.dir.Unit())
}

// Advance moves the snake one cell forward.
// When growing is false the tail cell is dropped and returned with removed=true.
// The caller must have already checked that NextHead is a legal move.
func (b *Body) Advance(growing bool) (head, tail core.Coord, removed bool) {
	head = b.NextHead()
	b.cells = append(b.cells, head)

	if growing {
		return head, core.Coord{}, false
	}

	tail = b.cells[0]
	b.cells = b.cells[1:]
	return head, tail, true
}

// TryTurn changes the heading unless d would send the head straight back into
// the second cell. Returns whether the turn was accepted.
func (b *Body) TryTurn(d core.Direction) bool {
	if n := len(b.cells); n >= 2 {
		neck := b.cells[n-2]
		if neck.Sub(b.Head()) == d.Unit() {
			return false
		}
	}
	b.dir = d
	return true
}
