package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the observable board state for determinism testing and debugging.
type Snapshot struct {
	Tick     uint64
	State    State
	SnakeLen int
	Head     core.Coord
	Dir      core.Direction
	Food     core.Coord
	Pending  int // Cells waiting for an incremental repaint
}

// Snapshot returns the current board snapshot.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Tick:     b.ticks,
		State:    b.state,
		SnakeLen: b.body.Len(),
		Head:     b.body.Head(),
		Dir:      b.body.Direction(),
		Food:     b.food,
		Pending:  len(b.dirty),
	}
}

// DebugState returns a string representation of the board state.
func (b *Board) DebugState() string {
	s := b.Snapshot()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tick: %d, State: %s\n", s.Tick, s.State)
	fmt.Fprintf(&sb, "Snake len: %d, Direction: %s\n", s.SnakeLen, s.Dir)
	fmt.Fprintf(&sb, "Head: %v, Food: %v\n", s.Head, s.Food)
	return sb.String()
}
