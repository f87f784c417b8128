package snake

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// newTestBoard builds a board with a hand-placed snake and food.
func newTestBoard(w, h int, dir core.Direction, food core.Coord, headFirst ...core.Coord) *Board {
	cfg := core.RuntimeConfig{
		GridW:         w,
		GridH:         h,
		CellSize:      1,
		InitialLength: len(headFirst),
		TickRate:      10,
		Seed:          7,
	}
	b := &Board{
		cfg:    cfg,
		grid:   NewGrid(w, h),
		body:   bodyOf(dir, headFirst...),
		food:   food,
		state:  StatePlaying,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: log.New(io.Discard),
	}
	for _, c := range headFirst {
		b.grid.Set(c, CellSnake)
	}
	b.grid.Set(food, CellFood)
	return b
}

// collect returns the cells drawn by one OnRepaint call.
func collect(b *Board, full bool) map[core.Coord]core.Color {
	drawn := make(map[core.Coord]core.Color)
	b.OnRepaint(full, func(c core.Coord, color core.Color) {
		drawn[c] = color
	})
	return drawn
}

// checkInvariants verifies the grid/body/food consistency rules.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()

	cells := b.body.Cells()
	seen := make(map[core.Coord]bool, len(cells))
	for i, c := range cells {
		if i > 0 && !cells[i-1].Adjacent(c) {
			t.Fatalf("tick %d: body cells %v and %v are not adjacent", b.ticks, cells[i-1], c)
		}
		if b.state == StatePlaying && seen[c] {
			t.Fatalf("tick %d: duplicate body cell %v", b.ticks, c)
		}
		seen[c] = true
		if b.grid.At(c) != CellSnake {
			t.Fatalf("tick %d: body cell %v marked %s", b.ticks, c, b.grid.At(c))
		}
	}

	if seen[b.food] {
		t.Fatalf("tick %d: food %v is on the snake", b.ticks, b.food)
	}
	if b.grid.At(b.food) != CellFood {
		t.Fatalf("tick %d: food cell %v marked %s", b.ticks, b.food, b.grid.At(b.food))
	}
	if got := b.grid.Count(CellSnake); got != len(cells) {
		t.Fatalf("tick %d: %d snake cells on grid, body has %d", b.ticks, got, len(cells))
	}
	if got := b.grid.Count(CellFood); got != 1 {
		t.Fatalf("tick %d: %d food cells on grid, expected 1", b.ticks, got)
	}
}

func TestNewBoardInitialLayout(t *testing.T) {
	cfg := core.RuntimeConfig{GridW: 90, GridH: 75, CellSize: 10, InitialLength: 10, TickRate: 30, Seed: 1}
	b := NewBoard(cfg)

	if b.State() != StatePlaying {
		t.Fatalf("State() = %s, expected playing", b.State())
	}
	if b.Body().Head() != core.C(9, 37) {
		t.Errorf("head = %v, expected (9,37)", b.Body().Head())
	}
	if b.Body().Len() != 10 {
		t.Errorf("length = %d, expected 10", b.Body().Len())
	}
	checkInvariants(t, b)

	// Every initial write is pending: ten body cells and the food.
	if got := len(collect(b, false)); got != 11 {
		t.Errorf("initial incremental repaint drew %d cells, expected 11", got)
	}
}

func TestNewBoardPanicsOnOversizedSnake(t *testing.T) {
	tests := []core.RuntimeConfig{
		{GridW: 5, GridH: 5, InitialLength: 6},
		{GridW: 3, GridH: 1, InitialLength: 3},
		{GridW: 0, GridH: 5, InitialLength: 1},
		{GridW: 5, GridH: 5, InitialLength: 0},
	}

	for _, cfg := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewBoard(%+v) should panic", cfg)
				}
			}()
			NewBoard(cfg)
		}()
	}
}

func TestEatScenario(t *testing.T) {
	b := newTestBoard(5, 5, core.DirRight, core.C(3, 2),
		core.C(2, 2), core.C(1, 2), core.C(0, 2))

	if fate := b.resolveFate(); fate != FateEat {
		t.Fatalf("resolveFate() = %s, expected eat", fate)
	}

	b.OnTick()

	if b.Body().Head() != core.C(3, 2) {
		t.Errorf("head = %v, expected (3,2)", b.Body().Head())
	}
	if b.Body().Len() != 4 {
		t.Errorf("length = %d, expected 4", b.Body().Len())
	}
	if !b.Body().Contains(core.C(0, 2)) {
		t.Error("tail (0,2) should not be vacated on eat")
	}
	for _, c := range []core.Coord{core.C(3, 2), core.C(2, 2), core.C(1, 2), core.C(0, 2)} {
		if b.Food() == c {
			t.Errorf("new food placed on snake cell %v", c)
		}
	}
	checkInvariants(t, b)
}

func TestMoveScenario(t *testing.T) {
	b := newTestBoard(5, 5, core.DirRight, core.C(0, 0),
		core.C(2, 2), core.C(1, 2), core.C(0, 2))

	b.OnTick()

	if b.Body().Len() != 3 {
		t.Errorf("length = %d, expected 3", b.Body().Len())
	}
	if b.Occupancy(core.C(0, 2)) != CellEmpty {
		t.Errorf("vacated tail is %s, expected empty", b.Occupancy(core.C(0, 2)))
	}

	drawn := collect(b, false)
	if len(drawn) != 2 {
		t.Fatalf("incremental repaint drew %d cells, expected 2", len(drawn))
	}
	if drawn[core.C(3, 2)] != CellSnake.Color() {
		t.Errorf("new head drawn as %v, expected snake color", drawn[core.C(3, 2)])
	}
	if drawn[core.C(0, 2)] != CellEmpty.Color() {
		t.Errorf("old tail drawn as %v, expected empty color", drawn[core.C(0, 2)])
	}
	checkInvariants(t, b)
}

func TestWallDeathScenario(t *testing.T) {
	b := newTestBoard(5, 5, core.DirLeft, core.C(4, 4),
		core.C(0, 0), core.C(1, 0))

	if next := b.Body().NextHead(); next != core.C(-1, 0) {
		t.Fatalf("NextHead() = %v, expected (-1,0)", next)
	}
	if fate := b.resolveFate(); fate != FateDie {
		t.Fatalf("resolveFate() = %s, expected die", fate)
	}

	b.OnTick()

	if b.State() != StateGameOver {
		t.Fatalf("State() = %s, expected game_over", b.State())
	}
	if b.Body().Head() != core.C(0, 0) {
		t.Errorf("fatal tick should not move the snake, head = %v", b.Body().Head())
	}
}

func TestSelfCollisionDeath(t *testing.T) {
	// Head at (1,1) turning into its own body at (2,1).
	b := newTestBoard(5, 5, core.DirRight, core.C(4, 4),
		core.C(1, 1), core.C(1, 2), core.C(2, 2), core.C(3, 2), core.C(3, 1), core.C(2, 1), core.C(2, 0))

	b.OnTick()

	if !b.GameOver() {
		t.Error("moving into the body should end the game")
	}
}

func TestMovingIntoTailIsFatal(t *testing.T) {
	// The tail has not moved yet when fate is resolved, so chasing it is death.
	b := newTestBoard(5, 5, core.DirRight, core.C(4, 4),
		core.C(1, 1), core.C(1, 2), core.C(2, 2), core.C(2, 1))

	if fate := b.resolveFate(); fate != FateDie {
		t.Errorf("resolveFate() = %s, expected die", fate)
	}
}

func TestReverseSteeringIgnored(t *testing.T) {
	b := newTestBoard(5, 5, core.DirRight, core.C(0, 0),
		core.C(2, 2), core.C(1, 2))

	b.OnKey(core.ActionLeft)
	if b.Body().Direction() != core.DirRight {
		t.Fatalf("direction = %s, expected right", b.Body().Direction())
	}

	b.OnTick()
	if b.Body().Head() != core.C(3, 2) {
		t.Errorf("head = %v, expected (3,2)", b.Body().Head())
	}
}

func TestSteeringAppliedBeforeTick(t *testing.T) {
	b := newTestBoard(5, 5, core.DirRight, core.C(0, 0),
		core.C(2, 2), core.C(1, 2))

	b.OnKey(core.ActionUp)
	b.OnTick()

	if b.Body().Head() != core.C(2, 1) {
		t.Errorf("head = %v, expected (2,1)", b.Body().Head())
	}
}

func TestUnknownActionIgnored(t *testing.T) {
	b := newTestBoard(5, 5, core.DirRight, core.C(0, 0),
		core.C(2, 2), core.C(1, 2))

	b.OnKey(core.ActionNone)
	b.OnKey(core.ActionRepaint)

	if b.Body().Direction() != core.DirRight {
		t.Errorf("direction = %s, expected right", b.Body().Direction())
	}
}

func TestGameOverFreezesBoard(t *testing.T) {
	b := newTestBoard(5, 5, core.DirLeft, core.C(4, 4),
		core.C(0, 0), core.C(1, 0))
	b.OnTick()
	collect(b, false)

	before := b.Snapshot()
	b.OnKey(core.ActionDown)
	b.OnTick()
	b.OnTick()
	after := b.Snapshot()

	if before != after {
		t.Errorf("board changed after game over: %+v -> %+v", before, after)
	}
	if got := len(collect(b, true)); got != 25 {
		t.Errorf("full repaint after game over drew %d cells, expected 25", got)
	}
}

func TestIncrementalRepaintDrains(t *testing.T) {
	b := newTestBoard(5, 5, core.DirRight, core.C(0, 0),
		core.C(2, 2), core.C(1, 2))
	b.OnTick()

	if got := len(collect(b, false)); got == 0 {
		t.Fatal("first incremental repaint after a tick should draw something")
	}
	if got := len(collect(b, false)); got != 0 {
		t.Errorf("second incremental repaint drew %d cells, expected 0", got)
	}
}

func TestFullRepaintCoversGridAndDrains(t *testing.T) {
	b := NewBoard(core.RuntimeConfig{GridW: 7, GridH: 4, InitialLength: 3, Seed: 3})

	drawn := collect(b, true)
	if len(drawn) != 28 {
		t.Fatalf("full repaint drew %d cells, expected 28", len(drawn))
	}
	if drawn[b.Food()] != CellFood.Color() {
		t.Errorf("food drawn as %v", drawn[b.Food()])
	}
	if got := len(collect(b, false)); got != 0 {
		t.Errorf("incremental repaint after full drew %d cells, expected 0", got)
	}
}

func TestFoodNeverOnSnake(t *testing.T) {
	// 3x1 grid with a length-2 snake leaves exactly one free cell.
	for seed := int64(1); seed <= 50; seed++ {
		b := NewBoard(core.RuntimeConfig{GridW: 3, GridH: 1, InitialLength: 2, Seed: seed})
		if b.Food() != core.C(2, 0) {
			t.Fatalf("seed %d: food at %v, expected (2,0)", seed, b.Food())
		}
	}

	b := NewBoard(core.RuntimeConfig{GridW: 10, GridH: 10, InitialLength: 4, Seed: 99})
	for i := 0; i < 200; i++ {
		b.renewFood()
		if b.Body().Contains(b.Food()) {
			t.Fatalf("food spawned on snake at %v", b.Food())
		}
		if !b.grid.InBounds(b.Food()) {
			t.Fatalf("food spawned out of bounds at %v", b.Food())
		}
	}
}

func TestEatGrowsMoveShifts(t *testing.T) {
	b := newTestBoard(6, 3, core.DirRight, core.C(3, 1),
		core.C(2, 1), core.C(1, 1), core.C(0, 1))

	lenBefore := b.Body().Len()
	tailBefore := b.Body().Tail()
	b.OnTick() // eat
	if b.Body().Len() != lenBefore+1 || b.Body().Tail() != tailBefore {
		t.Fatalf("eat: len %d->%d, tail %v->%v", lenBefore, b.Body().Len(), tailBefore, b.Body().Tail())
	}
	collect(b, false)

	// Put food out of the way so the next tick is a plain move.
	b.grid.Set(b.food, CellEmpty)
	b.food = core.C(0, 0)
	b.grid.Set(b.food, CellFood)

	lenBefore = b.Body().Len()
	tailBefore = b.Body().Tail()
	b.OnTick() // move
	if b.Body().Len() != lenBefore {
		t.Errorf("move: length changed %d->%d", lenBefore, b.Body().Len())
	}
	if b.Body().Contains(tailBefore) || b.Occupancy(tailBefore) != CellEmpty {
		t.Errorf("move: tail %v not vacated", tailBefore)
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionNone}

	for seed := int64(1); seed <= 20; seed++ {
		b := NewBoard(core.RuntimeConfig{GridW: 12, GridH: 9, InitialLength: 4, Seed: seed})
		steer := rand.New(rand.NewSource(seed * 31))
		checkInvariants(t, b)

		for i := 0; i < 500 && !b.GameOver(); i++ {
			if steer.Intn(3) == 0 {
				b.OnKey(actions[steer.Intn(len(actions))])
			}
			lenBefore := b.Body().Len()
			b.OnTick()
			if b.GameOver() {
				break
			}
			if d := b.Body().Len() - lenBefore; d != 0 && d != 1 {
				t.Fatalf("seed %d: length changed by %d in one tick", seed, d)
			}
			checkInvariants(t, b)
		}
	}
}

func TestIncrementalRepaintMatchesGrid(t *testing.T) {
	cfg := core.RuntimeConfig{GridW: 10, GridH: 8, InitialLength: 3, Seed: 5}
	b := NewBoard(cfg)

	// Mirror the board only through repaints; the mirror must never drift.
	mirror := make(map[core.Coord]core.Color)
	paint := func(c core.Coord, color core.Color) { mirror[c] = color }
	b.OnRepaint(true, paint)

	dirs := []core.Action{core.ActionDown, core.ActionRight, core.ActionUp, core.ActionRight}
	for i := 0; i < 60 && !b.GameOver(); i++ {
		if i%4 == 0 {
			b.OnKey(dirs[(i/4)%len(dirs)])
		}
		b.OnTick()
		b.OnRepaint(false, paint)

		for y := 0; y < cfg.GridH; y++ {
			for x := 0; x < cfg.GridW; x++ {
				c := core.C(x, y)
				if mirror[c] != b.Occupancy(c).Color() {
					t.Fatalf("tick %d: mirror at %v is %v, grid says %s", b.Ticks(), c, mirror[c], b.Occupancy(c))
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{GridW: 20, GridH: 15, InitialLength: 5, Seed: 12345}

	b1 := NewBoard(cfg)
	b2 := NewBoard(cfg)

	for i := 0; i < 100; i++ {
		var a core.Action
		switch i {
		case 3:
			a = core.ActionDown
		case 8:
			a = core.ActionRight
		case 12:
			a = core.ActionUp
		}
		b1.OnKey(a)
		b2.OnKey(a)
		b1.OnTick()
		b2.OnTick()
	}

	if b1.Snapshot() != b2.Snapshot() {
		t.Errorf("snapshots differ: %+v vs %+v", b1.Snapshot(), b2.Snapshot())
	}
}

func TestDebugState(t *testing.T) {
	b := NewBoard(core.RuntimeConfig{GridW: 10, GridH: 10, InitialLength: 3, Seed: 1})
	if b.DebugState() == "" {
		t.Error("DebugState() should not be empty")
	}
}

func TestFillingBoardEndsGame(t *testing.T) {
	// 3x1 grid, snake fills two cells, food on the last one.
	b := newTestBoard(3, 1, core.DirRight, core.C(2, 0), core.C(1, 0), core.C(0, 0))

	b.OnTick()

	if !b.GameOver() {
		t.Fatal("eating the last free cell should end the game")
	}
	if b.Body().Len() != 3 {
		t.Errorf("length = %d, expected 3", b.Body().Len())
	}
	if b.grid.Count(CellFood) != 0 {
		t.Error("no food should remain on a full board")
	}
}
