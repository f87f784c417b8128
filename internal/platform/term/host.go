// Package term hosts the snake board directly on a tcell screen.
// Unlike the Bubble Tea frontend it writes changed cells straight to the
// terminal, so an incremental repaint costs only the cells the board reports.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const cellRune = '█'

func init() {
	registry.Register("tcell", func() registry.Frontend { return frontend{} })
}

type frontend struct{}

func (frontend) Name() string { return "tcell" }

func (frontend) Description() string {
	return "Direct tcell renderer that repaints only changed cells"
}

func (frontend) Run(ctx context.Context, b *snake.Board, cfg core.RuntimeConfig, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: cannot init screen: %w", err)
	}
	defer screen.Fini()

	return NewHost(screen, b, cfg, logger).Run(ctx)
}

// colorStyles maps core.Color to tcell styles.
var colorStyles = map[core.Color]tcell.Style{
	core.ColorDefault:     tcell.StyleDefault,
	core.ColorRed:         tcell.StyleDefault.Foreground(tcell.ColorMaroon),
	core.ColorGreen:       tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:      tcell.StyleDefault.Foreground(tcell.ColorOlive),
	core.ColorWhite:       tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorBrightRed:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	core.ColorBrightGreen: tcell.StyleDefault.Foreground(tcell.ColorLime),
	core.ColorGray:        tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// Host drives one board on a tcell screen. All board calls happen on the
// goroutine running Run; a helper goroutine only forwards terminal events.
type Host struct {
	screen tcell.Screen
	board  *snake.Board
	config core.RuntimeConfig
	logger *log.Logger
}

// NewHost creates a host. The screen must already be initialized.
func NewHost(screen tcell.Screen, b *snake.Board, cfg core.RuntimeConfig, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	return &Host{
		screen: screen,
		board:  b,
		config: cfg,
		logger: logger,
	}
}

// Run ticks the board at the configured rate and handles keys until the
// player quits or ctx is cancelled. Ticking stops at game over but the final
// frame stays up until the player quits.
func (h *Host) Run(ctx context.Context) error {
	// Cancelled on every return so the forwarder never blocks on a full channel.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go forwardEvents(ctx, h.screen.PollEvent, events)

	ticker := time.NewTicker(time.Second / time.Duration(max(1, h.config.TickRate)))
	defer ticker.Stop()
	tick := ticker.C

	h.repaint(true)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}

		case <-tick:
			h.step()
			if h.board.GameOver() {
				tick = nil
			}
		}
	}
}

// forwardEvents copies events from poll to out until poll returns nil
// (screen finalized) or ctx is done.
func forwardEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// step advances the board by one tick and shows the changed cells.
func (h *Host) step() {
	if h.board.GameOver() {
		return
	}
	h.board.OnTick()
	h.repaint(false)
}

// handleEvent reacts to one terminal event. Returns false when the player quits.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.apply(mapKey(ev.Key(), ev.Rune()))

	case *tcell.EventResize:
		h.screen.Sync()
		h.repaint(true)
	}
	return true
}

// apply performs a mapped action. Returns false for ActionQuit.
func (h *Host) apply(a core.Action) bool {
	switch a {
	case core.ActionQuit:
		return false
	case core.ActionRepaint:
		h.repaint(true)
	case core.ActionNone:
	default:
		h.board.OnKey(a)
	}
	return true
}

// repaint draws board cells, the border on full repaints, and the status line.
func (h *Host) repaint(full bool) {
	if full {
		h.screen.Clear()
		w, hgt := h.config.ScreenSize()
		h.drawBox(w, hgt)
	}

	h.board.OnRepaint(full, func(c core.Coord, color core.Color) {
		r := cellRune
		if color == core.ColorDefault {
			r = ' '
		}
		style, ok := colorStyles[color]
		if !ok {
			style = tcell.StyleDefault
		}
		x, y := h.config.CellOrigin(c)
		for i := range max(1, h.config.CellSize) {
			h.screen.SetContent(x+i, y, r, nil, style)
		}
	})

	h.drawStatus()
	h.screen.Show()
}

// drawBox outlines the grid.
func (h *Host) drawBox(w, hgt int) {
	style := colorStyles[core.ColorGray]
	for x := 1; x < w-1; x++ {
		h.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		h.screen.SetContent(x, hgt-1, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < hgt-1; y++ {
		h.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		h.screen.SetContent(w-1, y, tcell.RuneVLine, nil, style)
	}
	h.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	h.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, style)
	h.screen.SetContent(0, hgt-1, tcell.RuneLLCorner, nil, style)
	h.screen.SetContent(w-1, hgt-1, tcell.RuneLRCorner, nil, style)
}

// drawStatus writes the line under the grid, padded to the grid width.
func (h *Host) drawStatus() {
	s := h.board.Snapshot()
	text := fmt.Sprintf("length %d  heading %s  tick %d", s.SnakeLen, s.Dir, s.Tick)
	style := colorStyles[core.ColorGray]
	if s.State == snake.StateGameOver {
		text = fmt.Sprintf("GAME OVER  length %d  (q to quit)", s.SnakeLen)
		style = colorStyles[core.ColorBrightRed].Bold(true)
	}

	w, hgt := h.config.ScreenSize()
	x := 0
	for _, r := range text {
		h.screen.SetContent(x, hgt, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		h.screen.SetContent(x, hgt, ' ', nil, tcell.StyleDefault)
	}
}

// mapKey translates a tcell key into a board action.
func mapKey(key tcell.Key, r rune) core.Action {
	switch key {
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyCtrlL:
		return core.ActionRepaint
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch r {
		case 'w', 'k':
			return core.ActionUp
		case 's', 'j':
			return core.ActionDown
		case 'a', 'h':
			return core.ActionLeft
		case 'd', 'l':
			return core.ActionRight
		case 'q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}
