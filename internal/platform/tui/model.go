package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// cellRune fills occupied cells; empty cells are painted as spaces.
const cellRune = '█'

func init() {
	registry.Register("tea", func() registry.Frontend { return frontend{} })
}

// frontend registers the Bubble Tea host.
type frontend struct{}

func (frontend) Name() string { return "tea" }

func (frontend) Description() string {
	return "Bubble Tea renderer with lipgloss colors and a key help line"
}

func (frontend) Run(ctx context.Context, b *snake.Board, cfg core.RuntimeConfig, logger *log.Logger) error {
	return Run(ctx, b, cfg, logger)
}

// Model is the Bubble Tea model hosting one board.
// Every board call happens inside Update, so the board is only touched from
// the Bubble Tea event loop.
type Model struct {
	board    *snake.Board
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	quitting bool
}

// NewModel creates a model for the board and paints every cell once.
func NewModel(b *snake.Board, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}

	w, h := cfg.ScreenSize()
	m := Model{
		board:  b,
		screen: core.NewScreen(w, h+1), // grid box plus status line
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
	}
	m.screen.DrawBox(core.NewRect(0, 0, w, h))
	m.paint(true)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.paint(true)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRepaint:
		m.paint(true)
	case core.ActionNone:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Screenshot):
			m.saveScreenshot()
		}
	default:
		m.board.OnKey(action)
	}

	return m, nil
}

// handleTick advances the board and paints the changed cells.
// Ticking stops once the game is over; the final frame stays on screen.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.board.GameOver() {
		return m, nil
	}

	m.board.OnTick()
	m.paint(false)

	if m.board.GameOver() {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// paint copies board cells into the screen buffer.
func (m Model) paint(full bool) {
	m.board.OnRepaint(full, func(c core.Coord, color core.Color) {
		r := cellRune
		if color == core.ColorDefault {
			r = ' '
		}
		x, y := m.config.CellOrigin(c)
		for i := range max(1, m.config.CellSize) {
			m.screen.SetCell(x+i, y, core.Cell{Rune: r, Color: color})
		}
	})
	m.drawStatus()
}

// saveScreenshot saves the current screen to ~/.snake/screenshots.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// drawStatus writes the line under the grid into the screen buffer, so
// screenshots carry it too.
func (m Model) drawStatus() {
	s := m.board.Snapshot()
	text := fmt.Sprintf("length %d  heading %s  tick %d", s.SnakeLen, s.Dir, s.Tick)
	color := core.ColorGray
	if s.State == snake.StateGameOver {
		text = fmt.Sprintf("GAME OVER  length %d  (q to quit)", s.SnakeLen)
		color = core.ColorBrightRed
	}

	y := m.screen.Height() - 1
	m.screen.DrawText(0, y, strings.Repeat(" ", m.screen.Width()))
	m.screen.DrawColorText(0, y, text, color)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Run starts the Bubble Tea program and blocks until the player quits or
// ctx is cancelled. Cancellation is not an error.
func Run(ctx context.Context, b *snake.Board, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(b, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
