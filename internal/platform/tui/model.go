package tui

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/replay"
)

// Viewer layout constants
const (
	cellAspect    = 2.0 // Terminal columns per row of height
	headerRows    = 3   // Title, status and bowl labels
	footerRows    = 1   // Status message
	minBowlRadius = 1.5 // Smallest bowl worth drawing, in rows
)

// viewerIDs numbers viewers so each tick chain reaches only its owner.
var viewerIDs atomic.Int64

// bowlGeometry places the two bowls on a screen. Radius and centers are in
// row units; a column is 1/cellAspect of a row.
type bowlGeometry struct {
	radius  float64
	centers [len(core.Kinds)]r2.Vec
}

// layoutBowls fits two bowls side by side into a w x h screen. It reports
// false when the screen is too small.
func layoutBowls(w, h int) (bowlGeometry, bool) {
	usable := float64(h - headerRows - footerRows)
	radius := min((float64(w)/4-2)/cellAspect, (usable-1)/2)
	if radius < minBowlRadius {
		return bowlGeometry{}, false
	}
	cy := float64(headerRows) + usable/2 - 0.5
	var g bowlGeometry
	g.radius = radius
	g.centers[core.Black] = r2.Vec{X: float64(w) / 4 / cellAspect, Y: cy}
	g.centers[core.White] = r2.Vec{X: 3 * float64(w) / 4 / cellAspect, Y: cy}
	return g, true
}

// ViewerOptions configures a viewer Model.
type ViewerOptions struct {
	Title         string
	Runtime       core.RuntimeConfig
	ScreenshotDir string
	AllowMenu     bool // Esc returns to the track menu instead of doing nothing
	NoScreenshots bool
	Logger        *log.Logger
}

// Model is the Bubble Tea model for replaying bowl layouts.
type Model struct {
	id         int64
	player     *replay.Player
	settler    *Settler
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       ViewerOptions
	keys       ViewerKeyMap
	help       help.Model
	geometry   bowlGeometry
	fits       bool
	status     string
	logger     *log.Logger
	quitting   bool
	backToMenu bool
}

// NewModel creates a viewer for player. Bowls are sized to the runtime
// screen size right away; the first move is computed on the first tick.
func NewModel(player *replay.Player, opts ViewerOptions) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		id:      viewerIDs.Add(1),
		player:  player,
		settler: NewSettler(cfg.TickRate, player.Orchestrator().Selection().SettleDuration),
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		opts:    opts,
		keys:    DefaultViewerKeyMap(),
		help:    help.New(),
		logger:  logger,
	}
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.id, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.opts.AllowMenu && key.Matches(msg, m.keys.Menu) {
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if delta, ok := action.SeekDelta(); ok {
		if delta > 0 {
			m.player.Forward(delta)
		} else {
			m.player.Back(-delta)
		}
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionFirst:
		m.player.First()
	case core.ActionLast:
		m.player.Last()
	case core.ActionNextVariant:
		m.nextVariant()
	case core.ActionScreenshot:
		if m.opts.NoScreenshots {
			m.status = "screenshots are disabled"
			break
		}
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
	case core.ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.config.ScreenW, m.config.ScreenH)
	}

	return m, nil
}

// handleTick applies the latest pending seek and advances the springs.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if frame, ok := m.player.Flush(); ok {
		m.syncSettler(frame, false)
		m.status = ""
	}
	m.settler.Step()
	return m, tickCmd(m.id, m.config.TickRate)
}

// nextVariant switches to the next placement algorithm. Every cached
// layout is dropped and the current move is laid out again.
func (m *Model) nextVariant() {
	sel := m.player.Orchestrator().Selection()
	next := sel.WithVariant(sel.Variant.Next())
	if err := m.player.SetSelection(next); err != nil {
		m.logger.Error("cannot switch algorithm", "variant", next.Variant, "error", err)
		m.status = err.Error()
		return
	}
	m.syncSettler(m.player.Frame(), false)
	m.status = "algorithm: " + next.Variant.Title()
}

// resize fits the screen and both bowls to a new terminal size. Layouts are
// rescaled from their normalized form, so nothing is recomputed, and the
// displayed tokens jump straight to their new places.
func (m *Model) resize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	screenH := max(h-m.helpHeight(), 1)
	m.screen.Resize(w, screenH)
	m.help.Width = w

	m.geometry, m.fits = layoutBowls(w, screenH)
	if m.fits {
		orch := m.player.Orchestrator()
		for _, k := range core.Kinds {
			orch.SetContainer(k, m.geometry.radius, m.geometry.centers[k])
		}
	}
	m.syncSettler(m.player.Refresh(), true)
}

// helpHeight returns how many rows the help view takes.
func (m Model) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	n := 0
	for _, col := range m.keys.FullHelp() {
		n = max(n, len(col))
	}
	return n
}

// syncSettler hands the positions of frame to the settler.
func (m *Model) syncSettler(f replay.Frame, snap bool) {
	for _, k := range core.Kinds {
		b := f.Bowl(k)
		m.settler.SetTargets(k, core.Positions(b.Tokens), rimSpawn(b.Container.Radius))
	}
	if snap {
		m.settler.Snap()
	}
}

// draw renders the viewer into the screen buffer.
func (m Model) draw() {
	s := m.screen
	s.Clear()
	full := core.NewRect(0, 0, s.Width(), s.Height())

	title := m.opts.Title
	if title == "" {
		title = "B O W L S"
	}
	s.DrawTextCentered(full, 0, title, core.ColorLabel)

	nav := m.player.Navigator()
	sel := m.player.Orchestrator().Selection()
	status := fmt.Sprintf("move %d/%d  |  %s", nav.Current(), max(nav.Len()-1, 0), sel.Variant.Title())
	s.DrawTextCentered(full, 1, status, core.ColorGray)

	if !m.fits {
		s.DrawTextCentered(full, s.Height()/2, "terminal too small", core.ColorAccent)
		return
	}

	frame := m.player.Frame()
	half := s.Width() / 2
	for _, k := range core.Kinds {
		c := m.geometry.centers[k]
		cx := c.X * cellAspect
		s.DrawCircle(cx, c.Y, m.geometry.radius+0.5, cellAspect, '·', core.ColorBowl)

		bowl := frame.Bowl(k)
		label := fmt.Sprintf("%s  %d", k, len(bowl.Tokens))
		if bowl.Cached {
			label += "  (cached)"
		}
		s.DrawTextCentered(core.NewRect(int(k)*half, 0, half, 1), 2, label, core.StoneColor(k))

		for _, p := range m.settler.Positions(k) {
			x := int(math.Round(cx + p.X*cellAspect))
			y := int(math.Round(c.Y + p.Y))
			s.Set(x, y, '●', core.StoneColor(k))
		}
	}

	if m.status != "" {
		s.DrawTextCentered(full, s.Height()-1, m.status, core.ColorAccent)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.draw()

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	nav := m.player.Navigator()
	sel := m.player.Orchestrator().Selection()
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("bowls_%s_move%03d_%s.txt", sel.Variant, nav.Current(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Player returns the player driven by the viewer.
func (m Model) Player() *replay.Player {
	return m.player
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user asked to go back to the track menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with a viewer for player.
func Run(player *replay.Player, opts ViewerOptions) error {
	p := tea.NewProgram(
		NewModel(player, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
