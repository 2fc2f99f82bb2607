package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/replay"
	"github.com/davemarvit/SGFPlayer-sub000/internal/track"
)

// ErrNoTracks is returned when a session is started without tracks.
var ErrNoTracks = errors.New("tui: no tracks to view")

// SessionConfig describes what a viewing session offers.
type SessionConfig struct {
	Tracks    []*track.Track
	Selection config.Selection
	Viewer    ViewerOptions
}

// SessionModel manages the session flow: track menu -> viewer -> menu.
// With a single track the menu is skipped. Each viewer gets its own
// orchestrator; the algorithm chosen in one carries over to the next.
type SessionModel struct {
	cfg      SessionConfig
	sel      config.Selection
	width    int
	height   int
	menu     MenuModel
	viewer   *Model
	logger   *log.Logger
	quitting bool
	err      error
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	logger := cfg.Viewer.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SessionModel{
		cfg:    cfg,
		sel:    cfg.Selection,
		width:  cfg.Viewer.Runtime.ScreenW,
		height: cfg.Viewer.Runtime.ScreenH,
		logger: logger,
	}
	m.menu = NewMenuModel(cfg.Tracks, 0, m.width, m.height)
	if len(cfg.Tracks) == 1 {
		if err := m.open(cfg.Tracks[0]); err != nil {
			m.err = err
		}
	}
	return m
}

// Init starts the viewer when the session opened straight into one.
func (m SessionModel) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	if m.viewer != nil {
		return m.viewer.Init()
	}
	return m.menu.Init()
}

// Err returns the error that prevented the session from starting.
func (m SessionModel) Err() error {
	return m.err
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.viewer != nil {
		return m.updateViewer(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		if err := m.open(selected); err != nil {
			m.logger.Error("cannot open track", "track", selected.Name, "error", err)
			m.menu = NewMenuModel(m.cfg.Tracks, m.menu.Cursor(), m.width, m.height)
			return m, nil
		}
		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates when a viewer is open.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(Model); ok {
		m.viewer = &viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.viewer.BackToMenu() {
		m.sel = m.viewer.Player().Orchestrator().Selection()
		m.viewer = nil
		m.menu = NewMenuModel(m.cfg.Tracks, m.menu.Cursor(), m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// open starts a viewer on t. The caller runs its Init.
func (m *SessionModel) open(t *track.Track) error {
	orch, err := replay.New(t.Fingerprint, m.sel, replay.WithLogger(m.logger))
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	opts := m.cfg.Viewer
	opts.Title = t.Name
	opts.AllowMenu = len(m.cfg.Tracks) > 1
	opts.Runtime.ScreenW = m.width
	opts.Runtime.ScreenH = m.height
	opts.Runtime.Fingerprint = t.Fingerprint
	opts.Logger = m.logger.With("track", t.Name)

	viewer := NewModel(replay.NewPlayer(orch, t), opts)
	m.viewer = &viewer
	m.logger.Debug("track opened", "track", t.Name, "variant", m.sel.Variant)
	return nil
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.viewer != nil {
		return m.viewer.View()
	}
	return m.menu.View()
}

// RunSession runs a session in the local terminal.
func RunSession(cfg SessionConfig) error {
	if len(cfg.Tracks) == 0 {
		return ErrNoTracks
	}
	session := NewSessionModel(cfg)
	if err := session.Err(); err != nil {
		return err
	}
	p := tea.NewProgram(
		session,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
