package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
	"github.com/davemarvit/SGFPlayer-sub000/internal/storage"
)

// Runs board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the algorithm sidebar
	sidebarWidth       = 22  // Width of the algorithm sidebar
	maxRuns            = 500 // Max runs to load
)

// RunSource is where the board reads recorded runs from.
type RunSource interface {
	RecentRuns(limit int) ([]storage.Run, error)
	Summaries(track string) ([]storage.VariantSummary, error)
}

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextVariant, k.PrevVariant, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextVariant, k.PrevVariant, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next algorithm"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev algorithm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded layout runs,
// one algorithm at a time.
type RunsModel struct {
	source      RunSource
	cursor      int // Index into placement.Variants
	runs        []storage.Run
	summaries   map[string]storage.VariantSummary
	visible     []storage.Run
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewRunsModel creates a runs board and loads the runs from source.
func NewRunsModel(source RunSource, width, height int) RunsModel {
	m := RunsModel{
		source:      source,
		keys:        DefaultRunsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	m.filter()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Move", Width: 5},
		{Title: "Kind", Width: 6},
		{Title: "Tokens", Width: 6},
		{Title: "Iter", Width: 5},
		{Title: "Sep", Width: 5},
		{Title: "Ovl", Width: 4},
		{Title: "Time", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and per-variant summaries from the source.
func (m *RunsModel) load() {
	m.runs, m.summaries, m.loadErr = nil, map[string]storage.VariantSummary{}, nil
	if m.source == nil {
		return
	}

	runs, err := m.source.RecentRuns(maxRuns)
	if err != nil {
		m.loadErr = err
		return
	}
	sums, err := m.source.Summaries("")
	if err != nil {
		m.loadErr = err
		return
	}
	m.runs = runs
	for _, s := range sums {
		m.summaries[s.Variant] = s
	}
}

// variant returns the algorithm under the cursor.
func (m RunsModel) variant() placement.Variant {
	return placement.Variants[m.cursor]
}

// filter selects the runs of the current algorithm and refreshes the table.
func (m *RunsModel) filter() {
	name := m.variant().String()
	m.visible = m.visible[:0]
	for _, r := range m.runs {
		if r.Variant == name {
			m.visible = append(m.visible, r)
		}
	}

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Move),
			r.Kind,
			fmt.Sprintf("%d", r.Tokens),
			fmt.Sprintf("%d", r.Iterations),
			fmt.Sprintf("%.2f", r.MinSeparation),
			fmt.Sprintf("%d", r.Overlaps),
			r.Duration.String(),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the runs board.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextVariant):
			m.cursor = (m.cursor + 1) % len(placement.Variants)
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			m.cursor = (m.cursor + len(placement.Variants) - 1) % len(placement.Variants)
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.filter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("LAYOUT RUNS - %s", m.variant().Title())
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(summaryStyle.Render(centerText(m.summaryLine(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summaryLine describes every recorded run of the current algorithm.
func (m RunsModel) summaryLine() string {
	s, ok := m.summaries[m.variant().String()]
	if !ok {
		return "no runs"
	}
	return fmt.Sprintf("%d runs  |  %.0f%% converged  |  avg %.1f iterations  |  avg sep %.2f  |  %d overlaps  |  avg %s",
		s.Runs, s.ConvergedRatio*100, s.AvgIterations, s.AvgSeparation, s.TotalOverlaps, s.AvgDuration)
}

// renderWideLayout renders the board with a sidebar listing the algorithms.
func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Algorithms\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range placement.Variants {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.Title()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with algorithm tabs above the table.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(placement.Variants))
	for i, v := range placement.Variants {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(v.String())
		} else {
			tabs[i] = tabStyle.Render(" " + v.String() + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.variant())
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not read runs:\n" + m.loadErr.Error())
	}
	if len(m.visible) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nRun `bowls bench` to record some!")
	}

	return m.table.View()
}

// Visible returns the runs shown for the current algorithm.
func (m RunsModel) Visible() []storage.Run {
	return m.visible
}

// RunBoard runs the runs board in the local terminal.
func RunBoard(source RunSource, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
