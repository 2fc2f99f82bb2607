package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// ViewerKeyMap defines the key bindings of the bowl viewer.
type ViewerKeyMap struct {
	Forward     key.Binding
	Back        key.Binding
	FastForward key.Binding
	FastBack    key.Binding
	First       key.Binding
	Last        key.Binding
	NextVariant key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Menu        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Back, k.NextVariant, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.FastForward, k.FastBack},
		{k.First, k.Last, k.NextVariant, k.Screenshot},
		{k.Menu, k.Help, k.Quit},
	}
}

// DefaultViewerKeyMap returns default key bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next move"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev move"),
		),
		FastForward: key.NewBinding(
			key.WithKeys("pgdown", "L"),
			key.WithHelp("pgdn/L", "+10 moves"),
		),
		FastBack: key.NewBinding(
			key.WithKeys("pgup", "H"),
			key.WithHelp("pgup/H", "-10 moves"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first move"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last move"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "next algorithm"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "tracks"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a viewer action.
// The menu key is not an action; callers check it separately.
func (k ViewerKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.FastForward):
		return core.ActionFastForward
	case key.Matches(msg, k.FastBack):
		return core.ActionFastBack
	case key.Matches(msg, k.First):
		return core.ActionFirst
	case key.Matches(msg, k.Last):
		return core.ActionLast
	case key.Matches(msg, k.NextVariant):
		return core.ActionNextVariant
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	case key.Matches(msg, k.Help):
		return core.ActionToggleHelp
	}
	return core.ActionNone
}
