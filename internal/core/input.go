package core

// Action is a navigation intent, abstracted from physical key presses.
type Action int

const (
	ActionNone          Action = iota
	ActionForward              // Right arrow, l - next move
	ActionBack                 // Left arrow, h - previous move
	ActionFastForward          // Page down, L - ten moves forward
	ActionFastBack             // Page up, H - ten moves back
	ActionFirst                // Home, g - first move
	ActionLast                 // End, G - last move
	ActionNextVariant          // v - cycle placement algorithm
	ActionScreenshot           // ctrl+s - save the screen as text
	ActionToggleHelp           // ? - full help
	ActionQuit                 // q, ctrl+c
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBack:
		return "Back"
	case ActionFastForward:
		return "FastForward"
	case ActionFastBack:
		return "FastBack"
	case ActionFirst:
		return "First"
	case ActionLast:
		return "Last"
	case ActionNextVariant:
		return "NextVariant"
	case ActionScreenshot:
		return "Screenshot"
	case ActionToggleHelp:
		return "ToggleHelp"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// SeekDelta returns how many moves a navigation action moves by, and
// whether it is a relative move at all.
func (a Action) SeekDelta() (int, bool) {
	switch a {
	case ActionForward:
		return 1, true
	case ActionBack:
		return -1, true
	case ActionFastForward:
		return 10, true
	case ActionFastBack:
		return -10, true
	}
	return 0, false
}
