package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Colors used by the viewer.
const (
	ColorDefault Color = iota
	ColorBlackStone
	ColorWhiteStone
	ColorBowl
	ColorLabel
	ColorAccent
	ColorGray
)

// StoneColor returns the color tokens of kind k are drawn with.
func StoneColor(k Kind) Color {
	if k == White {
		return ColorWhiteStone
	}
	return ColorBlackStone
}
