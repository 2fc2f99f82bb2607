package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorBlackStone: lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Bold(true),
	core.ColorWhiteStone: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	core.ColorBowl:       lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
	core.ColorLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorAccent:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color are rendered as one run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
