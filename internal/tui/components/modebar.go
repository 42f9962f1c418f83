package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

// ModeTab is one selectable mode in the header.
type ModeTab struct {
	Name string
	Mode model.Mode
	Key  rune
}

// ModeTabs lists the modes in header order.
var ModeTabs = []ModeTab{
	{Name: "General", Mode: model.ModeGeneral, Key: 'g'},
	{Name: "Personal", Mode: model.ModePersonal, Key: 'p'},
}

// RenderModeBar renders the mode selector with the active mode highlighted.
// The shortcut is shown in brackets after each name.
func RenderModeBar(active model.Mode) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	parts := make([]string, 0, len(ModeTabs))
	for _, tab := range ModeTabs {
		label := tab.Name + dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		if tab.Mode == active {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, inactiveStyle.Render(label))
	}
	return strings.Join(parts, " ")
}

// ModeByKey returns the mode bound to key, or ModeNone.
func ModeByKey(key rune) model.Mode {
	for _, tab := range ModeTabs {
		if tab.Key == key {
			return tab.Mode
		}
	}
	return model.ModeNone
}
