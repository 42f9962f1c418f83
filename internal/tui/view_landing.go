package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/tui/components"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

func (a App) renderLanding(cw, h int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Background).
		Bold(true)
	subStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	hero := titleStyle.Render("Your financial advisor in the terminal") + "\n" +
		subStyle.Render("Pick a mode to start. You can switch at any time.")

	general := "Ask anything about budgeting, saving or investing.\n\n" +
		"Press " + keyStyle.Render("g") + " to start."
	personal := "Enter your monthly figures for tailored advice,\n" +
		"a compound growth projection and a budget breakdown.\n\n" +
		"Press " + keyStyle.Render("p") + " to start."

	var cards string
	if a.isCompactLayout() {
		cards = components.ContentCard("General", general, cw) + "\n" +
			components.ContentCard("Personal", personal, cw)
	} else {
		widths := components.LayoutRow(cw, 2)
		cards = components.CardRow([]string{
			components.ContentCard("General", general, widths[0]),
			components.ContentCard("Personal", personal, widths[1]),
		})
	}

	body := lipgloss.PlaceHorizontal(cw, lipgloss.Center, hero,
		lipgloss.WithWhitespaceBackground(t.Background)) + "\n\n" + cards

	// Vertically center when there is room.
	top := (h - lipgloss.Height(body)) / 3
	if top > 0 {
		body = strings.Repeat("\n", top) + body
	}
	return body
}
