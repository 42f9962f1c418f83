package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/tui/theme"
)

// ColorForPct returns green/yellow/orange/red based on how much of income is committed.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1:
		return string(t.Red)
	case pct >= 0.9:
		return string(t.Orange)
	case pct >= 0.7:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// CommittedPct is the share of income taken by the monthly commitments.
// It is zero when there is no income and may exceed 1 on overspend.
func CommittedPct(income, committed float64) float64 {
	if income <= 0 {
		return 0
	}
	return committed / income
}

// BudgetBar renders a labeled bar showing how much of income is committed.
// The percentage shown is not clamped, so overspend reads above 100%.
func BudgetBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	fill := pct
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(pct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(fill) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
