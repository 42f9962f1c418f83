package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/pipeline"
	"github.com/theirongolddev/ada/internal/session"
	"github.com/theirongolddev/ada/internal/tui/components"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

const projectionChartHeight = 10

func (a App) renderResults(cw int) string {
	v := a.state.Snapshot()
	if v.Mode == model.ModeGeneral {
		return components.ContentCard("Advisor", a.answerView.View(), cw)
	}

	var sections []string
	sections = append(sections, components.MetricCardRow(resultMetrics(v), cw))
	if v.Answer != "" {
		sections = append(sections, components.ContentCard("Advisor", a.answerView.View(), cw))
	}

	if a.isCompactLayout() {
		inner := components.CardInnerWidth(cw)
		sections = append(sections,
			components.ContentCard("Projected Growth", components.ProjectionChart(v.Projection, theme.Active.Accent, inner, projectionChartHeight), cw),
			components.ContentCard("Where the Money Goes", components.BreakdownChart(v.Breakdown, inner), cw),
		)
	} else {
		widths := components.LayoutRow(cw, 2)
		sections = append(sections, components.CardRow([]string{
			components.ContentCard("Projected Growth",
				components.ProjectionChart(v.Projection, theme.Active.Accent, components.CardInnerWidth(widths[0]), projectionChartHeight), widths[0]),
			components.ContentCard("Where the Money Goes",
				components.BreakdownChart(v.Breakdown, components.CardInnerWidth(widths[1])), widths[1]),
		}))
	}

	barW := components.CardInnerWidth(cw) - 20
	if barW < 10 {
		barW = 10
	}
	pct := components.CommittedPct(v.Inputs.Income, committed(v.Inputs))
	sections = append(sections, components.ContentCard("Budget",
		components.BudgetBar("Income committed", pct, 16, barW), cw))

	return strings.Join(sections, "\n")
}

func resultMetrics(v session.View) []components.Metric {
	in := v.Inputs
	excess := in.Income - committed(in)
	excessNote := "per month"
	if excess < 0 {
		excessNote = "over budget"
	}
	return []components.Metric{
		{Label: "Projected Value", Value: cli.FormatPounds(v.Terminal), Note: "after " + cli.FormatHorizon(in.HorizonYears, len(v.Projection))},
		{Label: "Investing", Value: cli.FormatGBP(in.MonthlyInvestment), Note: "monthly at " + cli.FormatPercent(pipeline.AnnualRate)},
		{Label: "Left Over", Value: cli.FormatGBP(excess), Note: excessNote},
	}
}

// committed is everything allotted from income each month.
func committed(in model.FinancialInputs) float64 {
	return in.NecessaryExpenditure + in.MonthlyInvestment + in.Donation + in.MonthlySavings
}

// refreshAnswerView sizes the answer viewport to the current layout and
// reloads the wrapped answer text.
func (a *App) refreshAnswerView() {
	cw := a.contentWidth()
	inner := components.CardInnerWidth(cw)
	if inner < 10 {
		inner = 10
	}

	h := answerHeightPersonal
	if a.state.Mode() == model.ModeGeneral {
		// header + status bar + card chrome
		h = a.height - 2 - 4
	}
	if h < 3 {
		h = 3
	}

	a.answerView.Width = inner
	a.answerView.Height = h
	a.answerView.SetContent(lipgloss.NewStyle().Width(inner).Render(a.state.Snapshot().Answer))
}
