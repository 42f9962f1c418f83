package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/pipeline"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	widths := LayoutRow(101, 4)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 101 || widths[0] != 26 || widths[3] != 25 {
		t.Fatalf("LayoutRow(101, 4) = %v", widths)
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := FocusCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	tallLines := len(strings.Split(tallCard, "\n"))
	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d", got, tallLines)
	}
	if w := lipgloss.Width(joined); w != 44 {
		t.Errorf("joined width = %d, want 44", w)
	}
}

func TestMetricCardRow(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Projected", Value: "£1,245", Note: "after 1 year"},
		{Label: "Excess", Value: "£450.00"},
	}, 60)
	if !strings.Contains(row, "£1,245") || !strings.Contains(row, "after 1 year") {
		t.Fatalf("MetricCardRow missing content:\n%s", row)
	}
	if w := lipgloss.Width(row); w != 60 {
		t.Fatalf("MetricCardRow width = %d, want 60", w)
	}
}

func TestProjectionChartLabels(t *testing.T) {
	out := ProjectionChart(pipeline.Project(100, 5), theme.Active.Blue, 60, 8)
	if !strings.Contains(out, "y1") || !strings.Contains(out, "y5") {
		t.Fatalf("ProjectionChart missing year labels:\n%s", out)
	}
	if !strings.Contains(out, "£") {
		t.Fatalf("ProjectionChart axis should be in pounds:\n%s", out)
	}
	if ProjectionChart(nil, theme.Active.Blue, 60, 8) != "" {
		t.Fatal("ProjectionChart(nil) should be empty")
	}
}

func TestBreakdownChart(t *testing.T) {
	in := model.FinancialInputs{Income: 2000, NecessaryExpenditure: 1200, MonthlyInvestment: 200, Donation: 50, MonthlySavings: 100, HorizonYears: 1}
	cats := pipeline.BuildBreakdown(in, pipeline.TerminalValue(200, 1))

	out := BreakdownChart(cats, 80)
	lines := strings.Split(out, "\n")
	if len(lines) != len(cats)+1 {
		t.Fatalf("BreakdownChart lines = %d, want %d (categories plus legend)", len(lines), len(cats)+1)
	}
	for i, c := range cats {
		if !strings.Contains(lines[i], c.Label) {
			t.Errorf("line %d = %q, want label %q", i, lines[i], c.Label)
		}
	}
	if !strings.Contains(out, "£450.00") {
		t.Fatal("BreakdownChart missing the excess value")
	}
	if !strings.Contains(lines[len(lines)-1], "compound") {
		t.Fatal("BreakdownChart missing the stacked legend")
	}
}

func TestBreakdownChartAllZero(t *testing.T) {
	out := BreakdownChart(pipeline.BuildBreakdown(model.FinancialInputs{}, 0), 60)
	if strings.Contains(out, "█") {
		t.Fatalf("zero breakdown should draw no bars:\n%s", out)
	}
}

func TestScaledLen(t *testing.T) {
	cases := []struct {
		v, peak float64
		width   int
		want    int
	}{
		{0, 10, 20, 0},
		{10, 10, 20, 20},
		{5, 10, 20, 10},
		{0.01, 10, 20, 1},
		{20, 10, 20, 20},
	}
	for _, tc := range cases {
		if got := scaledLen(tc.v, tc.peak, tc.width); got != tc.want {
			t.Errorf("scaledLen(%v, %v, %d) = %d, want %d", tc.v, tc.peak, tc.width, got, tc.want)
		}
	}
}

func TestCommittedPct(t *testing.T) {
	if got := CommittedPct(0, 100); got != 0 {
		t.Fatalf("CommittedPct(0, 100) = %v, want 0", got)
	}
	if got := CommittedPct(2000, 3000); got != 1.5 {
		t.Fatalf("CommittedPct(2000, 3000) = %v, want 1.5", got)
	}
	if !strings.Contains(BudgetBar("Committed", 1.5, 10, 20), "150%") {
		t.Fatal("BudgetBar should show overspend above 100%")
	}
}

func TestModeBar(t *testing.T) {
	out := RenderModeBar(model.ModePersonal)
	if !strings.Contains(out, "General") || !strings.Contains(out, "Personal") {
		t.Fatalf("RenderModeBar = %q", out)
	}
	if ModeByKey('p') != model.ModePersonal || ModeByKey('x') != model.ModeNone {
		t.Fatal("ModeByKey mapping wrong")
	}
}

func TestStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(50, "[q]uit", "saved")
	if w := lipgloss.Width(bar); w != 50 {
		t.Fatalf("RenderStatusBar width = %d, want 50", w)
	}
}
