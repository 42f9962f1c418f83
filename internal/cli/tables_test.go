package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/pipeline"
)

func TestProjectionTable(t *testing.T) {
	tbl := ProjectionTable(pipeline.Project(100, 2))
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "1" || tbl.Rows[0][1] != "£1,245" {
		t.Fatalf("first row = %v, want [1 £1,245]", tbl.Rows[0])
	}
}

func TestBreakdownTableSeparatesStackedCategory(t *testing.T) {
	in := model.FinancialInputs{Income: 2000, NecessaryExpenditure: 1200, MonthlyInvestment: 200, Donation: 50, MonthlySavings: 100, HorizonYears: 1}
	tbl := BreakdownTable(pipeline.BuildBreakdown(in, pipeline.TerminalValue(200, 1)))
	if len(tbl.Rows) != 7 {
		t.Fatalf("rows = %d, want 6 categories plus a separator", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != model.LabelIncomeCompound || tbl.Rows[0][1] != "£2,000.00" {
		t.Fatalf("stacked row = %v", tbl.Rows[0])
	}
	if tbl.Rows[1][0] != "---" {
		t.Fatalf("row 1 = %v, want separator", tbl.Rows[1])
	}

	out := RenderTable(tbl)
	if !strings.Contains(out, "£450.00") {
		t.Fatalf("rendered table missing excess £450.00:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1}); got != "▁█" {
		t.Fatalf("RenderSparkline = %q", got)
	}
}

func TestRenderTableAlignsAmounts(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Rent", "£1.00"},
			{"---"},
			{"Food", "£100.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{
		"╭──────┬─────────╮",
		"│ Item │ Amount  │",
		"├──────┼─────────┤",
		"│ Rent │   £1.00 │",
		"├──────┼─────────┤",
		"│ Food │ £100.00 │",
		"╰──────┴─────────╯",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
