package cli

import (
	"strconv"

	"github.com/theirongolddev/ada/internal/model"
)

// ProjectionTable lists the year-by-year projected value.
func ProjectionTable(points []model.ProjectionPoint) Table {
	t := Table{
		Title:   "Investment Projection",
		Headers: []string{"Year", "Value"},
	}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{strconv.Itoa(p.Year), FormatPounds(p.Value)})
	}
	return t
}

// BreakdownTable lists the monthly breakdown categories. The stacked
// category shows its income and compound parts separately.
func BreakdownTable(cats []model.BreakdownCategory) Table {
	t := Table{
		Title:   "Monthly Breakdown",
		Headers: []string{"Category", "Income", "Compound", "Total"},
	}
	for _, c := range cats {
		if c.Stacked() {
			t.Rows = append(t.Rows, []string{
				c.Label,
				FormatGBP(c.IncomeComponent),
				FormatGBP(c.CompoundComponent),
				FormatGBP(c.Total()),
			})
			t.Rows = append(t.Rows, []string{"---"})
			continue
		}
		t.Rows = append(t.Rows, []string{c.Label, "", "", FormatGBP(c.Total())})
	}
	return t
}

// InputsTable summarizes the submitted personal inputs.
func InputsTable(in model.FinancialInputs) Table {
	return Table{
		Title:   "Your Inputs",
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{model.FieldIncome.Label(), FormatGBP(in.Income)},
			{model.FieldNecessaryExpenditure.Label(), FormatGBP(in.NecessaryExpenditure)},
			{model.FieldMonthlyInvestment.Label(), FormatGBP(in.MonthlyInvestment)},
			{model.FieldDonation.Label(), FormatGBP(in.Donation)},
			{model.FieldMonthlySavings.Label(), FormatGBP(in.MonthlySavings)},
			{model.FieldHorizonYears.Label(), FormatYears(in.HorizonYears)},
		},
	}
}
