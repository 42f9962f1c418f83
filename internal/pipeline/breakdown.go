package pipeline

import (
	"math"

	"github.com/theirongolddev/ada/internal/model"
)

// BuildBreakdown splits monthly income into the six chart categories, in
// fixed order. terminal is the compound projection shown stacked on top of
// income in the first category.
func BuildBreakdown(in model.FinancialInputs, terminal int64) []model.BreakdownCategory {
	committed := in.NecessaryExpenditure + in.MonthlyInvestment + in.Donation + in.MonthlySavings
	excess := math.Max(0, in.Income-committed)

	return []model.BreakdownCategory{
		{Label: model.LabelIncomeCompound, IncomeComponent: in.Income, CompoundComponent: float64(max(0, terminal))},
		{Label: model.LabelNecessaryExpenditure, PlainValue: in.NecessaryExpenditure},
		{Label: model.LabelExcess, PlainValue: excess},
		{Label: model.LabelInvestment, PlainValue: in.MonthlyInvestment},
		{Label: model.LabelDonation, PlainValue: in.Donation},
		{Label: model.LabelSavings, PlainValue: in.MonthlySavings},
	}
}
