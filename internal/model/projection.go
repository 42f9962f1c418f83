package model

// ProjectionPoint is one year of the compound-growth series.
type ProjectionPoint struct {
	Year  int   `json:"year"`
	Value int64 `json:"value"`
}

// BreakdownCategory is one bar of the income allocation chart.
// Only the "Income & Compound" category uses IncomeComponent and
// CompoundComponent; every other category uses PlainValue. Unused
// fields are always zero.
type BreakdownCategory struct {
	Label             string  `json:"label"`
	IncomeComponent   float64 `json:"incomeComponent"`
	CompoundComponent float64 `json:"compoundComponent"`
	PlainValue        float64 `json:"plainValue"`
}

// Breakdown category labels, in chart order.
const (
	LabelIncomeCompound       = "Income & Compound"
	LabelNecessaryExpenditure = "Necessary Expenditure"
	LabelExcess               = "Excess"
	LabelInvestment           = "Investment"
	LabelDonation             = "Donation"
	LabelSavings              = "Savings"
)

// Stacked reports whether the category renders as an income/compound pair.
func (c BreakdownCategory) Stacked() bool {
	return c.Label == LabelIncomeCompound
}

// Total is the full bar height.
func (c BreakdownCategory) Total() float64 {
	return c.IncomeComponent + c.CompoundComponent + c.PlainValue
}
