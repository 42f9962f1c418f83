// Package model defines domain types for ada's advisory sessions and projections.
package model

// FinancialInputs is the coerced snapshot of the personal form at submission time.
// Every field is finite and non-negative.
type FinancialInputs struct {
	Income               float64 `json:"income" yaml:"income"`
	NecessaryExpenditure float64 `json:"necessaryExpenditure" yaml:"necessary_expenditure"`
	MonthlyInvestment    float64 `json:"monthlyInvestment" yaml:"monthly_investment"`
	Donation             float64 `json:"donation" yaml:"donation"`
	MonthlySavings       float64 `json:"monthlySavings" yaml:"monthly_savings"`
	HorizonYears         int     `json:"horizonYears" yaml:"horizon_years"`
}

// RawInputs holds the form fields exactly as typed. Values are only turned into
// numbers when a submission happens.
type RawInputs struct {
	Income               string `yaml:"income"`
	NecessaryExpenditure string `yaml:"necessary_expenditure"`
	MonthlyInvestment    string `yaml:"monthly_investment"`
	Donation             string `yaml:"donation"`
	MonthlySavings       string `yaml:"monthly_savings"`
	HorizonYears         string `yaml:"horizon_years"`
}

// Field names one editable form field.
type Field string

// Form fields, in tab order.
const (
	FieldQuery                Field = "query"
	FieldIncome               Field = "income"
	FieldNecessaryExpenditure Field = "necessaryExpenditure"
	FieldMonthlyInvestment    Field = "monthlyInvestment"
	FieldDonation             Field = "donation"
	FieldMonthlySavings       Field = "monthlySavings"
	FieldHorizonYears         Field = "horizonYears"
)

// PersonalFields lists the numeric fields shown only in personal mode.
var PersonalFields = []Field{
	FieldIncome,
	FieldNecessaryExpenditure,
	FieldMonthlyInvestment,
	FieldDonation,
	FieldMonthlySavings,
	FieldHorizonYears,
}

// Label returns the human-facing label for a field.
func (f Field) Label() string {
	switch f {
	case FieldQuery:
		return "Question"
	case FieldIncome:
		return "Income"
	case FieldNecessaryExpenditure:
		return "Necessary Expenditure"
	case FieldMonthlyInvestment:
		return "Amount to Invest"
	case FieldDonation:
		return "Amount to Donate"
	case FieldMonthlySavings:
		return "Monthly Savings"
	case FieldHorizonYears:
		return "Years"
	}
	return string(f)
}

// Get returns the raw text stored for a numeric field.
// ok is false for fields that RawInputs does not hold.
func (r RawInputs) Get(f Field) (string, bool) {
	switch f {
	case FieldIncome:
		return r.Income, true
	case FieldNecessaryExpenditure:
		return r.NecessaryExpenditure, true
	case FieldMonthlyInvestment:
		return r.MonthlyInvestment, true
	case FieldDonation:
		return r.Donation, true
	case FieldMonthlySavings:
		return r.MonthlySavings, true
	case FieldHorizonYears:
		return r.HorizonYears, true
	}
	return "", false
}

// Set stores raw text for a numeric field and reports whether the field exists.
func (r *RawInputs) Set(f Field, v string) bool {
	switch f {
	case FieldIncome:
		r.Income = v
	case FieldNecessaryExpenditure:
		r.NecessaryExpenditure = v
	case FieldMonthlyInvestment:
		r.MonthlyInvestment = v
	case FieldDonation:
		r.Donation = v
	case FieldMonthlySavings:
		r.MonthlySavings = v
	case FieldHorizonYears:
		r.HorizonYears = v
	default:
		return false
	}
	return true
}
