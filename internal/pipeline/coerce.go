package pipeline

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/ada/internal/model"
)

var maxYears = decimal.NewFromInt(math.MaxInt32)

// maxMagnitude bounds the decimal exponent of accepted text. Comparing or
// converting a decimal expands its exponent, so "1e100000000" must be
// settled before either happens. float64 overflows long before 10^400.
const maxMagnitude = 400

type scale int

const (
	inRange scale = iota
	negligible
	overflow
)

// classify places d by order of magnitude without expanding its exponent.
func classify(d decimal.Decimal) scale {
	if d.IsZero() {
		return negligible
	}
	mag := int64(d.NumDigits()) + int64(d.Exponent())
	switch {
	case mag > maxMagnitude:
		return overflow
	case mag < -maxMagnitude:
		return negligible
	}
	return inRange
}

// ParseAmount converts free text to a non-negative finite amount.
// Empty, malformed, negative or out-of-range text yields 0.
// A leading "£" and thousands separators are accepted.
func ParseAmount(raw string) float64 {
	d, ok := parseDecimal(raw)
	if !ok || classify(d) != inRange {
		return 0
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// ParseYears converts free text to a non-negative whole number of years,
// truncating any fractional part. Invalid text yields 0.
func ParseYears(raw string) int {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0
	}
	switch classify(d) {
	case negligible:
		return 0
	case overflow:
		return math.MaxInt32
	}
	if d.GreaterThan(maxYears) {
		return math.MaxInt32
	}
	return int(d.IntPart())
}

// Coerce converts every raw form field exactly once. The result never holds
// a negative or non-finite number.
func Coerce(raw model.RawInputs) model.FinancialInputs {
	return model.FinancialInputs{
		Income:               ParseAmount(raw.Income),
		NecessaryExpenditure: ParseAmount(raw.NecessaryExpenditure),
		MonthlyInvestment:    ParseAmount(raw.MonthlyInvestment),
		Donation:             ParseAmount(raw.Donation),
		MonthlySavings:       ParseAmount(raw.MonthlySavings),
		HorizonYears:         ParseYears(raw.HorizonYears),
	}
}

// Chartworthy reports whether in produces a non-empty projection.
func Chartworthy(in model.FinancialInputs) bool {
	return in.MonthlyInvestment > 0 && in.HorizonYears > 0
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "£"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
