// Package pipeline turns submitted form inputs into chart data: numeric
// coercion, the compound-growth projection and the income breakdown.
package pipeline

import (
	"math"

	"github.com/theirongolddev/ada/internal/model"
)

const (
	// AnnualRate is the fixed nominal yearly growth rate.
	AnnualRate = 0.08
	// CompoundsPerYear is the number of compounding periods per year.
	CompoundsPerYear = 12
	// MaxHorizonYears caps the projected horizon. Larger values are clamped.
	MaxHorizonYears = 1000
)

// Project returns the year-by-year future value of a monthly contribution,
// one point per year from 1 to years. It returns nil when the contribution is
// not a positive finite number or years is not positive.
func Project(monthly float64, years int) []model.ProjectionPoint {
	if !validContribution(monthly) || years <= 0 {
		return nil
	}
	years = clampYears(years)

	points := make([]model.ProjectionPoint, years)
	for t := 1; t <= years; t++ {
		points[t-1] = model.ProjectionPoint{
			Year:  t,
			Value: toCurrency(futureValue(monthly, t)),
		}
	}
	return points
}

// TerminalValue returns the projected amount after exactly years years,
// or 0 when the inputs would produce no projection.
func TerminalValue(monthly float64, years int) int64 {
	if !validContribution(monthly) || years <= 0 {
		return 0
	}
	return toCurrency(futureValue(monthly, clampYears(years)))
}

// futureValue is the value of an ordinary annuity of monthly payments
// compounded monthly at AnnualRate for years years.
func futureValue(monthly float64, years int) float64 {
	i := AnnualRate / CompoundsPerYear
	n := float64(CompoundsPerYear * years)
	return monthly * (math.Pow(1+i, n) - 1) / i
}

func validContribution(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

func clampYears(years int) int {
	if years > MaxHorizonYears {
		return MaxHorizonYears
	}
	return years
}

// toCurrency rounds half away from zero and saturates at the int64 range.
func toCurrency(v float64) int64 {
	r := math.Round(v)
	switch {
	case math.IsNaN(r) || r <= 0:
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(r)
}
