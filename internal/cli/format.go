// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// FormatGBP formats an amount in pounds with pence, e.g. 1234.5 -> "£1,234.50".
func FormatGBP(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "£–"
	}
	pence := math.Round(amount * 100)
	if math.Abs(pence) >= math.MaxInt64 {
		return FormatPounds(int64(math.Copysign(math.MaxInt64/100, amount)))
	}
	return money.New(int64(pence), money.GBP).Display()
}

// FormatPounds formats a whole-pound value, e.g. 1245 -> "£1,245".
func FormatPounds(n int64) string {
	if n < 0 {
		return "-£" + FormatNumber(-n)
	}
	return "£" + FormatNumber(n)
}

// FormatCompactGBP shortens large values for chart axes.
// e.g., 1245 -> "£1.2K", 3400000 -> "£3.4M"
func FormatCompactGBP(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("£%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("£%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("£%.1fK", float64(n)/1_000)
	default:
		return "£" + strconv.FormatInt(n, 10)
	}
}

// FormatDuration formats seconds into a human-readable duration.
// e.g., 3725 -> "1h 2m", 125 -> "2m", 45 -> "45s"
func FormatDuration(secs int64) string {
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n == math.MinInt64 {
		return "-9,223,372,036,854,775,808"
	}
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatYears formats a horizon, e.g. 1 -> "1 year", 10 -> "10 years".
func FormatYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return strconv.Itoa(n) + " years"
}

// FormatHorizon formats the span actually projected and notes when it
// is shorter than the one requested.
func FormatHorizon(requested, projected int) string {
	s := FormatYears(projected)
	if requested > projected {
		s += " (capped from " + strconv.Itoa(requested) + ")"
	}
	return s
}
