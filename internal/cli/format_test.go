package cli

import (
	"math"
	"testing"
)

func TestFormatGBP(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "£0.00"},
		{1234.5, "£1,234.50"},
		{99.999, "£100.00"},
		{-50, "-£50.00"},
	}
	for _, tc := range cases {
		if got := FormatGBP(tc.in); got != tc.want {
			t.Errorf("FormatGBP(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPounds(t *testing.T) {
	if got := FormatPounds(1245); got != "£1,245" {
		t.Errorf("FormatPounds(1245) = %q", got)
	}
	if got := FormatPounds(-1_000_000); got != "-£1,000,000" {
		t.Errorf("FormatPounds(-1000000) = %q", got)
	}
	if got := FormatPounds(math.MaxInt64); got != "£9,223,372,036,854,775,807" {
		t.Errorf("FormatPounds(MaxInt64) = %q", got)
	}
}

func TestFormatCompactGBP(t *testing.T) {
	cases := map[int64]string{
		950:           "£950",
		1245:          "£1.2K",
		3_400_000:     "£3.4M",
		2_500_000_000: "£2.5B",
	}
	for in, want := range cases {
		if got := FormatCompactGBP(in); got != want {
			t.Errorf("FormatCompactGBP(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		1234567:   "1,234,567",
		-1234567:  "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatYears(t *testing.T) {
	if FormatYears(1) != "1 year" || FormatYears(10) != "10 years" {
		t.Fatalf("FormatYears = %q, %q", FormatYears(1), FormatYears(10))
	}
}

func TestFormatHorizon(t *testing.T) {
	if got := FormatHorizon(25, 25); got != "25 years" {
		t.Errorf("FormatHorizon(25, 25) = %q", got)
	}
	if got := FormatHorizon(1050, 1000); got != "1000 years (capped from 1050)" {
		t.Errorf("FormatHorizon(1050, 1000) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(3725); got != "1h 2m" {
		t.Errorf("FormatDuration(3725) = %q", got)
	}
	if got := FormatDuration(45); got != "45s" {
		t.Errorf("FormatDuration(45) = %q", got)
	}
}
