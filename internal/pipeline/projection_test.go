package pipeline

import (
	"math"
	"testing"
)

func TestProjectOneYearOfHundred(t *testing.T) {
	got := Project(100, 1)
	if len(got) != 1 {
		t.Fatalf("len(Project(100, 1)) = %d, want 1", len(got))
	}
	if got[0].Year != 1 || got[0].Value != 1245 {
		t.Fatalf("Project(100, 1)[0] = %+v, want {Year:1 Value:1245}", got[0])
	}
}

func TestProjectShape(t *testing.T) {
	cases := []struct {
		monthly float64
		years   int
	}{
		{1, 1},
		{100, 5},
		{200, 10},
		{0.5, 3},
		{2500, 40},
	}
	for _, tc := range cases {
		pts := Project(tc.monthly, tc.years)
		if len(pts) != tc.years {
			t.Fatalf("len(Project(%v, %d)) = %d, want %d", tc.monthly, tc.years, len(pts), tc.years)
		}
		for i, p := range pts {
			if p.Year != i+1 {
				t.Fatalf("Project(%v, %d)[%d].Year = %d, want %d", tc.monthly, tc.years, i, p.Year, i+1)
			}
			if p.Value < 0 {
				t.Fatalf("Project(%v, %d)[%d].Value = %d, want >= 0", tc.monthly, tc.years, i, p.Value)
			}
			if i > 0 && p.Value < pts[i-1].Value {
				t.Fatalf("Project(%v, %d) decreases at year %d: %d < %d", tc.monthly, tc.years, p.Year, p.Value, pts[i-1].Value)
			}
		}
	}
}

func TestProjectInvalidInputs(t *testing.T) {
	cases := []struct {
		name    string
		monthly float64
		years   int
	}{
		{"zero contribution", 0, 5},
		{"negative contribution", -100, 5},
		{"zero years", 100, 0},
		{"negative years", 100, -3},
		{"nan contribution", math.NaN(), 5},
		{"infinite contribution", math.Inf(1), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Project(tc.monthly, tc.years); len(got) != 0 {
				t.Fatalf("Project(%v, %d) = %v, want empty", tc.monthly, tc.years, got)
			}
			if got := TerminalValue(tc.monthly, tc.years); got != 0 {
				t.Fatalf("TerminalValue(%v, %d) = %d, want 0", tc.monthly, tc.years, got)
			}
		})
	}
}

func TestTerminalValueMatchesLastPoint(t *testing.T) {
	for _, monthly := range []float64{1, 50, 100, 333.33, 1200} {
		for _, years := range []int{1, 2, 7, 25, 60} {
			pts := Project(monthly, years)
			want := pts[len(pts)-1].Value
			if got := TerminalValue(monthly, years); got != want {
				t.Fatalf("TerminalValue(%v, %d) = %d, want %d", monthly, years, got, want)
			}
		}
	}
}

func TestTerminalValueIndependentHorizon(t *testing.T) {
	series := Project(100, 30)
	if got := TerminalValue(100, 10); got != series[9].Value {
		t.Fatalf("TerminalValue(100, 10) = %d, want %d", got, series[9].Value)
	}
}

func TestProjectClampsHorizon(t *testing.T) {
	pts := Project(1, MaxHorizonYears+50)
	if len(pts) != MaxHorizonYears {
		t.Fatalf("len(Project(1, %d)) = %d, want %d", MaxHorizonYears+50, len(pts), MaxHorizonYears)
	}
	if TerminalValue(1, MaxHorizonYears+50) != pts[len(pts)-1].Value {
		t.Fatal("TerminalValue beyond the clamp disagrees with the clamped series")
	}
}

func TestToCurrencyRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{1244.5, 1245},
		{1244.49, 1244},
		{0.5, 1},
		{0.49, 0},
		{-3, 0},
		{math.Inf(1), math.MaxInt64},
		{1e30, math.MaxInt64},
	}
	for _, tc := range cases {
		if got := toCurrency(tc.in); got != tc.want {
			t.Errorf("toCurrency(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func BenchmarkProject(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Project(250, 40)
	}
}
