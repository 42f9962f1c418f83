package pipeline

import (
	"testing"

	"github.com/theirongolddev/ada/internal/model"
)

func TestBuildBreakdownExcess(t *testing.T) {
	in := model.FinancialInputs{
		Income:               2000,
		NecessaryExpenditure: 1200,
		MonthlyInvestment:    200,
		Donation:             50,
		MonthlySavings:       100,
		HorizonYears:         10,
	}
	cats := BuildBreakdown(in, 36589)

	wantLabels := []string{
		model.LabelIncomeCompound,
		model.LabelNecessaryExpenditure,
		model.LabelExcess,
		model.LabelInvestment,
		model.LabelDonation,
		model.LabelSavings,
	}
	if len(cats) != len(wantLabels) {
		t.Fatalf("len(BuildBreakdown) = %d, want %d", len(cats), len(wantLabels))
	}
	for i, c := range cats {
		if c.Label != wantLabels[i] {
			t.Fatalf("category %d label = %q, want %q", i, c.Label, wantLabels[i])
		}
	}

	if cats[0].IncomeComponent != 2000 || cats[0].CompoundComponent != 36589 || cats[0].PlainValue != 0 {
		t.Fatalf("income category = %+v, want income 2000, compound 36589, plain 0", cats[0])
	}
	if cats[2].PlainValue != 450 {
		t.Fatalf("excess = %v, want 450", cats[2].PlainValue)
	}
	for _, c := range cats[1:] {
		if c.IncomeComponent != 0 || c.CompoundComponent != 0 {
			t.Fatalf("category %q carries stacked components: %+v", c.Label, c)
		}
	}
	if cats[1].PlainValue != 1200 || cats[3].PlainValue != 200 || cats[4].PlainValue != 50 || cats[5].PlainValue != 100 {
		t.Fatalf("plain values = %v %v %v %v, want 1200 200 50 100",
			cats[1].PlainValue, cats[3].PlainValue, cats[4].PlainValue, cats[5].PlainValue)
	}
}

func TestBuildBreakdownOverspendClampsExcess(t *testing.T) {
	in := model.FinancialInputs{
		Income:               1000,
		NecessaryExpenditure: 900,
		MonthlyInvestment:    300,
		Donation:             100,
	}
	cats := BuildBreakdown(in, 0)
	if cats[2].PlainValue != 0 {
		t.Fatalf("excess = %v, want 0 when expenses exceed income", cats[2].PlainValue)
	}
	for _, c := range cats {
		if c.IncomeComponent < 0 || c.CompoundComponent < 0 || c.PlainValue < 0 {
			t.Fatalf("category %q has a negative field: %+v", c.Label, c)
		}
	}
}

func TestBuildBreakdownZeroInputs(t *testing.T) {
	cats := BuildBreakdown(model.FinancialInputs{}, 0)
	if len(cats) != 6 {
		t.Fatalf("len(BuildBreakdown) = %d, want 6", len(cats))
	}
	for _, c := range cats {
		if c.Total() != 0 {
			t.Fatalf("category %q total = %v, want 0", c.Label, c.Total())
		}
	}
	if !cats[0].Stacked() || cats[1].Stacked() {
		t.Fatal("only the first category should be stacked")
	}
}
