package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/ada/internal/model"
)

// inputFlags collects personal figures from flags and an optional YAML file.
// Values stay raw text; they are coerced at submission like the form's.
type inputFlags struct {
	file        string
	income      string
	expenditure string
	investment  string
	donation    string
	savings     string
	years       string
}

func (f *inputFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.file, "inputs", "", "YAML file with income, necessary_expenditure, monthly_investment, ...")
	c.Flags().StringVar(&f.income, "income", "", "Monthly income")
	c.Flags().StringVar(&f.expenditure, "expenditure", "", "Monthly necessary expenditure")
	c.Flags().StringVar(&f.investment, "investment", "", "Amount to invest each month")
	c.Flags().StringVar(&f.donation, "donation", "", "Amount to donate each month")
	c.Flags().StringVar(&f.savings, "savings", "", "Monthly savings")
	c.Flags().StringVar(&f.years, "years", "", "Projection horizon in years")
}

// set reports whether any personal figure was given.
func (f inputFlags) set() bool {
	return f.file != "" || f.income != "" || f.expenditure != "" || f.investment != "" ||
		f.donation != "" || f.savings != "" || f.years != ""
}

// raw loads the YAML file, if any, then overlays non-empty flags.
func (f inputFlags) raw() (model.RawInputs, error) {
	var raw model.RawInputs
	if f.file != "" {
		//nolint:gosec // inputs path is given by the local user
		data, err := os.ReadFile(f.file)
		if err != nil {
			return raw, fmt.Errorf("reading inputs: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return raw, fmt.Errorf("parsing %s: %w", f.file, err)
		}
	}

	overlay := map[model.Field]string{
		model.FieldIncome:               f.income,
		model.FieldNecessaryExpenditure: f.expenditure,
		model.FieldMonthlyInvestment:    f.investment,
		model.FieldDonation:             f.donation,
		model.FieldMonthlySavings:       f.savings,
		model.FieldHorizonYears:         f.years,
	}
	for field, v := range overlay {
		if v != "" {
			raw.Set(field, v)
		}
	}
	return raw, nil
}
