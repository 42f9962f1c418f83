package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

const (
	queryCharLimit  = 500
	amountCharLimit = 16
)

var placeholders = map[model.Field]string{
	model.FieldQuery:                "Ask about budgeting, saving or investing...",
	model.FieldIncome:               "e.g. 2500",
	model.FieldNecessaryExpenditure: "rent, bills, food",
	model.FieldMonthlyInvestment:    "e.g. 300",
	model.FieldDonation:             "e.g. 50",
	model.FieldMonthlySavings:       "e.g. 200",
	model.FieldHorizonYears:         "e.g. 10",
}

// newInputs builds one empty text input per form field, query first.
func newInputs() []textinput.Model {
	t := theme.Active
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Placeholder = placeholders[f]
		ti.Prompt = "› "
		ti.CharLimit = amountCharLimit
		if f == model.FieldQuery {
			ti.CharLimit = queryCharLimit
		}
		ti.PromptStyle = lipgloss.NewStyle().Foreground(t.Accent)
		ti.TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary)
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.TextDim)
		inputs[i] = ti
	}
	return inputs
}

// visibleFields is how many entries of formFields the current mode shows.
func (a App) visibleFields() int {
	if a.state.Mode() == model.ModePersonal {
		return len(formFields)
	}
	return 1
}

// moveFocus cycles focus through the visible fields.
func (a *App) moveFocus(delta int) tea.Cmd {
	n := a.visibleFields()
	a.inputs[a.focus].Blur()
	a.focus = ((a.focus+delta)%n + n) % n
	return a.inputs[a.focus].Focus()
}

func (a *App) resizeInputs() {
	w := a.contentWidth() - 8
	if w < 20 {
		w = 20
	}
	for i := range a.inputs {
		if formFields[i] == model.FieldQuery {
			a.inputs[i].Width = w
		} else {
			a.inputs[i].Width = amountCharLimit + 2
		}
	}
}
