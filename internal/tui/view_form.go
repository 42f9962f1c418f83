package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/tui/components"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

func (a App) renderForm(cw int) string {
	t := theme.Active
	v := a.state.Snapshot()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	focusLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	label := func(i int) string {
		if i == a.focus {
			return focusLabelStyle.Render(formFields[i].Label())
		}
		return labelStyle.Render(formFields[i].Label())
	}

	var b strings.Builder
	b.WriteString(label(0))
	b.WriteString("\n")
	b.WriteString(a.inputs[0].View())

	if v.Mode == model.ModePersonal {
		b.WriteString("\n\n")
		labelW := 0
		for _, f := range model.PersonalFields {
			labelW = max(labelW, lipgloss.Width(f.Label()))
		}
		for i := 1; i < len(formFields); i++ {
			pad := strings.Repeat(" ", labelW-lipgloss.Width(formFields[i].Label()))
			unit := "£"
			if formFields[i] == model.FieldHorizonYears {
				unit = " "
			}
			fmt.Fprintf(&b, "%s%s  %s %s", label(i), pad, labelStyle.Render(unit), a.inputs[i].View())
			if i < len(formFields)-1 {
				b.WriteString("\n")
			}
		}
	}

	title := "Ask a question"
	if v.Mode == model.ModePersonal {
		title = "Your monthly figures"
	}

	var sections []string
	sections = append(sections, components.FocusCard(title, b.String(), cw))

	if v.Pending {
		sections = append(sections, "  "+a.spinner.View()+" "+cli.RenderMuted("Asking the advisor..."))
	}
	if v.Notice != "" {
		sections = append(sections, "  "+cli.RenderNotice(v.Notice))
	}
	if v.Answer != "" {
		answer := lipgloss.NewStyle().Width(components.CardInnerWidth(cw)).Render(v.Answer)
		sections = append(sections, components.ContentCard("Advisor", answer, cw))
	}

	return strings.Join(sections, "\n")
}
