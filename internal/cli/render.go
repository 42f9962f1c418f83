package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned
// as a label; the rest are amounts and align right. A row holding only
// "---" draws a rule, which splits the stacked breakdown row from the rest.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(tableRow(t.Headers, widths, func(int) lipgloss.Style { return headerStyle }, false))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(tableRow(row, widths, func(int) lipgloss.Style { return valueStyle }, true))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))

	return b.String()
}

// columnWidths uses t.Widths when set, otherwise the widest cell per column.
// Widths are in terminal cells so "£" counts once.
func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, cell := range cells {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	grow(t.Headers)
	for _, row := range t.Rows {
		grow(row)
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		if i > 0 {
			b.WriteString(dimStyle.Render(mid))
		}
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

// tableRow pads each cell to its column. With alignAmounts set, every
// column after the first is right-aligned.
func tableRow(cells []string, widths []int, style func(int) lipgloss.Style, alignAmounts bool) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("│"))
	for i, w := range widths {
		if i > 0 {
			b.WriteString(dimStyle.Render("│"))
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
		if alignAmounts && i > 0 {
			cell = pad + cell
		} else {
			cell += pad
		}
		b.WriteString(style(i).Render(" " + cell + " "))
	}
	b.WriteString(dimStyle.Render("│"))
	b.WriteString("\n")
	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders a labeled bar scaled against maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, labelWidth, maxWidth int) string {
	barLen := 0
	if maxValue > 0 && value > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	if barLen > maxWidth {
		barLen = maxWidth
	}
	bar := strings.Repeat("█", barLen)
	return fmt.Sprintf("  %-*s %s", labelWidth, label, moneyStyle.Render(bar))
}

// RenderNotice renders a one-line warning, such as an advisor failure.
func RenderNotice(msg string) string {
	return warnStyle.Render("  ! " + msg)
}

// RenderMuted renders secondary text.
func RenderMuted(msg string) string {
	return mutedStyle.Render(msg)
}
