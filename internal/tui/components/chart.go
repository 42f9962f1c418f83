package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// ProjectionChart plots the projected value for each year as a bar chart
// with year labels on the x axis.
func ProjectionChart(points []model.ProjectionPoint, color lipgloss.Color, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	values := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
		labels[i] = "y" + strconv.Itoa(p.Year)
	}
	return BarChart(values, labels, color, width, height)
}

// BreakdownChart renders one horizontal bar per category on a shared scale.
// The stacked category draws its income and compound parts in two colors.
func BreakdownChart(cats []model.BreakdownCategory, width int) string {
	if len(cats) == 0 {
		return ""
	}
	t := theme.Active
	series := t.Series()

	labelW := 0
	maxTotal := 0.0
	values := make([]string, len(cats))
	valueW := 0
	for i, c := range cats {
		labelW = max(labelW, lipgloss.Width(c.Label))
		maxTotal = math.Max(maxTotal, c.Total())
		values[i] = cli.FormatGBP(c.Total())
		valueW = max(valueW, lipgloss.Width(values[i]))
	}
	if maxTotal <= 0 {
		maxTotal = 1
	}

	barW := width - labelW - valueW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, c := range cats {
		color := series[i%len(series)]
		total := scaledLen(c.Total(), maxTotal, barW)

		var bar string
		if c.Stacked() {
			income := min(scaledLen(c.IncomeComponent, maxTotal, barW), total)
			bar = lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Render(strings.Repeat("█", income)) +
				lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(strings.Repeat("▓", total-income))
		} else {
			bar = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", total))
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, c.Label)))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(bar)
		b.WriteString(emptyStyle.Render(strings.Repeat(" ", barW-total)))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, values[i])))
		if i < len(cats)-1 {
			b.WriteString("\n")
		}
	}

	if cats[0].Stacked() && cats[0].Total() > 0 {
		legend := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Render("█ income ") +
			lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render("▓ compound")
		b.WriteString("\n")
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", labelW+1)))
		b.WriteString(legend)
	}
	return b.String()
}

// scaledLen maps v onto [0, width] against peak.
func scaledLen(v, peak float64, width int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	n := int(math.Round(v / peak * float64(width)))
	if n < 1 {
		n = 1
	}
	return min(n, width)
}

// BarChart plots one bar per value against a £ axis with rounded ticks.
// When the series is wider than the area it is sampled evenly, keeping the
// first and last points.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Double the step until the ticks fit at two rows apart.
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(maxVal / tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := lipgloss.Width(axisLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		row := i * rowsPerTick
		tickLabels[row] = axisLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(values)

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := 2
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else if n == 1 {
		barW = chartW
	}
	if barW < 2 && n > 1 {
		maxN := (chartW + 1) / 3
		if maxN < 2 {
			maxN = 2
		}
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (maxN - 1)
			sampled[i] = values[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values = sampled
		labels = sampledLabels
		n = maxN
		barW = 2
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)
		rowPct := float64(row) / float64(chartH)

		// The upper rows only fill in the late, compounded years.
		var barColor lipgloss.Color
		switch {
		case rowPct > 0.8:
			barColor = t.AccentBright
		case rowPct > 0.5:
			barColor = color
		default:
			barColor = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		label := tickLabels[row]
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "£0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	// Year labels; the final year is always shown.
	if len(labels) == n && n > 0 {
		buf := make([]byte, axisLen)
		for i := range buf {
			buf[i] = ' '
		}

		minSpacing := 8
		labelStep := max(1, (n*minSpacing)/(axisLen+1))

		lastEnd := -1
		for i := 0; i < n; i += labelStep {
			pos := i * (barW + gap)
			lbl := labels[i]
			end := pos + len(lbl)
			if pos <= lastEnd {
				continue
			}
			if end > axisLen {
				end = axisLen
				if end-pos < 3 {
					continue
				}
				lbl = lbl[:end-pos]
			}
			copy(buf[pos:end], lbl)
			lastEnd = end + 1
		}
		if n > 1 {
			lbl := labels[n-1]
			pos := (n - 1) * (barW + gap)
			end := pos + len(lbl)
			if end > axisLen {
				pos = axisLen - len(lbl)
				end = axisLen
			}
			if pos >= 0 && pos > lastEnd {
				for j := pos; j < end; j++ {
					buf[j] = ' '
				}
				copy(buf[pos:end], lbl)
			}
		}

		b.WriteString("\n")
		labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// axisLabel formats a tick value as a compact pound amount.
func axisLabel(v float64) string {
	return cli.FormatCompactGBP(int64(math.Round(v)))
}
