package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/presenter"
)

// renderPie draws a proportion chart as one stacked bar with a legend.
func (m Model) renderPie(styles Styles, chart presenter.PieChart, width int) []string {
	lines := []string{styles.Title.Render(chart.Title)}
	if chart.Total == 0 || len(chart.Slices) == 0 {
		return append(lines, styles.MutedText.Render("No data"))
	}

	barWidth := min(pieBarWidth, max(width-2, 10))
	segments := pieSegments(chart.Slices, barWidth)

	var bar strings.Builder
	for i, s := range chart.Slices {
		color := lipgloss.Color(m.theme.StatusColor(s.Label))
		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", segments[i])))
	}
	lines = append(lines, bar.String())

	labelWidth := 0
	for _, s := range chart.Slices {
		labelWidth = max(labelWidth, lipgloss.Width(s.Label))
	}
	for _, s := range chart.Slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(s.Label))).Render("■")
		label := styles.Text.Width(labelWidth + 2).Render(s.Label)
		count := styles.Text.Render(fmt.Sprintf("%3d", s.Count))
		share := styles.MutedText.Render(fmt.Sprintf("  %5.1f%%", s.Share*100))
		lines = append(lines, swatch+" "+label+count+share)
	}
	return lines
}

// pieSegments splits width cells among slices by share, handing leftover
// cells to the largest remainders. Every non-empty slice gets a cell.
func pieSegments(slices []presenter.Slice, width int) []int {
	out := make([]int, len(slices))
	if len(slices) == 0 || width <= 0 {
		return out
	}
	type remainder struct {
		idx  int
		frac float64
	}
	used := 0
	rems := make([]remainder, 0, len(slices))
	for i, s := range slices {
		exact := s.Share * float64(width)
		n := int(math.Floor(exact))
		if n == 0 && s.Count > 0 {
			n = 1
		}
		out[i] = n
		used += n
		rems = append(rems, remainder{idx: i, frac: exact - math.Floor(exact)})
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for k := 0; used < width; k++ {
		out[rems[k%len(rems)].idx]++
		used++
	}
	for used > width {
		widest := 0
		for i := range out {
			if out[i] > out[widest] {
				widest = i
			}
		}
		out[widest]--
		used--
	}
	return out
}

// renderBars draws a horizontal bar chart.
func (m Model) renderBars(styles Styles, chart presenter.BarChart, width int) []string {
	lines := []string{styles.Title.Render(chart.Title)}
	if len(chart.Bars) == 0 {
		return append(lines, styles.MutedText.Render("No data"))
	}

	labelWidth := lipgloss.Width(chart.XLabel)
	for _, b := range chart.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(displayCategory(b.Label)))
	}
	labelWidth = min(labelWidth, max(width/3, 8))

	barMax := min(barChartWidth, max(width-labelWidth-8, 5))
	peak := chart.Max()

	header := styles.MutedText.Width(labelWidth + 1).Render(chart.XLabel) + styles.MutedText.Render(chart.YLabel)
	lines = append(lines, header)
	for i, b := range chart.Bars {
		n := 0
		if peak > 0 {
			n = max(int(math.Round(float64(b.Count)/float64(peak)*float64(barMax))), 1)
		}
		label := styles.Text.Width(labelWidth + 1).Render(truncate(displayCategory(b.Label), labelWidth))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ChartColor(i))).Render(strings.Repeat("█", n))
		lines = append(lines, label+bar+" "+styles.MutedText.Render(fmt.Sprintf("%d", b.Count)))
	}
	return lines
}

// renderLine draws a line chart as a column plot with one column per
// period. Only the most recent periods that fit the width are shown.
func (m Model) renderLine(styles Styles, chart presenter.LineChart, width int) []string {
	lines := []string{styles.Title.Render(chart.Title)}
	if len(chart.Points) == 0 {
		return append(lines, styles.MutedText.Render("No data"))
	}

	axisWidth := len(fmt.Sprintf("%d", chart.Max())) + 1
	fit := max((width-axisWidth-1)/lineColumnWidth, 1)
	points := chart.Points
	if len(points) > fit {
		lines = append(lines, styles.FaintText.Render(fmt.Sprintf("showing last %d of %d months", fit, len(points))))
		points = points[len(points)-fit:]
	}

	peak := 0
	for _, p := range points {
		peak = max(peak, p.Count)
	}
	levels := make([]int, len(points))
	for i, p := range points {
		if peak > 0 {
			levels[i] = int(math.Round(float64(p.Count) / float64(peak) * float64(lineChartHeight-1)))
		}
	}

	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ChartColor(0)))
	pad := strings.Repeat(" ", (lineColumnWidth-1)/2)
	for row := lineChartHeight - 1; row >= 0; row-- {
		axis := strings.Repeat(" ", axisWidth)
		if row == lineChartHeight-1 {
			axis = fmt.Sprintf("%*d", axisWidth, peak)
		} else if row == 0 {
			axis = fmt.Sprintf("%*d", axisWidth, 0)
		}
		var b strings.Builder
		b.WriteString(styles.MutedText.Render(axis + "│"))
		for i := range points {
			cell := " "
			switch {
			case levels[i] == row:
				cell = "●"
			case levels[i] > row:
				cell = "│"
			}
			b.WriteString(pad)
			b.WriteString(lineStyle.Render(cell))
			b.WriteString(strings.Repeat(" ", lineColumnWidth-1-len(pad)))
		}
		lines = append(lines, b.String())
	}

	lines = append(lines, styles.MutedText.Render(strings.Repeat(" ", axisWidth)+"└"+strings.Repeat("─", len(points)*lineColumnWidth)))
	var periods, counts strings.Builder
	periods.WriteString(strings.Repeat(" ", axisWidth+1))
	counts.WriteString(strings.Repeat(" ", axisWidth+1))
	for _, p := range points {
		periods.WriteString(fmt.Sprintf("%-*s", lineColumnWidth, p.Period))
		counts.WriteString(fmt.Sprintf("%-*s", lineColumnWidth, fmt.Sprintf("  %d", p.Count)))
	}
	lines = append(lines, styles.MutedText.Render(periods.String()), styles.FaintText.Render(counts.String()))
	return lines
}

func displayCategory(label string) string {
	if strings.TrimSpace(label) == "" {
		return "(none)"
	}
	return label
}
