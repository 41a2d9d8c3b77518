package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/presenter"
)

// renderDashboard renders the recent books table and the status chart.
func (m Model) renderDashboard(styles Styles, width int) string {
	switch {
	case m.loadErr != nil:
		return renderNotice(styles, presenter.FetchErrorNotice(true, m.loadErr))
	case m.dashboard == nil:
		return styles.MutedText.Render("Loading books...")
	case m.dashboard.Empty:
		return styles.InfoText.Render(presenter.DashboardEmptyText)
	}
	d := m.dashboard

	lines := []string{
		styles.MutedText.Render(fmt.Sprintf("%d books in your library", d.Total)),
		"",
		styles.Title.Render("Recent Books"),
	}
	lines = append(lines, renderRecentTable(styles, d.Recent, width)...)
	lines = append(lines, "")
	lines = append(lines, m.renderPie(styles, d.StatusChart, width)...)
	return strings.Join(lines, "\n")
}

// renderRecentTable lays out the recent rows in fixed columns.
func renderRecentTable(styles Styles, rows []presenter.RecentRow, width int) []string {
	const statusWidth, addedWidth = 12, 12
	flexible := max(width-statusWidth-addedWidth-3, 20)
	titleWidth := flexible * 55 / 100
	authorWidth := flexible - titleWidth

	cell := func(style lipgloss.Style, text string, w int) string {
		return style.Width(w).MaxWidth(w).Render(truncate(text, w-1))
	}

	header := cell(styles.MutedText.Bold(true), "Title", titleWidth) + " " +
		cell(styles.MutedText.Bold(true), "Author", authorWidth) + " " +
		cell(styles.MutedText.Bold(true), "Status", statusWidth) + " " +
		cell(styles.MutedText.Bold(true), "Added", addedWidth)
	lines := []string{header, styles.FaintText.Render(strings.Repeat("─", min(width, titleWidth+authorWidth+statusWidth+addedWidth+3)))}

	for _, r := range rows {
		status := styles.StatusStyle(string(r.Status)).Render(truncate(string(r.Status), statusWidth-2))
		lines = append(lines,
			cell(styles.Text, r.Title, titleWidth)+" "+
				cell(styles.Text, r.Author, authorWidth)+" "+
				lipgloss.NewStyle().Width(statusWidth).Render(status)+" "+
				cell(styles.MutedText, formatAdded(r.AddedDate), addedWidth))
	}
	return lines
}
