package ui

import (
	"fmt"
	"strings"

	"github.com/five82/shelf/internal/presenter"
)

// renderStatistics renders the category and growth charts.
func (m Model) renderStatistics(styles Styles, width int) string {
	switch {
	case m.loadErr != nil:
		return renderNotice(styles, presenter.FetchErrorNotice(false, m.loadErr))
	case m.stats == nil:
		return styles.MutedText.Render("Loading books...")
	case m.stats.Empty:
		return styles.InfoText.Render(presenter.EmptyText)
	}
	s := m.stats

	lines := m.renderBars(styles, s.Categories, width)
	lines = append(lines, "")
	lines = append(lines, m.renderLine(styles, s.Growth, width)...)
	if s.UndatedCount > 0 {
		noun := "books have"
		if s.UndatedCount == 1 {
			noun = "book has"
		}
		lines = append(lines, "", styles.FaintText.Render(
			fmt.Sprintf("%d %s no valid added date and %s not plotted.", s.UndatedCount, noun, pluralVerb(s.UndatedCount))))
	}
	return strings.Join(lines, "\n")
}

func pluralVerb(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}
