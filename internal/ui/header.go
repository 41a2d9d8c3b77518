package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the full UI: header, sidebar and content, command bar.
func (m Model) renderMain() string {
	sidebar := m.renderSidebar(max(m.contentHeight()-2, 1))
	content := lipgloss.NewStyle().
		Width(m.contentWidth()).
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderHeader renders the title bar with the selected backend.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("Personal Library Manager", styles.Logo)}
	if m.config != nil {
		envStyle := styles.InfoText
		if m.config.Production {
			envStyle = styles.WarningText.Bold(true)
		}
		parts = append(parts, bg.Render(strings.ToUpper(m.config.Environment()), envStyle))
		if !compact {
			parts = append(parts, bg.Render(truncateMiddle(m.config.BaseURL(), 48), styles.MutedText))
		}
	}
	if m.loading {
		parts = append(parts, bg.Render("Loading...", styles.WarningText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the focused area.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.focus == focusSidebar:
		commands = []cmd{
			{"1-4", "Screen"},
			{"j/k", "Select"},
			{"enter", "Open"},
			{"r", "Reload"},
			{"q", "Quit"},
			{"?", "More"},
		}
	case m.screen == ScreenAdd:
		commands = []cmd{
			{"tab", "Next field"},
			{"←/→", "Status"},
			{"ctrl+s", "Add"},
			{"esc", "Menu"},
		}
	case m.screen == ScreenManage && m.manage.searching:
		commands = []cmd{
			{"enter", "Keep filter"},
			{"esc", "Clear"},
		}
	case m.screen == ScreenManage && m.manage.editID != "":
		commands = []cmd{
			{"tab", "Next field"},
			{"←/→", "Status"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}
	case m.screen == ScreenManage:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Expand"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"/", "Search"},
			{"r", "Reload"},
			{"esc", "Menu"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"r", "Reload"},
			{"esc", "Menu"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if !m.inputActive() {
		segments = append(segments,
			bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Footer.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderScreen renders the active screen body and the line that should
// stay visible.
func (m Model) renderScreen(width int) (string, int) {
	styles := m.theme.Styles()
	width = max(width-2, 10)

	var body string
	focusLine := -1
	switch m.screen {
	case ScreenAdd:
		body, focusLine = m.renderAdd(styles)
	case ScreenManage:
		body, focusLine = m.renderManage(styles, width)
	case ScreenStatistics:
		body = m.renderStatistics(styles, width)
	default:
		body = m.renderDashboard(styles, width)
	}

	const headingLines = 2
	content := styles.Title.Render(m.screen.Heading()) + "\n\n" + body
	if focusLine >= 0 {
		focusLine += headingLines
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(content), focusLine
}
