package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Screen is one of the four mutually exclusive screens.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenAdd
	ScreenManage
	ScreenStatistics
)

var screenOrder = []Screen{ScreenDashboard, ScreenAdd, ScreenManage, ScreenStatistics}

// Title returns the sidebar label.
func (s Screen) Title() string {
	switch s {
	case ScreenAdd:
		return "Add Book"
	case ScreenManage:
		return "Manage Books"
	case ScreenStatistics:
		return "Statistics"
	default:
		return "Dashboard"
	}
}

// Heading returns the title shown above the screen content.
func (s Screen) Heading() string {
	switch s {
	case ScreenAdd:
		return "Add New Book"
	case ScreenManage:
		return "Manage Books"
	case ScreenStatistics:
		return "Reading Statistics"
	default:
		return "Dashboard"
	}
}

// Next returns the following screen, wrapping around.
func (s Screen) Next() Screen {
	return screenOrder[(int(s)+1)%len(screenOrder)]
}

// Prev returns the preceding screen, wrapping around.
func (s Screen) Prev() Screen {
	return screenOrder[(int(s)-1+len(screenOrder))%len(screenOrder)]
}

// renderSidebar renders the navigation radio.
func (m Model) renderSidebar(height int) string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var b strings.Builder
	b.WriteString(bg.Render("Navigation", styles.Title))
	b.WriteString("\n\n")

	for i, s := range screenOrder {
		marker := "( )"
		style := styles.MutedText
		if s == m.screen {
			marker = "(•)"
			style = styles.Text.Bold(true)
			if m.focus == focusSidebar {
				style = styles.Selected.Bold(true)
			}
		}
		line := fmt.Sprintf("%s %d %s", marker, i+1, s.Title())
		b.WriteString(bg.Render(line, style))
		b.WriteString("\n")
	}

	border := m.theme.BorderMuted
	if m.focus == focusSidebar {
		border = m.theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Foreground(lipgloss.Color(m.theme.Text)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 1).
		Width(SidebarWidth - 1).
		Height(height).
		Render(strings.TrimRight(b.String(), "\n"))
}
