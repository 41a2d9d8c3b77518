package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/presenter"
)

const inputWidth = 40

func newTextInput(placeholder string, limit int, t Theme) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = inputWidth
	ti.Prompt = ""
	// Static cursor: no blink commands.
	ti.Cursor.SetMode(cursor.CursorStatic)
	styleInput(&ti, t)
	return ti
}

func styleInput(ti *textinput.Model, t Theme) {
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
}

// renderField renders one labelled form row.
func renderField(styles Styles, label, value string, focused bool) string {
	labelStyle := styles.MutedText
	if focused {
		labelStyle = styles.AccentText.Bold(true)
	}
	return labelStyle.Width(formLabelWidth).Render(label+":") + " " + value
}

// renderStatusPicker renders the status selector.
func renderStatusPicker(styles Styles, status string, focused bool) string {
	badge := styles.StatusStyle(status).Render(status)
	if !focused {
		return badge
	}
	return styles.AccentText.Render("‹ ") + badge + styles.AccentText.Render(" ›")
}

// renderButton renders a form button.
func renderButton(styles Styles, label string, focused bool) string {
	if focused {
		return styles.Selected.Bold(true).Render("[ " + label + " ]")
	}
	return styles.MutedText.Render("[ " + label + " ]")
}

// renderNotice renders an inline message.
func renderNotice(styles Styles, n presenter.Notice) string {
	switch n.Kind {
	case presenter.NoticeSuccess:
		return styles.SuccessText.Render("✓ " + n.Text)
	case presenter.NoticeError:
		return styles.DangerText.Render("✗ " + n.Text)
	case presenter.NoticeInfo:
		return styles.InfoText.Render("ℹ " + n.Text)
	default:
		return ""
	}
}
