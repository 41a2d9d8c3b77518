package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/presenter"
)

// Add form fields in focus order. Text inputs come first.
const (
	addFieldTitle = iota
	addFieldAuthor
	addFieldISBN
	addFieldCategory
	addFieldStatus
	addFieldSubmit
	addFieldCount
)

// addState holds the add-book form.
type addState struct {
	inputs     [addFieldStatus]textinput.Model
	form       presenter.AddForm
	field      int
	submitting bool
	notice     presenter.Notice
}

func newAddState(t Theme) addState {
	var a addState
	a.inputs[addFieldTitle] = newTextInput("Book title", 200, t)
	a.inputs[addFieldAuthor] = newTextInput("Author name", 200, t)
	a.inputs[addFieldISBN] = newTextInput("ISBN", 20, t)
	a.inputs[addFieldCategory] = newTextInput("e.g. Fiction, History", 100, t)
	return a
}

func (a *addState) applyTheme(t Theme) {
	for i := range a.inputs {
		styleInput(&a.inputs[i], t)
	}
}

// focusField moves focus to field i.
func (a *addState) focusField(i int) {
	a.blur()
	a.field = i
	if i < len(a.inputs) {
		a.inputs[i].Focus()
	}
}

func (a *addState) blur() {
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
}

// current returns the form with the typed values.
func (a addState) current() presenter.AddForm {
	f := a.form
	f.Title = a.inputs[addFieldTitle].Value()
	f.Author = a.inputs[addFieldAuthor].Value()
	f.ISBN = a.inputs[addFieldISBN].Value()
	f.Category = a.inputs[addFieldCategory].Value()
	return f
}

// handleAddKey processes input while the add form has focus.
func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	a := &m.add
	switch {
	case key.Matches(msg, m.keys.Escape):
		a.blur()
		m.focus = focusSidebar
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitAdd()
	case key.Matches(msg, m.keys.NextField):
		a.focusField((a.field + 1) % addFieldCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		a.focusField((a.field - 1 + addFieldCount) % addFieldCount)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if a.field == addFieldSubmit {
			return m.submitAdd()
		}
		a.focusField(a.field + 1)
		return m, nil
	}

	switch {
	case a.field == addFieldStatus && key.Matches(msg, m.keys.Left):
		a.form.CycleStatus(-1)
		return m, nil
	case a.field == addFieldStatus && key.Matches(msg, m.keys.Right):
		a.form.CycleStatus(1)
		return m, nil
	case a.field < len(a.inputs):
		var cmd tea.Cmd
		a.inputs[a.field], cmd = a.inputs[a.field].Update(msg)
		return m, cmd
	}
	return m, nil
}

// submitAdd sends the form. The typed values stay in place afterwards.
func (m Model) submitAdd() (Model, tea.Cmd) {
	if m.add.submitting {
		return m, nil
	}
	m.add.submitting = true
	m.add.notice = presenter.Notice{}
	return m, m.createCmd(m.add.current())
}

// renderAdd renders the add-book form.
func (m Model) renderAdd(styles Styles) (string, int) {
	a := m.add
	focused := func(i int) bool { return m.focus == focusContent && a.field == i }

	labels := [...]string{"Title", "Author", "ISBN", "Category"}
	var lines []string
	focusLine := -1
	for i, label := range labels {
		if focused(i) {
			focusLine = len(lines)
		}
		lines = append(lines, renderField(styles, label, a.inputs[i].View(), focused(i)), "")
	}

	if focused(addFieldStatus) {
		focusLine = len(lines)
	}
	lines = append(lines,
		renderField(styles, "Status", renderStatusPicker(styles, string(a.form.Status()), focused(addFieldStatus)), focused(addFieldStatus)),
		"")

	if focused(addFieldSubmit) {
		focusLine = len(lines)
	}
	lines = append(lines, strings.Repeat(" ", formLabelWidth+1)+renderButton(styles, "Add Book", focused(addFieldSubmit)))

	switch {
	case a.submitting:
		lines = append(lines, "", styles.MutedText.Render("Adding book..."))
	case !a.notice.IsZero():
		lines = append(lines, "", renderNotice(styles, a.notice))
	}

	if m.focus == focusSidebar {
		lines = append(lines, "", styles.FaintText.Render("Press enter to fill in the form."))
	}
	return strings.Join(lines, "\n"), focusLine
}
