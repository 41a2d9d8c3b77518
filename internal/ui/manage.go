package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/presenter"
)

// Edit form fields in focus order.
const (
	editFieldTitle = iota
	editFieldAuthor
	editFieldStatus
	editFieldSave
	editFieldCount
)

// manageState holds the manage screen: the presenter plus cursor, search
// and edit inputs.
type manageState struct {
	view       *presenter.Manage
	cursor     int
	selectedID library.ID

	searching bool
	search    textinput.Model

	editID     library.ID
	editInputs [editFieldStatus]textinput.Model
	editField  int
	saving     bool

	deleting map[library.ID]bool
}

func newManageState(t Theme) manageState {
	s := manageState{
		view:     presenter.NewManage(),
		search:   newTextInput("Search by title or author", 100, t),
		deleting: make(map[library.ID]bool),
	}
	s.editInputs[editFieldTitle] = newTextInput("Title", 200, t)
	s.editInputs[editFieldAuthor] = newTextInput("Author", 200, t)
	return s
}

func (s *manageState) applyTheme(t Theme) {
	styleInput(&s.search, t)
	for i := range s.editInputs {
		styleInput(&s.editInputs[i], t)
	}
}

// selected returns the book under the cursor.
func (s manageState) selected() (library.Book, bool) {
	visible := s.view.Visible()
	if s.cursor < 0 || s.cursor >= len(visible) {
		return library.Book{}, false
	}
	return visible[s.cursor], true
}

// moveCursor moves the selection to index i within the visible rows.
func (s *manageState) moveCursor(i int) {
	visible := s.view.Visible()
	if len(visible) == 0 {
		s.cursor = 0
		s.selectedID = ""
		return
	}
	s.cursor = min(max(i, 0), len(visible)-1)
	s.selectedID = visible[s.cursor].ID
}

// clampCursor keeps the selection on the same book when it is still
// visible.
func (s *manageState) clampCursor() {
	visible := s.view.Visible()
	for i, b := range visible {
		if b.ID == s.selectedID {
			s.cursor = i
			return
		}
	}
	s.moveCursor(s.cursor)
}

// startEditing opens the edit form for id and focuses it.
func (s *manageState) startEditing(id library.ID) bool {
	form, ok := s.view.BeginEdit(id)
	if !ok {
		return false
	}
	s.editID = id
	s.editInputs[editFieldTitle].SetValue(form.Title)
	s.editInputs[editFieldAuthor].SetValue(form.Author)
	s.focusEditField(editFieldTitle)
	return true
}

func (s *manageState) stopEditing() {
	s.editID = ""
	s.saving = false
	for i := range s.editInputs {
		s.editInputs[i].Blur()
	}
}

func (s *manageState) focusEditField(i int) {
	for j := range s.editInputs {
		s.editInputs[j].Blur()
	}
	s.editField = i
	if i < len(s.editInputs) {
		s.editInputs[i].Focus()
	}
}

// syncEdit copies the typed values into the open form.
func (s *manageState) syncEdit() *presenter.EditForm {
	form, ok := s.view.Editing(s.editID)
	if !ok {
		return nil
	}
	form.Title = s.editInputs[editFieldTitle].Value()
	form.Author = s.editInputs[editFieldAuthor].Value()
	return form
}

// handleManageKey processes list navigation and row actions.
func (m Model) handleManageKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := &m.manage
	switch {
	case key.Matches(msg, m.keys.Up):
		s.moveCursor(s.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		s.moveCursor(s.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		s.moveCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		s.moveCursor(len(s.view.Visible()) - 1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.Search):
		s.searching = true
		s.search.Focus()
	case key.Matches(msg, m.keys.Expand):
		if book, ok := s.selected(); ok {
			s.view.ToggleExpanded(book.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		if book, ok := s.selected(); ok {
			s.startEditing(book.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		book, ok := s.selected()
		if !ok || s.deleting[book.ID] {
			return m, nil
		}
		s.deleting[book.ID] = true
		s.view.ClearBanner()
		return m, m.deleteCmd(book.ID)
	}
	return m, nil
}

// handleManageInputKey processes keys while the search box or an edit
// form has focus.
func (m Model) handleManageInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := &m.manage
	if s.searching {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			s.searching = false
			s.search.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Escape):
			s.searching = false
			s.search.Blur()
			s.search.SetValue("")
			s.view.SetSearch("")
			s.clampCursor()
			return m, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.view.SetSearch(s.search.Value())
		s.clampCursor()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		s.view.CancelEdit(s.editID)
		s.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.saveEdit()
	case key.Matches(msg, m.keys.NextField):
		s.focusEditField((s.editField + 1) % editFieldCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		s.focusEditField((s.editField - 1 + editFieldCount) % editFieldCount)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if s.editField == editFieldSave {
			return m.saveEdit()
		}
		s.focusEditField(s.editField + 1)
		return m, nil
	}

	form, ok := s.view.Editing(s.editID)
	if !ok {
		s.stopEditing()
		return m, nil
	}
	switch {
	case s.editField == editFieldStatus && key.Matches(msg, m.keys.Left):
		form.CycleStatus(-1)
	case s.editField == editFieldStatus && key.Matches(msg, m.keys.Right):
		form.CycleStatus(1)
	case s.editField < len(s.editInputs):
		var cmd tea.Cmd
		s.editInputs[s.editField], cmd = s.editInputs[s.editField].Update(msg)
		s.syncEdit()
		return m, cmd
	}
	return m, nil
}

// saveEdit submits the open edit form.
func (m Model) saveEdit() (Model, tea.Cmd) {
	s := &m.manage
	if s.saving {
		return m, nil
	}
	form := s.syncEdit()
	if form == nil {
		s.stopEditing()
		return m, nil
	}
	s.saving = true
	return m, m.editCmd(*form)
}

// renderManage renders the search box and the expandable book list.
func (m Model) renderManage(styles Styles, width int) (string, int) {
	s := m.manage
	content := m.focus == focusContent

	var lines []string
	focusLine := -1

	searchValue := s.search.View()
	if !s.searching && s.search.Value() == "" {
		searchValue = styles.FaintText.Render("press / to search")
	}
	lines = append(lines, renderField(styles, "Search", searchValue, s.searching), "")

	if banner := s.view.Banner(); !banner.IsZero() {
		lines = append(lines, renderNotice(styles, banner), "")
	}

	if m.loadErr != nil {
		lines = append(lines, renderNotice(styles, presenter.FetchErrorNotice(false, m.loadErr)), "")
	}

	switch {
	case !s.view.Loaded() && m.loading:
		lines = append(lines, styles.MutedText.Render("Loading books..."))
		return strings.Join(lines, "\n"), -1
	case !s.view.Loaded():
		return strings.Join(lines, "\n"), -1
	case s.view.Empty():
		lines = append(lines, styles.InfoText.Render(presenter.EmptyText))
		return strings.Join(lines, "\n"), -1
	}

	visible := s.view.Visible()
	if len(visible) == 0 {
		lines = append(lines, styles.MutedText.Render(fmt.Sprintf("No books match %q.", s.view.Search())))
		return strings.Join(lines, "\n"), -1
	}

	for i, book := range visible {
		selected := i == s.cursor
		expanded := s.view.Expanded(book.ID)
		if selected {
			focusLine = len(lines)
		}

		marker := "▸ "
		if expanded {
			marker = "▾ "
		}
		title := truncate(fmt.Sprintf("%s by %s", book.Title, book.Author), max(width-4, 10))
		row := marker + title
		switch {
		case selected && content && !m.inputActive():
			row = styles.Selected.Render(row)
		case selected:
			row = styles.Text.Bold(true).Render(row)
		default:
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)

		if expanded {
			lines = append(lines, m.renderManageDetail(styles, book)...)
		}
	}

	hint := "enter Expand  e Edit  d Delete  / Search  r Reload"
	if s.editID != "" {
		hint = "tab Next field  ←/→ Status  enter Save  esc Cancel"
	}
	lines = append(lines, "", styles.FaintText.Render(hint))
	return strings.Join(lines, "\n"), focusLine
}

// renderManageDetail renders the expanded body of a row.
func (m Model) renderManageDetail(styles Styles, book library.Book) []string {
	s := m.manage
	const indent = "    "

	lines := []string{
		indent + renderField(styles, "Category", styles.Text.Render(book.Category), false),
		indent + renderField(styles, "Status", styles.StatusStyle(string(book.Status)).Render(string(book.Status)), false),
		indent + renderField(styles, "ISBN", styles.Text.Render(book.ISBN), false),
		indent + renderField(styles, "Added", styles.MutedText.Render(formatAdded(book.AddedDate)), false),
	}

	if form, ok := s.view.Editing(book.ID); ok && s.editID == book.ID {
		focused := func(i int) bool { return s.editField == i }
		lines = append(lines,
			"",
			indent+renderField(styles, "Title", s.editInputs[editFieldTitle].View(), focused(editFieldTitle)),
			indent+renderField(styles, "Author", s.editInputs[editFieldAuthor].View(), focused(editFieldAuthor)),
			indent+renderField(styles, "Status", renderStatusPicker(styles, string(form.Status()), focused(editFieldStatus)), focused(editFieldStatus)),
			indent+strings.Repeat(" ", formLabelWidth+1)+renderButton(styles, "Save Changes", focused(editFieldSave)),
		)
		if s.saving {
			lines = append(lines, indent+styles.MutedText.Render("Saving..."))
		}
	}

	if s.deleting[book.ID] {
		lines = append(lines, indent+styles.MutedText.Render("Deleting..."))
	}
	if n := s.view.Notice(book.ID); !n.IsZero() {
		lines = append(lines, indent+renderNotice(styles, n))
	}
	return append(lines, "")
}
