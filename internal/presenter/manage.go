package presenter

import (
	"context"
	"strings"

	"github.com/five82/shelf/internal/library"
)

// EditForm holds the inline edit inputs for one book.
type EditForm struct {
	ID          library.ID
	Title       string
	Author      string
	StatusIndex int
	// Original is set when the stored status was outside the enum and the
	// form fell back to the first status.
	Original library.Status
}

// Status returns the selected status.
func (f EditForm) Status() library.Status { return statusAt(f.StatusIndex) }

// CycleStatus moves the selection by delta, wrapping around.
func (f *EditForm) CycleStatus(delta int) {
	f.StatusIndex = cycleIndex(f.StatusIndex, delta)
}

// Changes builds the update payload.
func (f EditForm) Changes() library.Changes {
	return library.Changes{Title: f.Title, Author: f.Author, Status: f.Status()}
}

// NewEditForm pre-fills a form from book.
func NewEditForm(book library.Book) EditForm {
	form := EditForm{ID: book.ID, Title: book.Title, Author: book.Author}
	if i := book.Status.Index(); i >= 0 {
		form.StatusIndex = i
	} else {
		form.Original = book.Status
	}
	return form
}

// ActionResult reports a finished update or delete.
type ActionResult struct {
	ID     library.ID
	OK     bool
	Book   library.Book
	Notice Notice
}

// SubmitEdit sends form to the backend.
func SubmitEdit(ctx context.Context, u Updater, form EditForm) ActionResult {
	book, err := u.UpdateBook(ctx, form.ID, form.Changes())
	if err != nil {
		return ActionResult{ID: form.ID, Notice: failure("Error updating book: ", err)}
	}
	return ActionResult{ID: form.ID, OK: true, Book: book, Notice: success("Book updated successfully!")}
}

// RemoveBook deletes id. There is no confirmation step.
func RemoveBook(ctx context.Context, d Deleter, id library.ID) ActionResult {
	if err := d.DeleteBook(ctx, id); err != nil {
		return ActionResult{ID: id, Notice: failure("Error deleting book: ", err)}
	}
	return ActionResult{ID: id, OK: true, Notice: success("Book deleted successfully!")}
}

// Filter keeps books whose title or author contains term, ignoring case.
// An empty term keeps everything. Order is preserved.
func Filter(books []library.Book, term string) []library.Book {
	if term == "" {
		return books
	}
	needle := strings.ToLower(term)
	out := make([]library.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) {
			out = append(out, b)
		}
	}
	return out
}

// Manage is the view model for the manage screen. Row state is keyed by
// book id so it survives reloads and filtering.
type Manage struct {
	books    []library.Book
	loaded   bool
	search   string
	expanded map[library.ID]bool
	editing  map[library.ID]*EditForm
	notices  map[library.ID]Notice
	banner   Notice
}

// NewManage returns an empty manage screen.
func NewManage() *Manage {
	return &Manage{
		expanded: make(map[library.ID]bool),
		editing:  make(map[library.ID]*EditForm),
		notices:  make(map[library.ID]Notice),
	}
}

// Reload fetches the collection and applies it.
func (m *Manage) Reload(ctx context.Context, l Lister) error {
	books, err := l.ListBooks(ctx)
	if err != nil {
		return err
	}
	m.SetBooks(books)
	return nil
}

// SetBooks replaces the collection and drops row state for ids that are
// gone.
func (m *Manage) SetBooks(books []library.Book) {
	m.books = books
	m.loaded = true
	present := make(map[library.ID]struct{}, len(books))
	for _, b := range books {
		present[b.ID] = struct{}{}
	}
	for id := range m.expanded {
		if _, ok := present[id]; !ok {
			delete(m.expanded, id)
		}
	}
	for id := range m.editing {
		if _, ok := present[id]; !ok {
			delete(m.editing, id)
		}
	}
	for id := range m.notices {
		if _, ok := present[id]; !ok {
			delete(m.notices, id)
		}
	}
}

// Books returns the full collection.
func (m *Manage) Books() []library.Book { return m.books }

// Loaded reports whether a fetch has succeeded.
func (m *Manage) Loaded() bool { return m.loaded }

// Empty reports whether the loaded collection has no books.
func (m *Manage) Empty() bool { return m.loaded && len(m.books) == 0 }

// SetSearch sets the filter term.
func (m *Manage) SetSearch(term string) { m.search = term }

// Search returns the filter term.
func (m *Manage) Search() string { return m.search }

// Visible returns the books matching the current search.
func (m *Manage) Visible() []library.Book { return Filter(m.books, m.search) }

// Find returns the loaded book with id.
func (m *Manage) Find(id library.ID) (library.Book, bool) {
	for _, b := range m.books {
		if b.ID == id {
			return b, true
		}
	}
	return library.Book{}, false
}

// Expanded reports whether the row for id shows its details.
func (m *Manage) Expanded(id library.ID) bool { return m.expanded[id] }

// ToggleExpanded flips the detail view for id.
func (m *Manage) ToggleExpanded(id library.ID) {
	if m.expanded[id] {
		delete(m.expanded, id)
		return
	}
	m.expanded[id] = true
}

// Editing returns the open edit form for id.
func (m *Manage) Editing(id library.ID) (*EditForm, bool) {
	f, ok := m.editing[id]
	return f, ok
}

// BeginEdit opens an edit form for id, reusing one that is already open.
func (m *Manage) BeginEdit(id library.ID) (*EditForm, bool) {
	if f, ok := m.editing[id]; ok {
		return f, true
	}
	book, ok := m.Find(id)
	if !ok {
		return nil, false
	}
	form := NewEditForm(book)
	m.editing[id] = &form
	m.expanded[id] = true
	if form.Original != "" {
		m.notices[id] = info("Unrecognized status \"" + string(form.Original) + "\"; defaulting to " + string(form.Status()) + ".")
	} else {
		delete(m.notices, id)
	}
	return &form, true
}

// CancelEdit closes the edit form for id.
func (m *Manage) CancelEdit(id library.ID) {
	delete(m.editing, id)
}

// Notice returns the inline message for id.
func (m *Manage) Notice(id library.ID) Notice { return m.notices[id] }

// Banner returns the message for a row that no longer exists.
func (m *Manage) Banner() Notice { return m.banner }

// ClearBanner drops the banner message.
func (m *Manage) ClearBanner() { m.banner = Notice{} }

// ApplyEdit records an update result. A successful save closes the form;
// a failed one keeps it open with the inputs intact.
func (m *Manage) ApplyEdit(res ActionResult) {
	m.notices[res.ID] = res.Notice
	if res.OK {
		delete(m.editing, res.ID)
	}
}

// ApplyDelete records a delete result.
func (m *Manage) ApplyDelete(res ActionResult) {
	if !res.OK {
		m.notices[res.ID] = res.Notice
		return
	}
	delete(m.expanded, res.ID)
	delete(m.editing, res.ID)
	delete(m.notices, res.ID)
	m.banner = res.Notice
}

// SaveEdit submits the open form for id and applies the result.
func (m *Manage) SaveEdit(ctx context.Context, u Updater, id library.ID) Notice {
	form, ok := m.editing[id]
	if !ok {
		return Notice{}
	}
	res := SubmitEdit(ctx, u, *form)
	m.ApplyEdit(res)
	return res.Notice
}

// Delete removes id and applies the result.
func (m *Manage) Delete(ctx context.Context, d Deleter, id library.ID) Notice {
	res := RemoveBook(ctx, d, id)
	m.ApplyDelete(res)
	return res.Notice
}
