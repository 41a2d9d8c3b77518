package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/presenter"
)

// Load messages carry the sequence number of the reload that issued them.

type dashboardMsg struct {
	seq       uint64
	dashboard presenter.Dashboard
	err       error
}

type statisticsMsg struct {
	seq   uint64
	stats presenter.Statistics
	err   error
}

type booksMsg struct {
	seq   uint64
	books []library.Book
	err   error
}

// Action messages carry the screen visit that issued them.

type bookCreatedMsg struct {
	visit  uint64
	book   library.Book
	notice presenter.Notice
}

type bookEditedMsg struct {
	visit  uint64
	result presenter.ActionResult
}

type bookDeletedMsg struct {
	visit  uint64
	result presenter.ActionResult
}

// requester runs one backend call per command with its own deadline.
type requester struct {
	ctx     context.Context
	timeout time.Duration
	store   library.Store
	logger  *slog.Logger
}

func (m Model) requester() requester {
	return requester{ctx: m.ctx, timeout: m.timeout, store: m.store, logger: m.logger}
}

func (r requester) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.ctx, r.timeout)
}

// loadCmd fetches the collection for screen s.
func (m Model) loadCmd(s Screen, seq uint64) tea.Cmd {
	if m.store == nil {
		return nil
	}
	r := m.requester()
	switch s {
	case ScreenDashboard:
		return func() tea.Msg {
			ctx, cancel := r.context()
			defer cancel()
			d, err := presenter.LoadDashboard(ctx, r.store)
			r.logFailure("load dashboard", err)
			return dashboardMsg{seq: seq, dashboard: d, err: err}
		}
	case ScreenStatistics:
		return func() tea.Msg {
			ctx, cancel := r.context()
			defer cancel()
			st, err := presenter.LoadStatistics(ctx, r.store)
			r.logFailure("load statistics", err)
			return statisticsMsg{seq: seq, stats: st, err: err}
		}
	case ScreenManage:
		return func() tea.Msg {
			ctx, cancel := r.context()
			defer cancel()
			books, err := r.store.ListBooks(ctx)
			r.logFailure("load books", err)
			return booksMsg{seq: seq, books: books, err: err}
		}
	}
	return nil
}

// createCmd submits the add form.
func (m Model) createCmd(form presenter.AddForm) tea.Cmd {
	if m.store == nil {
		return nil
	}
	r := m.requester()
	visit := m.visit
	now := m.now()
	return func() tea.Msg {
		ctx, cancel := r.context()
		defer cancel()
		book, notice := form.Submit(ctx, r.store, now)
		if notice.Kind == presenter.NoticeSuccess {
			r.logger.Info("book added", "id", book.ID, "title", book.Title)
		}
		return bookCreatedMsg{visit: visit, book: book, notice: notice}
	}
}

// editCmd submits an edit form.
func (m Model) editCmd(form presenter.EditForm) tea.Cmd {
	if m.store == nil {
		return nil
	}
	r := m.requester()
	visit := m.visit
	return func() tea.Msg {
		ctx, cancel := r.context()
		defer cancel()
		res := presenter.SubmitEdit(ctx, r.store, form)
		if res.OK {
			r.logger.Info("book updated", "id", res.ID)
		}
		return bookEditedMsg{visit: visit, result: res}
	}
}

// deleteCmd removes a book without asking for confirmation.
func (m Model) deleteCmd(id library.ID) tea.Cmd {
	if m.store == nil {
		return nil
	}
	r := m.requester()
	visit := m.visit
	return func() tea.Msg {
		ctx, cancel := r.context()
		defer cancel()
		res := presenter.RemoveBook(ctx, r.store, id)
		if res.OK {
			r.logger.Info("book deleted", "id", id)
		}
		return bookDeletedMsg{visit: visit, result: res}
	}
}

func (r requester) logFailure(op string, err error) {
	if err == nil {
		return
	}
	r.logger.Warn(op+" failed", "error", err, "network", library.IsNetwork(err))
}
