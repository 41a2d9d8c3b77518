package presenter_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/library/librarytest"
	"github.com/five82/shelf/internal/presenter"
)

func newClient(t *testing.T, srv *librarytest.Server) *library.Client {
	t.Helper()
	c, err := library.NewClient(srv.APIURL(), library.WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func sampleBooks() []library.Book {
	return []library.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Status: library.StatusReading, AddedDate: "2024-01-15T10:00:00"},
		{ID: "2", Title: "Emma", Author: "Jane Austen", Category: "Classic", Status: library.StatusCompleted, AddedDate: "2024-01-20T10:00:00"},
		{ID: "3", Title: "Neuromancer", Author: "William Gibson", Category: "Sci-Fi", Status: library.StatusToRead, AddedDate: "2024-03-02"},
		{ID: "4", Title: "Hyperion", Author: "Dan Simmons", Category: "Sci-Fi", Status: library.StatusReading, AddedDate: "not a date"},
		{ID: "5", Title: "Persuasion", Author: "Jane Austen", Category: "Classic", Status: "Abandoned", AddedDate: "2023-12-31T23:00:00Z"},
		{ID: "6", Title: "Ubik", Author: "Philip K. Dick", Category: "Sci-Fi", Status: library.StatusOnHold, AddedDate: "2024-03-10T08:00:00Z"},
	}
}

func TestLoadDashboard_EmptyBackend(t *testing.T) {
	srv := librarytest.NewServer(t)

	d, err := presenter.LoadDashboard(testContext(t), newClient(t, srv))
	require.NoError(t, err)
	assert.True(t, d.Empty)
	assert.Empty(t, d.Recent)
	assert.Empty(t, d.StatusChart.Slices)
}

func TestLoadDashboard_FetchError(t *testing.T) {
	srv := librarytest.NewServer(t)
	srv.FailWith(http.StatusInternalServerError, "boom")

	_, err := presenter.LoadDashboard(testContext(t), newClient(t, srv))
	require.Error(t, err)
	n := presenter.FetchErrorNotice(true, err)
	assert.Equal(t, presenter.NoticeError, n.Kind)
	assert.Equal(t, "Error fetching books: boom", n.Text)
	assert.Equal(t, "Error: boom", presenter.FetchErrorNotice(false, err).Text)
}

func TestBuildDashboard_RecentAndStatusSlices(t *testing.T) {
	d := presenter.BuildDashboard(sampleBooks())

	assert.False(t, d.Empty)
	assert.Equal(t, 6, d.Total)
	require.Len(t, d.Recent, presenter.RecentLimit)
	assert.Equal(t, "Dune", d.Recent[0].Title)
	assert.Equal(t, "Persuasion", d.Recent[4].Title)

	labels := make([]string, 0, len(d.StatusChart.Slices))
	sum := 0
	for _, s := range d.StatusChart.Slices {
		labels = append(labels, s.Label)
		sum += s.Count
	}
	assert.Equal(t, []string{"To Read", "Reading", "Completed", "On Hold", presenter.UnrecognizedLabel}, labels)
	assert.Equal(t, len(sampleBooks()), sum)
	assert.InDelta(t, 2.0/6.0, d.StatusChart.Slices[1].Share, 1e-9)
}

func TestStatusPie_OmitsMissingStatuses(t *testing.T) {
	books := []library.Book{
		{Status: library.StatusCompleted},
		{Status: library.StatusCompleted},
	}
	pie := presenter.StatusPie("x", books)
	require.Len(t, pie.Slices, 1)
	assert.Equal(t, "Completed", pie.Slices[0].Label)
	assert.InDelta(t, 1.0, pie.Slices[0].Share, 1e-9)
}

func TestBuildStatistics(t *testing.T) {
	s := presenter.BuildStatistics(sampleBooks())

	require.Len(t, s.Categories.Bars, 2)
	assert.Equal(t, presenter.Bar{Label: "Sci-Fi", Count: 4}, s.Categories.Bars[0])
	assert.Equal(t, presenter.Bar{Label: "Classic", Count: 2}, s.Categories.Bars[1])
	assert.Equal(t, 4, s.Categories.Max())

	assert.Equal(t, []presenter.Point{
		{Period: "2023-12", Count: 1},
		{Period: "2024-01", Count: 2},
		{Period: "2024-03", Count: 2},
	}, s.Growth.Points)
	assert.Equal(t, 1, s.UndatedCount)
}

func TestCategoryBars_TiesKeepFirstSeenOrder(t *testing.T) {
	books := []library.Book{{Category: "B"}, {Category: "A"}, {Category: "C"}, {Category: "C"}}
	bars := presenter.CategoryBars("x", books).Bars
	require.Len(t, bars, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{bars[0].Label, bars[1].Label, bars[2].Label})
}

func TestBuildStatistics_Empty(t *testing.T) {
	s := presenter.BuildStatistics(nil)
	assert.True(t, s.Empty)
	assert.Empty(t, s.Categories.Bars)
}

func TestAddForm_SubmitThenDashboardShowsBook(t *testing.T) {
	srv := librarytest.NewServer(t)
	c := newClient(t, srv)
	ctx := testContext(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	form := presenter.AddForm{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", Category: "Sci-Fi"}
	form.CycleStatus(1)
	require.Equal(t, library.StatusReading, form.Status())

	book, notice := form.Submit(ctx, c, now)
	assert.Equal(t, presenter.NoticeSuccess, notice.Kind)
	assert.Equal(t, "Book added successfully!", notice.Text)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", form.Title)

	stored := srv.Books()
	require.Len(t, stored, 1)
	assert.Equal(t, library.FormatTimestamp(now), stored[0].AddedDate)

	d, err := presenter.LoadDashboard(ctx, c)
	require.NoError(t, err)
	require.Len(t, d.Recent, 1)
	assert.Equal(t, "Dune", d.Recent[0].Title)
	require.Len(t, d.StatusChart.Slices, 1)
	assert.Equal(t, "Reading", d.StatusChart.Slices[0].Label)

	s, err := presenter.LoadStatistics(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, []presenter.Point{{Period: "2024-05", Count: 1}}, s.Growth.Points)
}

func TestAddForm_SubmitFailureKeepsInputs(t *testing.T) {
	srv := librarytest.NewServer(t)
	c := newClient(t, srv)

	form := presenter.AddForm{Author: "Nobody"}
	_, notice := form.Submit(testContext(t), c, time.Now())
	assert.Equal(t, presenter.NoticeError, notice.Kind)
	assert.True(t, strings.HasPrefix(notice.Text, "Error adding book: "))
	assert.Contains(t, notice.Text, "title is required")
	assert.Equal(t, "Nobody", form.Author)
	assert.Empty(t, srv.Books())
}

func TestAddForm_CycleStatusWraps(t *testing.T) {
	var form presenter.AddForm
	form.CycleStatus(-1)
	assert.Equal(t, library.StatusOnHold, form.Status())
	form.CycleStatus(1)
	assert.Equal(t, library.StatusToRead, form.Status())
}

func TestFilter(t *testing.T) {
	books := sampleBooks()

	assert.Equal(t, books, presenter.Filter(books, ""))

	got := presenter.Filter(books, "AUSTEN")
	require.Len(t, got, 2)
	assert.Equal(t, "Emma", got[0].Title)
	assert.Equal(t, "Persuasion", got[1].Title)

	assert.Equal(t, presenter.Filter(books, "dune"), presenter.Filter(books, "DuNe"))
	once := presenter.Filter(books, "an")
	assert.Equal(t, once, presenter.Filter(once, "an"))
	assert.Empty(t, presenter.Filter(books, "zzz"))
}

func TestManage_EditAndDelete(t *testing.T) {
	srv := librarytest.NewServer(t, library.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Status: library.StatusToRead})
	c := newClient(t, srv)
	ctx := testContext(t)

	m := presenter.NewManage()
	require.NoError(t, m.Reload(ctx, c))
	require.Len(t, m.Visible(), 1)
	id := m.Visible()[0].ID

	form, ok := m.BeginEdit(id)
	require.True(t, ok)
	assert.True(t, m.Expanded(id))
	form.Title = "Dune Messiah"
	form.CycleStatus(2)

	notice := m.SaveEdit(ctx, c, id)
	assert.Equal(t, "Book updated successfully!", notice.Text)
	_, open := m.Editing(id)
	assert.False(t, open)
	assert.Equal(t, notice, m.Notice(id))

	require.NoError(t, m.Reload(ctx, c))
	book, ok := m.Find(id)
	require.True(t, ok)
	assert.Equal(t, "Dune Messiah", book.Title)
	assert.Equal(t, library.StatusCompleted, book.Status)
	assert.Equal(t, "Sci-Fi", book.Category)

	notice = m.Delete(ctx, c, id)
	assert.Equal(t, "Book deleted successfully!", notice.Text)
	assert.Equal(t, notice, m.Banner())
	require.NoError(t, m.Reload(ctx, c))
	assert.True(t, m.Empty())
	assert.Empty(t, srv.Books())
}

func TestManage_FailedSaveKeepsFormOpen(t *testing.T) {
	srv := librarytest.NewServer(t, library.Book{ID: "7", Title: "Emma", Status: library.StatusReading})
	c := newClient(t, srv)
	ctx := testContext(t)

	m := presenter.NewManage()
	require.NoError(t, m.Reload(ctx, c))
	form, ok := m.BeginEdit("7")
	require.True(t, ok)
	form.Author = "Jane Austen"

	srv.FailWith(http.StatusInternalServerError, "database offline")
	notice := m.SaveEdit(ctx, c, "7")
	assert.Equal(t, presenter.NoticeError, notice.Kind)
	assert.Equal(t, "Error updating book: database offline", notice.Text)

	open, ok := m.Editing("7")
	require.True(t, ok)
	assert.Equal(t, "Jane Austen", open.Author)
}

func TestManage_DeleteMissingBook(t *testing.T) {
	srv := librarytest.NewServer(t)
	c := newClient(t, srv)

	m := presenter.NewManage()
	notice := m.Delete(testContext(t), c, "missing")
	assert.Equal(t, presenter.NoticeError, notice.Kind)
	assert.Equal(t, "Error deleting book: {\"error\":\"Book not found\"}", notice.Text)
	assert.True(t, m.Banner().IsZero())
}

func TestManage_UnrecognizedStatusDefaultsToFirst(t *testing.T) {
	m := presenter.NewManage()
	m.SetBooks([]library.Book{{ID: "1", Title: "Odd", Status: "Abandoned"}})

	form, ok := m.BeginEdit("1")
	require.True(t, ok)
	assert.Equal(t, library.StatusToRead, form.Status())
	assert.Equal(t, library.Status("Abandoned"), form.Original)
	assert.Equal(t, presenter.NoticeInfo, m.Notice("1").Kind)
}

func TestManage_RowStateSurvivesFilterAndPrunesOnReload(t *testing.T) {
	m := presenter.NewManage()
	m.SetBooks(sampleBooks())

	m.ToggleExpanded("2")
	_, ok := m.BeginEdit("5")
	require.True(t, ok)

	m.SetSearch("dune")
	require.Len(t, m.Visible(), 1)
	m.SetSearch("")
	assert.True(t, m.Expanded("2"))
	_, ok = m.Editing("5")
	assert.True(t, ok)

	m.SetBooks(sampleBooks()[:3])
	_, ok = m.Editing("5")
	assert.False(t, ok)
	assert.True(t, m.Expanded("2"))

	m.ToggleExpanded("2")
	assert.False(t, m.Expanded("2"))
	m.CancelEdit("2")
	_, ok = m.BeginEdit("missing")
	assert.False(t, ok)
}

func TestManage_ReloadErrorKeepsPreviousBooks(t *testing.T) {
	srv := librarytest.NewServer(t, library.Book{Title: "Dune"})
	c := newClient(t, srv)
	ctx := testContext(t)

	m := presenter.NewManage()
	require.NoError(t, m.Reload(ctx, c))
	srv.FailWith(http.StatusBadGateway, "")
	require.Error(t, m.Reload(ctx, c))
	assert.Len(t, m.Books(), 1)
}
