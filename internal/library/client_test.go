package library_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/library/librarytest"
)

func newClient(t *testing.T, baseURL string) *library.Client {
	t.Helper()
	c, err := library.NewClient(baseURL, library.WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestListBooks_EmptyCollectionIsNotAnError(t *testing.T) {
	srv := librarytest.NewServer(t)
	c := newClient(t, srv.APIURL())

	books, err := c.ListBooks(testContext(t))
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestListBooks_NullBodyIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	t.Cleanup(server.Close)

	books, err := newClient(t, server.URL).ListBooks(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCreateThenList_AddsExactlyOneMatchingRecord(t *testing.T) {
	srv := librarytest.NewServer(t, library.Book{Title: "Existing", Author: "Someone", Status: library.StatusReading})
	c := newClient(t, srv.APIURL())
	ctx := testContext(t)

	before, err := c.ListBooks(ctx)
	require.NoError(t, err)

	draft := library.Draft{
		Title:     "Dune",
		Author:    "Herbert",
		ISBN:      "9780441013593",
		Category:  "Science Fiction",
		Status:    library.StatusToRead,
		AddedDate: "2024-03-01T10:00:00Z",
	}
	created, err := c.CreateBook(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	after, err := c.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	var matches []library.Book
	for _, b := range after {
		if b.Title == draft.Title && b.Author == draft.Author {
			matches = append(matches, b)
		}
	}
	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, draft.ISBN, got.ISBN)
	assert.Equal(t, draft.Category, got.Category)
	assert.Equal(t, library.StatusToRead, got.Status)
	assert.NotEmpty(t, got.AddedDate)
	assert.False(t, got.ParsedAddedDate().IsZero())
}

func TestCreateBook_Non201IsServerErrorWithRawBody(t *testing.T) {
	srv := librarytest.NewServer(t)
	srv.SetCreateStatus(http.StatusOK)
	c := newClient(t, srv.APIURL())

	_, err := c.CreateBook(testContext(t), library.Draft{Title: "Dune", Status: library.StatusToRead})
	require.Error(t, err)

	var se *library.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusOK, se.StatusCode)
	assert.Contains(t, se.Body, `"title":"Dune"`)
	assert.Equal(t, strings.TrimSpace(se.Body), library.Describe(err))
}

func TestCreateBook_ValidationFailureSurfacesBody(t *testing.T) {
	srv := librarytest.NewServer(t)
	c := newClient(t, srv.APIURL())

	_, err := c.CreateBook(testContext(t), library.Draft{Author: "Nobody"})
	require.Error(t, err)
	assert.True(t, library.IsServer(err))
	assert.Contains(t, library.Describe(err), "title is required")
}

func TestCreateBook_EmptyCreatedBodyEchoesDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	got, err := newClient(t, server.URL).CreateBook(testContext(t), library.Draft{Title: "Emma", Status: library.StatusOnHold})
	require.NoError(t, err)
	assert.Equal(t, "Emma", got.Title)
	assert.Equal(t, library.StatusOnHold, got.Status)
	assert.Empty(t, got.ID)
}

func TestUpdateBook_ChangesOnlyEditableFields(t *testing.T) {
	seed := library.Book{
		ID:        "b-1",
		Title:     "Old",
		Author:    "Author",
		ISBN:      "123",
		Category:  "History",
		Status:    library.StatusToRead,
		AddedDate: "2023-01-02T03:04:05Z",
	}
	srv := librarytest.NewServer(t, seed)
	c := newClient(t, srv.APIURL())
	ctx := testContext(t)

	updated, err := c.UpdateBook(ctx, "b-1", library.Changes{Title: "New", Author: "Other", Status: library.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, library.ID("b-1"), updated.ID)

	books, err := c.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	got := books[0]
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Other", got.Author)
	assert.Equal(t, library.StatusCompleted, got.Status)
	assert.Equal(t, seed.ISBN, got.ISBN)
	assert.Equal(t, seed.Category, got.Category)
	assert.Equal(t, seed.AddedDate, got.AddedDate)
}

func TestUpdateBook_FallsBackToSentFieldsWhenNotEchoed(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"message":"Book updated"}`))
	}))
	t.Cleanup(server.Close)

	got, err := newClient(t, server.URL).UpdateBook(testContext(t), "7", library.Changes{Title: "T", Author: "A", Status: library.StatusReading})
	require.NoError(t, err)
	assert.Equal(t, library.Book{ID: "7", Title: "T", Author: "A", Status: library.StatusReading}, got)
	assert.JSONEq(t, `{"title":"T","author":"A","status":"Reading"}`, gotBody)
}

func TestDeleteBook_RemovesRecord(t *testing.T) {
	srv := librarytest.NewServer(t,
		library.Book{ID: "a", Title: "Keep"},
		library.Book{ID: "b", Title: "Drop"},
	)
	c := newClient(t, srv.APIURL())
	ctx := testContext(t)

	require.NoError(t, c.DeleteBook(ctx, "b"))

	books, err := c.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, library.ID("a"), books[0].ID)
}

func TestDeleteBook_MissingIDIsServerError(t *testing.T) {
	srv := librarytest.NewServer(t)
	c := newClient(t, srv.APIURL())

	err := c.DeleteBook(testContext(t), "missing")
	require.Error(t, err)

	var se *library.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, library.Describe(err), "Book not found")
}

func TestClient_RejectsEmptyIDs(t *testing.T) {
	c := newClient(t, "127.0.0.1:1")
	_, err := c.UpdateBook(context.Background(), " ", library.Changes{})
	assert.Error(t, err)
	assert.Error(t, c.DeleteBook(context.Background(), ""))
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newClient(t, url).ListBooks(testContext(t))
	require.Error(t, err)
	assert.True(t, library.IsNetwork(err))
	assert.False(t, library.IsServer(err))
}

func TestClient_CancelledContextIsNetworkError(t *testing.T) {
	srv := librarytest.NewServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.APIURL()).ListBooks(ctx)
	require.Error(t, err)
	assert.True(t, library.IsNetwork(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListBooks_Non200AndDecodeFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken/books":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "backend down", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)
	ctx := testContext(t)

	_, err := newClient(t, server.URL+"/down").ListBooks(ctx)
	var se *library.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "backend down", library.Describe(err))

	_, err = newClient(t, server.URL+"/broken").ListBooks(ctx)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusOK, se.StatusCode)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_SendsHeadersAndNumericIDs(t *testing.T) {
	var gotPath, gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		if r.Method == http.MethodDelete {
			gotPath = r.URL.Path
			return
		}
		_, _ = w.Write([]byte(`[{"id": 42, "title": "Numbered", "status": "on_hold"}]`))
	}))
	t.Cleanup(server.Close)
	c := newClient(t, server.URL+"/api/")
	ctx := testContext(t)

	books, err := c.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, library.ID("42"), books[0].ID)
	assert.Equal(t, library.StatusOnHold, books[0].Status)

	require.NoError(t, c.DeleteBook(ctx, books[0].ID))
	assert.Equal(t, "/api/books/42", gotPath)
	assert.True(t, strings.HasPrefix(gotUA, "shelf/"), "User-Agent = %q", gotUA)
	assert.Equal(t, "application/json", gotAccept)
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	c, err := library.NewClient("localhost:5000/api/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", c.BaseURL())

	_, err = library.NewClient("")
	assert.Error(t, err)
	_, err = library.NewClient("ftp://example.com")
	assert.Error(t, err)
}
