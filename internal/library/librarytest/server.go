// Package librarytest provides an in-memory books backend for tests.
package librarytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/shelf/internal/library"
)

// Server is an httptest-backed implementation of the /books resource.
// Books are kept in insertion order.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	books []library.Book

	createStatus int
	failStatus   int
	failBody     string
	requestCount int
}

// SetCreateStatus overrides the status POST answers with after storing the
// book. Zero restores 201.
func (s *Server) SetCreateStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createStatus = status
}

// FailWith makes every request answer status with body. Zero status
// restores normal handling.
func (s *Server) FailWith(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failBody = body
}

// NewServer starts a backend under /api and registers cleanup with t.
func NewServer(t interface{ Cleanup(func()) }, seed ...library.Book) *Server {
	s := &Server{}
	for _, b := range seed {
		if b.ID == "" {
			b.ID = library.ID(uuid.NewString())
		}
		s.books = append(s.books, b)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/books", s.handleCollection)
	mux.HandleFunc("/api/books/", s.handleItem)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// APIURL is the root to hand to library.NewClient.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// Books returns a copy of the stored books.
func (s *Server) Books() []library.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]library.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Requests returns how many requests the server has handled.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

func (s *Server) fail(w http.ResponseWriter) bool {
	s.mu.Lock()
	s.requestCount++
	status, body := s.failStatus, s.failBody
	s.mu.Unlock()
	if status == 0 {
		return false
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
	return true
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	if s.fail(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.Books())
	case http.MethodPost:
		var draft library.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(draft.Title) == "" {
			http.Error(w, `{"error":"title is required"}`, http.StatusBadRequest)
			return
		}
		book := library.Book{
			ID:        library.ID(uuid.NewString()),
			Title:     draft.Title,
			Author:    draft.Author,
			ISBN:      draft.ISBN,
			Category:  draft.Category,
			Status:    draft.Status,
			AddedDate: draft.AddedDate,
		}
		s.mu.Lock()
		s.books = append(s.books, book)
		status := s.createStatus
		s.mu.Unlock()
		if status == 0 {
			status = http.StatusCreated
		}
		writeJSON(w, status, book)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	if s.fail(w) {
		return
	}
	id := library.ID(strings.TrimPrefix(r.URL.Path, "/api/books/"))

	switch r.Method {
	case http.MethodPut:
		var changes library.Changes
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		idx := s.indexOf(id)
		if idx < 0 {
			s.mu.Unlock()
			http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
			return
		}
		book := s.books[idx]
		book.Title = changes.Title
		book.Author = changes.Author
		book.Status = changes.Status
		s.books[idx] = book
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, book)
	case http.MethodDelete:
		s.mu.Lock()
		idx := s.indexOf(id)
		if idx < 0 {
			s.mu.Unlock()
			http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
			return
		}
		s.books = append(s.books[:idx], s.books[idx+1:]...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// indexOf must be called with mu held.
func (s *Server) indexOf(id library.ID) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
