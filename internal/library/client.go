package library

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Store defines the book operations the presenters depend on.
// This interface is implemented by *Client and can be used for testing.
type Store interface {
	ListBooks(ctx context.Context) ([]Book, error)
	CreateBook(ctx context.Context, draft Draft) (Book, error)
	UpdateBook(ctx context.Context, id ID, changes Changes) (Book, error)
	DeleteBook(ctx context.Context, id ID) error
}

// Ensure Client implements Store at compile time.
var _ Store = (*Client)(nil)

// Client talks to the books REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	defaultUserAgent = "shelf/0.1"
	requestTimeout   = 10 * time.Second

	// maxBodyBytes caps how much of a response is read into memory.
	maxBodyBytes = 4 << 20
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL, e.g. http://localhost:5000/api.
// The books resource lives at {baseURL}/books.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListBooks retrieves the whole collection. An empty collection is returned
// as an empty slice, not an error.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	const op = "list books"
	resp, err := c.do(ctx, op, http.MethodGet, c.booksURL(""), nil)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, resp.serverError(op, nil)
	}
	var books []Book
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := codec.Unmarshal(resp.body, &books); err != nil {
			return nil, resp.serverError(op, fmt.Errorf("decode response: %w", err))
		}
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// CreateBook posts a new book. Only 201 Created counts as success; any other
// status surfaces the raw body as a *ServerError.
func (c *Client) CreateBook(ctx context.Context, draft Draft) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	const op = "create book"
	resp, err := c.do(ctx, op, http.MethodPost, c.booksURL(""), draft)
	if err != nil {
		return Book{}, err
	}
	if resp.status != http.StatusCreated {
		return Book{}, resp.serverError(op, nil)
	}
	created := Book{
		Title:     draft.Title,
		Author:    draft.Author,
		ISBN:      draft.ISBN,
		Category:  draft.Category,
		Status:    draft.Status,
		AddedDate: draft.AddedDate,
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return created, nil
	}
	if err := codec.Unmarshal(resp.body, &created); err != nil {
		return Book{}, resp.serverError(op, fmt.Errorf("decode response: %w", err))
	}
	return created, nil
}

// UpdateBook sends title, author and status for id. Only 200 OK counts as
// success. When the backend does not echo the book back, the returned Book
// carries the id and the sent fields.
func (c *Client) UpdateBook(ctx context.Context, id ID, changes Changes) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id.String()) == "" {
		return Book{}, fmt.Errorf("book id required")
	}
	const op = "update book"
	resp, err := c.do(ctx, op, http.MethodPut, c.booksURL(id), changes)
	if err != nil {
		return Book{}, err
	}
	if resp.status != http.StatusOK {
		return Book{}, resp.serverError(op, nil)
	}
	var echoed Book
	if err := codec.Unmarshal(resp.body, &echoed); err == nil && echoed.ID != "" {
		return echoed, nil
	}
	return Book{ID: id, Title: changes.Title, Author: changes.Author, Status: changes.Status}, nil
}

// DeleteBook removes id. Only 200 OK counts as success.
func (c *Client) DeleteBook(ctx context.Context, id ID) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id.String()) == "" {
		return fmt.Errorf("book id required")
	}
	const op = "delete book"
	resp, err := c.do(ctx, op, http.MethodDelete, c.booksURL(id), nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return resp.serverError(op, nil)
	}
	return nil
}

func (c *Client) booksURL(id ID) *url.URL {
	if id == "" {
		return c.baseURL.JoinPath("books")
	}
	return c.baseURL.JoinPath("books", id.String())
}

type response struct {
	status int
	body   []byte
}

func (r response) serverError(op string, cause error) *ServerError {
	return &ServerError{Op: op, StatusCode: r.status, Body: string(r.body), Err: cause}
}

func (c *Client) do(ctx context.Context, op, method string, target *url.URL, payload any) (response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := codec.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("path", target.Path),
			slog.Duration("elapsed", time.Since(started)),
			slog.Any("error", err))
		return response{}, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	c.logger.Log(ctx, level, "request",
		slog.String("method", method),
		slog.String("path", target.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)))

	return response{status: resp.StatusCode, body: raw}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
