// Package library provides an HTTP client for the books REST API.
//
// # Overview
//
// The backend exposes a single collection resource, /books, under a
// configurable API root. This package owns the wire types (Book, Draft,
// Changes), the status enum and the four CRUD calls the dashboard needs.
//
// # Client Usage
//
//	client, err := library.NewClient("http://localhost:5000/api",
//		library.WithTimeout(10*time.Second),
//		library.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	books, err := client.ListBooks(ctx)
//
// # API Endpoints
//
//   - GET /books: 200 with a JSON array of books
//   - POST /books: 201 with the created book
//   - PUT /books/{id}: 200; body is {title, author, status}
//   - DELETE /books/{id}: 200
//
// Each call accepts exactly one success status. Anything else, including a
// 200 where 201 is expected, is a failure.
//
// # Error Handling
//
// Two error types cover every failure:
//
//   - *NetworkError: no response arrived (dial failure, timeout, cancelled
//     context, truncated body)
//   - *ServerError: a response arrived but is not acceptable; Body holds
//     the raw response text for display
//
// An empty collection is not an error: ListBooks returns an empty slice.
// Describe renders any error as the short text shown inline in the UI.
//
// # Statuses
//
// The backend stores statuses as display labels ("To Read", "On Hold").
// Decoding normalizes common spelling variants through ParseStatus. Values
// that still do not match are kept verbatim and report Valid() == false so
// callers can flag them instead of silently rewriting them.
//
// # Identifiers
//
// Book ids are opaque. Some backends emit integers and others strings; ID
// decodes both and is written back into request paths unchanged.
//
// # Caching
//
// There is none. Every call goes to the backend; callers re-fetch whenever
// they need fresh data.
package library
