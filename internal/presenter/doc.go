// Package presenter turns the books collection into view models for the
// four screens: dashboard, add, manage and statistics.
//
// Nothing here is cached. Every Load function and Manage.Reload fetches the
// whole collection again, and views are rebuilt from what came back.
//
// I/O helpers (SubmitEdit, RemoveBook, AddForm.Submit, the Load functions)
// do not touch shared state, so the UI can run them inside commands and
// hand the results back to Manage on its own goroutine.
package presenter
