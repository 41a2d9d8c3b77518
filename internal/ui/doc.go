// Package ui provides the Bubble Tea terminal interface for shelf.
//
// # Layout
//
//	┌──────────────────────────────────────────────────┐
//	│ Personal Library Manager  LOCAL  <base url>      │ header
//	├────────────┬─────────────────────────────────────┤
//	│ Navigation │ <screen heading>                    │
//	│ (•) 1 ...  │ <screen content in a viewport>      │
//	│ ( ) 2 ...  │                                     │
//	├────────────┴─────────────────────────────────────┤
//	│ key hints                                        │ command bar
//	└──────────────────────────────────────────────────┘
//
// # Screens
//
//   - Dashboard: five most recent books and a status proportion chart
//   - Add Book: form for title, author, ISBN, category and status
//   - Manage Books: searchable list with expandable rows, inline edit, delete
//   - Statistics: books per category and books added per month
//
// Exactly one screen is active. Selecting a screen rebuilds its state and
// fetches the collection again; nothing is cached between visits.
//
// # Requests
//
// Backend calls run inside tea.Cmd functions with their own deadline.
// Collection loads carry a sequence number and responses from superseded
// loads are dropped. Add, edit and delete results carry the screen visit
// they started in and are dropped once the user has moved on.
//
// # Focus
//
// Keys go to the sidebar until enter moves focus to the content. While a
// text input has focus it receives every key except ctrl+c; esc hands
// focus back.
package ui
