package presenter

import (
	"context"

	"github.com/five82/shelf/internal/library"
)

// Lister fetches the whole collection.
type Lister interface {
	ListBooks(ctx context.Context) ([]library.Book, error)
}

// Creator adds a book.
type Creator interface {
	CreateBook(ctx context.Context, draft library.Draft) (library.Book, error)
}

// Updater edits a book.
type Updater interface {
	UpdateBook(ctx context.Context, id library.ID, changes library.Changes) (library.Book, error)
}

// Deleter removes a book.
type Deleter interface {
	DeleteBook(ctx context.Context, id library.ID) error
}

// NoticeKind classifies an inline message.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeSuccess
	NoticeError
)

// Notice is an inline message shown where an action was triggered.
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool { return n.Kind == NoticeNone && n.Text == "" }

func info(text string) Notice    { return Notice{Kind: NoticeInfo, Text: text} }
func success(text string) Notice { return Notice{Kind: NoticeSuccess, Text: text} }

func failure(prefix string, err error) Notice {
	return Notice{Kind: NoticeError, Text: prefix + library.Describe(err)}
}

// Messages shown for the empty collection.
const (
	DashboardEmptyText = "No books in your library yet. Add some books to get started!"
	EmptyText          = "No books in your library yet."
)

// FetchErrorNotice renders a failed collection fetch. The dashboard uses
// its own wording.
func FetchErrorNotice(dashboard bool, err error) Notice {
	if dashboard {
		return failure("Error fetching books: ", err)
	}
	return failure("Error: ", err)
}
