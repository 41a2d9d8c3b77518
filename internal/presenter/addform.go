package presenter

import (
	"context"
	"time"

	"github.com/five82/shelf/internal/library"
)

// AddForm holds the add-book inputs. The zero value selects the first
// status.
type AddForm struct {
	Title       string
	Author      string
	ISBN        string
	Category    string
	StatusIndex int
}

// Status returns the selected status.
func (f AddForm) Status() library.Status {
	return statusAt(f.StatusIndex)
}

// CycleStatus moves the selection by delta, wrapping around.
func (f *AddForm) CycleStatus(delta int) {
	f.StatusIndex = cycleIndex(f.StatusIndex, delta)
}

// Draft builds the create payload stamped with now.
func (f AddForm) Draft(now time.Time) library.Draft {
	return library.Draft{
		Title:     f.Title,
		Author:    f.Author,
		ISBN:      f.ISBN,
		Category:  f.Category,
		Status:    f.Status(),
		AddedDate: library.FormatTimestamp(now),
	}
}

// Submit creates the book. The form keeps its values either way.
func (f AddForm) Submit(ctx context.Context, c Creator, now time.Time) (library.Book, Notice) {
	book, err := c.CreateBook(ctx, f.Draft(now))
	if err != nil {
		return library.Book{}, failure("Error adding book: ", err)
	}
	return book, success("Book added successfully!")
}

func statusAt(i int) library.Status {
	statuses := library.Statuses()
	return statuses[cycleIndex(i, 0)]
}

func cycleIndex(i, delta int) int {
	n := len(library.Statuses())
	return ((i+delta)%n + n) % n
}
