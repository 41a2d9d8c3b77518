package presenter

import (
	"context"

	"github.com/five82/shelf/internal/library"
)

// RecentLimit is how many books the dashboard lists.
const RecentLimit = 5

// RecentRow is the dashboard projection of a book.
type RecentRow struct {
	ID        library.ID
	Title     string
	Author    string
	Status    library.Status
	AddedDate string
}

// Dashboard is the view model for the dashboard screen.
type Dashboard struct {
	Empty       bool
	Total       int
	Recent      []RecentRow
	StatusChart PieChart
}

// BuildDashboard projects the first RecentLimit books, in the order the
// backend returned them, and aggregates statuses.
func BuildDashboard(books []library.Book) Dashboard {
	if len(books) == 0 {
		return Dashboard{Empty: true}
	}
	n := min(len(books), RecentLimit)
	recent := make([]RecentRow, 0, n)
	for _, b := range books[:n] {
		recent = append(recent, RecentRow{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Status:    b.Status,
			AddedDate: b.AddedDate,
		})
	}
	return Dashboard{
		Total:       len(books),
		Recent:      recent,
		StatusChart: StatusPie("Books by Status", books),
	}
}

// LoadDashboard fetches the collection and builds the dashboard.
func LoadDashboard(ctx context.Context, l Lister) (Dashboard, error) {
	books, err := l.ListBooks(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(books), nil
}
