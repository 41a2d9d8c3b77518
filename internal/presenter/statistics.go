package presenter

import (
	"context"

	"github.com/five82/shelf/internal/library"
)

// Statistics is the view model for the statistics screen.
type Statistics struct {
	Empty        bool
	Total        int
	Categories   BarChart
	Growth       LineChart
	UndatedCount int
}

// BuildStatistics aggregates categories and monthly additions.
func BuildStatistics(books []library.Book) Statistics {
	if len(books) == 0 {
		return Statistics{Empty: true}
	}
	growth, undated := MonthlyLine("Books Added Over Time", books)
	return Statistics{
		Total:        len(books),
		Categories:   CategoryBars("Number of Books by Category", books),
		Growth:       growth,
		UndatedCount: undated,
	}
}

// LoadStatistics fetches the collection and builds the statistics.
func LoadStatistics(ctx context.Context, l Lister) (Statistics, error) {
	books, err := l.ListBooks(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return BuildStatistics(books), nil
}
