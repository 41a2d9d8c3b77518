package presenter

import (
	"sort"

	"github.com/five82/shelf/internal/library"
)

// UnrecognizedLabel names the bucket for statuses outside the enum.
const UnrecognizedLabel = "Unrecognized"

// Slice is one wedge of a proportion chart.
type Slice struct {
	Label string
	Count int
	Share float64 // 0..1
}

// PieChart describes a proportion chart.
type PieChart struct {
	Title  string
	Total  int
	Slices []Slice
}

// Bar is one bar of a bar chart.
type Bar struct {
	Label string
	Count int
}

// BarChart maps labels to counts.
type BarChart struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

// Max returns the largest bar count.
func (c BarChart) Max() int {
	max := 0
	for _, b := range c.Bars {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Point is one period of a line chart.
type Point struct {
	Period string // YYYY-MM
	Count  int
}

// LineChart maps chronological periods to counts.
type LineChart struct {
	Title  string
	Points []Point
}

// Max returns the largest point count.
func (c LineChart) Max() int {
	max := 0
	for _, p := range c.Points {
		if p.Count > max {
			max = p.Count
		}
	}
	return max
}

// StatusPie counts books per status. Slices follow enum order and only
// include statuses present in books; unrecognized statuses share one
// trailing slice so the counts always sum to len(books).
func StatusPie(title string, books []library.Book) PieChart {
	counts := make(map[library.Status]int, 4)
	unknown := 0
	for _, b := range books {
		if b.Status.Valid() {
			counts[b.Status]++
			continue
		}
		unknown++
	}

	chart := PieChart{Title: title, Total: len(books)}
	for _, s := range library.Statuses() {
		if n := counts[s]; n > 0 {
			chart.Slices = append(chart.Slices, Slice{Label: string(s), Count: n})
		}
	}
	if unknown > 0 {
		chart.Slices = append(chart.Slices, Slice{Label: UnrecognizedLabel, Count: unknown})
	}
	if chart.Total > 0 {
		for i := range chart.Slices {
			chart.Slices[i].Share = float64(chart.Slices[i].Count) / float64(chart.Total)
		}
	}
	return chart
}

// CategoryBars counts books per category, largest first, ties in the order
// the category first appears.
func CategoryBars(title string, books []library.Book) BarChart {
	index := make(map[string]int)
	var bars []Bar
	for _, b := range books {
		i, ok := index[b.Category]
		if !ok {
			i = len(bars)
			index[b.Category] = i
			bars = append(bars, Bar{Label: b.Category})
		}
		bars[i].Count++
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Count > bars[j].Count
	})
	return BarChart{Title: title, XLabel: "Category", YLabel: "Books", Bars: bars}
}

// MonthlyLine counts books per calendar month of added_date in
// chronological order. Books without a parseable date are skipped and
// counted in the second return value.
func MonthlyLine(title string, books []library.Book) (LineChart, int) {
	counts := make(map[string]int)
	undated := 0
	for _, b := range books {
		t := b.ParsedAddedDate()
		if t.IsZero() {
			undated++
			continue
		}
		counts[t.Format("2006-01")]++
	}
	periods := make([]string, 0, len(counts))
	for p := range counts {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	chart := LineChart{Title: title, Points: make([]Point, 0, len(periods))}
	for _, p := range periods {
		chart.Points = append(chart.Points, Point{Period: p, Count: counts[p]})
	}
	return chart, undated
}
