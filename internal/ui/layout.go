package ui

import "time"

// Layout dimensions.
const (
	// SidebarWidth is the width of the navigation column.
	SidebarWidth = 24

	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// chromeHeight counts the header and command bar lines.
	chromeHeight = 2

	// formLabelWidth aligns form labels.
	formLabelWidth = 11
)

// Chart dimensions.
const (
	pieBarWidth     = 40
	barChartWidth   = 36
	lineChartHeight = 8
	lineColumnWidth = 9
)

// DefaultRequestTimeout bounds a single backend call when none is configured.
const DefaultRequestTimeout = 10 * time.Second
