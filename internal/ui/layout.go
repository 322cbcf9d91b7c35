package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSplitWidth is the minimum width for side-by-side panels.
	LayoutSplitWidth = 100

	// LayoutEndpointWidth is the minimum width to show the endpoint in the header.
	LayoutEndpointWidth = 80
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read per refresh.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
