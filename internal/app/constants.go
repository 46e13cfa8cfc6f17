package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// DefaultListWidth is the maximum width allocated to the entry list
	DefaultListWidth = 36

	// ListWidthDivider determines list width as terminal_width / this value
	// when the terminal is narrow
	ListWidthDivider = 4

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters allowed in prompts
	InputCharLimit = 240
)

// Rendering constants control render timing and optimization
const (
	// RenderDebounce is the delay between the last edit and the preview render
	RenderDebounce = 300 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching
	RenderWidthBucket = 20
)

// ExportPermission is the permission mode for exported HTML files.
const ExportPermission = 0o644
