package parameter

// Layout & Margins
const (
	// BottomMargin reserves the status line below the world view
	BottomMargin = 1
)

// Status line
const (
	// HUDModifierNone is shown when no render modifier is active
	HUDModifierNone = "-"

	// HUDUnfocused marks the status line while the window has lost focus
	HUDUnfocused = " [paused input]"
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "regionview.log"

	// MaxLogSize triggers rotation of the previous session's log (10 MiB)
	MaxLogSize = 10 * 1024 * 1024
)
