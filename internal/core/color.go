package core

// Color represents a foreground color for a screen cell.
// Uses ANSI color codes for terminal compatibility; frontends map them to styles.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorGray
)
