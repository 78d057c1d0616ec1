package core

// Color represents a foreground color for a screen cell.
// The platform maps these onto ANSI 256-color codes.
type Color uint8

// Predefined colors for entities and HUD elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorTeal
	ColorPink
	ColorAzure
	ColorPurple
	ColorToxic
)
