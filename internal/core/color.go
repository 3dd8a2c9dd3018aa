package core

// Color is a foreground color for a screen cell.
// The platform layer maps it to terminal colors.
type Color uint8

// Colors used by the playfield.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// lanePalette cycles for charts with more lanes than colors.
var lanePalette = []Color{ColorCyan, ColorMagenta, ColorYellow, ColorMagenta, ColorCyan, ColorGreen, ColorOrange}

// LaneColor returns the note color for lane.
func LaneColor(lane int) Color {
	if lane < 0 {
		return ColorDefault
	}
	return lanePalette[lane%len(lanePalette)]
}

// LabelColor returns the color for a verdict label given its tier index.
// Index -1 is a miss.
func LabelColor(tierIndex, tierCount int) Color {
	switch {
	case tierIndex < 0:
		return ColorRed
	case tierIndex == 0:
		return ColorYellow
	case tierIndex == tierCount-1:
		return ColorOrange
	default:
		return ColorGreen
	}
}
