package core

// Color is a foreground color for a screen cell.
// The value is anything lipgloss.Color accepts: an ANSI code ("9"),
// an ANSI-256 code ("208") or a hex string ("#FF3333").
// The empty string means the terminal default.
type Color string

// Named colors used by the HUD and container.
const (
	ColorDefault       Color = ""
	ColorRed           Color = "1"
	ColorGreen         Color = "2"
	ColorYellow        Color = "3"
	ColorBlue          Color = "4"
	ColorMagenta       Color = "5"
	ColorCyan          Color = "6"
	ColorWhite         Color = "7"
	ColorBrightRed     Color = "9"
	ColorBrightGreen   Color = "10"
	ColorBrightYellow  Color = "11"
	ColorBrightWhite   Color = "15"
	ColorOrange        Color = "208"
	ColorGray          Color = "245"
	ColorDarkGray      Color = "240"
	ColorHighlightText Color = "229"
)

// IsDefault reports whether c renders with the terminal's own color.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
