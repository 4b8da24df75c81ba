package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirFg       tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
}

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:    tcell.ColorNavy,
		HeaderFg:    tcell.ColorWhite,
		SelectionBg: tcell.ColorTeal,
		SelectionFg: tcell.ColorBlack,
		DirFg:       tcell.ColorAqua,
		StatusBg:    tcell.ColorNavy,
		StatusFg:    tcell.ColorWhite,
	}
}
