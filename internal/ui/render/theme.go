package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	TitleFg     tcell.Color
	PathFg      tcell.Color
	BorderFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	MarkerFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	PreviewFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		TitleFg:     tcell.ColorYellow,
		PathFg:      tcell.Color51,
		BorderFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color120, // light green bar
		SelectionFg: tcell.ColorBlack,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		MarkerFg:    tcell.Color117,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorGray,
		PreviewFg:   tcell.ColorDefault,
	}
}
