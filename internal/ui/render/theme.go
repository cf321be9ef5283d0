package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background       tcell.Color
	Foreground       tcell.Color
	HeaderFg         tcell.Color
	ActiveHeaderBg   tcell.Color
	ActiveHeaderFg   tcell.Color
	ColumnFg         tcell.Color
	CursorBg         tcell.Color
	CursorFg         tcell.Color
	InactiveCursorBg tcell.Color
	MarkedBg         tcell.Color
	MarkedFg         tcell.Color
	DirectoryFg      tcell.Color
	FileFg           tcell.Color
	SeparatorFg      tcell.Color
	FooterBg         tcell.Color
	FooterFg         tcell.Color
	ErrorFg          tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		HeaderFg:         tcell.ColorDefault,
		ActiveHeaderBg:   tcell.Color33,
		ActiveHeaderFg:   tcell.ColorWhite,
		ColumnFg:         tcell.ColorLightSlateGray,
		CursorBg:         tcell.Color33,
		CursorFg:         tcell.ColorWhite,
		InactiveCursorBg: tcell.Color238,
		MarkedBg:         tcell.Color24,
		MarkedFg:         tcell.ColorWhite,
		DirectoryFg:      tcell.Color33,
		FileFg:           tcell.ColorDefault,
		SeparatorFg:      tcell.ColorLightSlateGray,
		FooterBg:         tcell.ColorDefault,
		FooterFg:         tcell.ColorDefault,
		ErrorFg:          tcell.ColorRed,
	}
}
