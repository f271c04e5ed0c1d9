package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the viewer.
type Theme struct {
	BorderColor    color.Color // tree block border
	TitleFG        color.Color // block title text
	SelectedFG     color.Color // selected row foreground
	SelectedBG     color.Color // selected row background
	GlyphColor     color.Color // expand/collapse glyphs
	LeafColor      color.Color // leaf row text
	ContainerColor color.Color // container row text
	StatusColor    color.Color // footer status text
	SearchFG       color.Color // search prompt text
	PopupBorder    color.Color // help popup border
	HelpKey        color.Color // help popup key column
	HelpValue      color.Color // help popup description column
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		BorderColor:    lipgloss.Color("238"),
		TitleFG:        lipgloss.Color("81"),
		SelectedFG:     lipgloss.Color("0"),
		SelectedBG:     lipgloss.Color("250"),
		GlyphColor:     lipgloss.Color("244"),
		LeafColor:      lipgloss.Color("246"),
		ContainerColor: lipgloss.Color("81"),
		StatusColor:    lipgloss.Color("244"),
		SearchFG:       lipgloss.Color("11"),
		PopupBorder:    lipgloss.Color("81"),
		HelpKey:        lipgloss.Color("81"),
		HelpValue:      lipgloss.Color("246"),
	}
}
