package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// HelpModel renders the command overlay. It is passive: visibility is
// toggled by the parent model, the overlay itself just displays.
type HelpModel struct {
	Title   string
	NoColor bool
	Theme   Theme
}

// NewHelpModel creates the overlay with the default binding table.
func NewHelpModel() HelpModel {
	return HelpModel{
		Title: "Available commands",
		Theme: DefaultTheme(),
	}
}

// helpRows returns the key/description table shown in the overlay.
func helpRows() [][]string {
	return [][]string{
		{"enter/space", "expand or collapse"},
		{"↓/↑ or j/k", "move down/up"},
		{"→ or l", "expand, then first child"},
		{"← or h", "collapse, then parent"},
		{"Home/End, gg/G", "go to first/last row"},
		{"PgDn/PgUp", "scroll"},
		{"/", "search, then n/N for matches"},
		{"c", "toggle this overlay"},
		{"q", "quit"},
	}
}

// View renders the overlay box. The caller centers it over the tree area.
func (h HelpModel) View() string {
	rows := helpRows()
	keyWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > keyWidth {
			keyWidth = w
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(h.Theme.HelpKey).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(h.Theme.HelpValue)

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		key := r[0] + strings.Repeat(" ", keyWidth-runewidth.StringWidth(r[0]))
		if h.NoColor {
			b.WriteString(key + "  " + r[1])
		} else {
			b.WriteString(keyStyle.Render(key) + "  " + descStyle.Render(r[1]))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1)
	if !h.NoColor {
		box = box.BorderForeground(h.Theme.PopupBorder)
	}

	title := h.Title
	if title == "" {
		title = "Available commands"
	}
	if !h.NoColor {
		title = lipgloss.NewStyle().Foreground(h.Theme.TitleFG).Bold(true).Render(title)
	}
	return box.Render(title + "\n\n" + b.String())
}
