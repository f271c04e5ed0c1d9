package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

const indentWidth = 2

// View implements tea.Model. The whole frame is rebuilt from current state
// every iteration, whether or not anything changed.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	// Mouse capture is per-view in Bubble Tea v2; without it wheel events
	// never reach Update.
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render assembles the bordered tree block, the footer line, and (when
// visible) the centered command overlay.
func (m *Model) render() string {
	width := m.WinWidth
	if width < 20 {
		width = 20
	}
	innerW := width - 2
	treeH := m.treeHeight()

	rows := m.Nav.VisibleRows(m.Items)
	content := m.renderRows(rows, innerW, treeH)
	if m.Nav.OverlayVisible {
		popup := m.Help.View()
		content = strings.Split(
			lipgloss.Place(innerW, treeH, lipgloss.Center, lipgloss.Center, popup),
			"\n")
	}

	border := lipgloss.NormalBorder()
	borderStyle := lipgloss.NewStyle().Foreground(m.Theme.BorderColor)
	paint := func(s string) string {
		if m.NoColor {
			return s
		}
		return borderStyle.Render(s)
	}

	var b strings.Builder
	b.WriteString(m.renderTopBorder(border, innerW))
	b.WriteByte('\n')
	for i := 0; i < treeH; i++ {
		line := ""
		if i < len(content) {
			line = content[i]
		}
		if pad := innerW - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString(paint(border.Left) + line + paint(border.Right))
		b.WriteByte('\n')
	}
	b.WriteString(paint(border.BottomLeft + strings.Repeat(border.Bottom, innerW) + border.BottomRight))
	b.WriteByte('\n')
	b.WriteString(m.renderFooter(rows, width))
	return b.String()
}

// renderTopBorder draws the top border with the title embedded, the way the
// tree block is captioned.
func (m *Model) renderTopBorder(border lipgloss.Border, innerW int) string {
	title := " " + m.AppName
	if m.Nav.Cursor != nil {
		title += " " + m.Nav.Cursor.Pointer()
	}
	title += " "
	title = runewidth.Truncate(title, maxInt(0, innerW-2), "… ")

	fill := innerW - runewidth.StringWidth(title) - 1
	if fill < 0 {
		fill = 0
	}
	styledTitle := title
	if !m.NoColor {
		styledTitle = lipgloss.NewStyle().Foreground(m.Theme.TitleFG).Bold(true).Render(title)
	}
	line := border.Top + styledTitle + strings.Repeat(border.Top, fill)
	if m.NoColor {
		return border.TopLeft + line + border.TopRight
	}
	bs := lipgloss.NewStyle().Foreground(m.Theme.BorderColor)
	return bs.Render(border.TopLeft+border.Top) + styledTitle + bs.Render(strings.Repeat(border.Top, fill)+border.TopRight)
}

// renderRows renders the visible window of the flattened list.
func (m *Model) renderRows(rows []Row, innerW, treeH int) []string {
	selStyle := lipgloss.NewStyle().
		Foreground(m.Theme.SelectedFG).
		Background(m.Theme.SelectedBG).
		Bold(true)
	containerStyle := lipgloss.NewStyle().Foreground(m.Theme.ContainerColor)
	leafStyle := lipgloss.NewStyle().Foreground(m.Theme.LeafColor)

	offset := m.Nav.ScrollOffset
	lines := make([]string, 0, treeH)
	for i := offset; i < len(rows) && i < offset+treeH; i++ {
		r := rows[i]
		glyph := "  "
		switch {
		case r.Expandable && r.Expanded:
			glyph = "▼ "
		case r.Expandable:
			glyph = "▶ "
		}
		raw := strings.Repeat(" ", r.Depth*indentWidth) + glyph + r.Label
		raw = runewidth.Truncate(raw, innerW, "…")
		raw = raw + strings.Repeat(" ", maxInt(0, innerW-runewidth.StringWidth(raw)))

		switch {
		case m.NoColor && r.Selected:
			// Keep the selection visible without color support.
			raw = "\x1b[7m" + raw + "\x1b[0m"
		case m.NoColor:
			// plain
		case r.Selected:
			raw = selStyle.Render(raw)
		case r.Expandable:
			raw = containerStyle.Render(raw)
		default:
			raw = leafStyle.Render(raw)
		}
		lines = append(lines, raw)
	}
	return lines
}

// renderFooter draws the status line under the block: the search input when
// focused, otherwise position info and the overlay hint.
func (m *Model) renderFooter(rows []Row, width int) string {
	if m.SearchActive {
		line := m.SearchInput.View()
		if m.NoColor {
			return runewidth.Truncate("/"+m.SearchInput.Value(), width, "…")
		}
		return line
	}

	pos := "-"
	if idx := m.Nav.cursorIndex(rows); idx >= 0 {
		pos = fmt.Sprintf("%d", idx+1)
	}
	parts := []string{fmt.Sprintf("%s/%d", pos, len(rows))}
	if m.SearchQuery != "" {
		parts = append(parts, "search: "+m.SearchQuery)
	}
	if m.StatusMsg != "" {
		parts = append(parts, m.StatusMsg)
	}
	if m.DebugMode && m.LastKey != "" {
		parts = append(parts, "key: "+m.LastKey)
	}
	parts = append(parts, "c: commands  q: quit")

	line := runewidth.Truncate(" "+strings.Join(parts, "  │  "), width, "…")
	if m.NoColor {
		return line
	}
	return lipgloss.NewStyle().Foreground(m.Theme.StatusColor).Render(line)
}

// RenderSnapshot renders one frame as a plain string for non-interactive
// output (--render and tests).
func RenderSnapshot(m *Model) string {
	return m.render()
}
