package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func renderNoColor(m *Model) string {
	m.NoColor = true
	m.Help.NoColor = true
	return m.render()
}

func TestRenderFrameShape(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 40
	m.WinHeight = 10
	out := renderNoColor(&m)

	lines := strings.Split(out, "\n")
	// Top border + treeHeight content lines + bottom border + footer.
	if len(lines) != m.treeHeight()+3 {
		t.Fatalf("expected %d lines, got %d:\n%s", m.treeHeight()+3, len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.Contains(lines[0], "jvx") {
		t.Fatalf("expected titled top border, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-2], "└") {
		t.Fatalf("expected bottom border, got %q", lines[len(lines)-2])
	}
	if !strings.Contains(lines[len(lines)-1], "q: quit") {
		t.Fatalf("expected footer hint, got %q", lines[len(lines)-1])
	}
}

func TestRenderTitleShowsCursorPointer(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 60
	m.WinHeight = 12
	pressSpecial(&m, tea.KeyDown)
	pressSpecial(&m, tea.KeyDown)
	out := renderNoColor(&m)
	if !strings.Contains(strings.Split(out, "\n")[0], "/tags") {
		t.Fatalf("expected cursor pointer in title, got:\n%s", out)
	}
}

func TestRenderGlyphsReflectExpansion(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 40
	m.WinHeight = 12
	out := renderNoColor(&m)
	if !strings.Contains(out, "▶ tags") {
		t.Fatalf("expected collapsed glyph, got:\n%s", out)
	}

	pressSpecial(&m, tea.KeyDown)
	pressSpecial(&m, tea.KeyDown)
	pressSpecial(&m, tea.KeyEnter)
	out = m.render()
	if !strings.Contains(out, "▼ tags") {
		t.Fatalf("expected expanded glyph, got:\n%s", out)
	}
	if !strings.Contains(out, `0: "cli"`) {
		t.Fatalf("expected child rows indented under tags, got:\n%s", out)
	}
}

func TestRenderSelectionInverseVideoWithoutColor(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 40
	m.WinHeight = 10
	pressSpecial(&m, tea.KeyDown)
	out := renderNoColor(&m)
	if !strings.Contains(out, "\x1b[7m") {
		t.Fatalf("expected inverse-video selection marker, got %q", out)
	}
}

func TestRenderOverlayReplacesTreeContent(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 60
	m.WinHeight = 20
	m.Nav.ToggleOverlay()
	out := renderNoColor(&m)
	if !strings.Contains(out, "Available commands") {
		t.Fatalf("expected overlay title, got:\n%s", out)
	}
	if !strings.Contains(out, "expand or collapse") {
		t.Fatalf("expected binding descriptions, got:\n%s", out)
	}
	if strings.Contains(out, `name: "demo"`) {
		t.Fatalf("tree rows should be hidden behind the overlay, got:\n%s", out)
	}
}

func TestRenderTruncatesLongRows(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 24
	m.WinHeight = 8
	out := renderNoColor(&m)
	for _, line := range strings.Split(out, "\n") {
		if w := len([]rune(stripInverse(line))); w > m.WinWidth {
			t.Fatalf("line wider than window (%d > %d): %q", w, m.WinWidth, line)
		}
	}
}

func stripInverse(s string) string {
	s = strings.ReplaceAll(s, "\x1b[7m", "")
	return strings.ReplaceAll(s, "\x1b[0m", "")
}

func TestRenderFooterSearchStates(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 60
	m.WinHeight = 12
	m.NoColor = true

	press(&m, '/')
	m.SearchInput.SetValue("owner")
	out := m.render()
	if !strings.Contains(out, "/owner") {
		t.Fatalf("expected active search line in footer, got:\n%s", out)
	}

	pressSpecial(&m, tea.KeyEnter)
	out = m.render()
	if !strings.Contains(out, "search: owner") {
		t.Fatalf("expected committed query in footer, got:\n%s", out)
	}
}

func TestViewEnablesAltScreenAndMouseCapture(t *testing.T) {
	m := InitialModel(catalogItems())
	m.NoColor = true
	v := m.View()
	if !v.AltScreen {
		t.Error("view should run in the alternate screen")
	}
	if v.MouseMode != tea.MouseModeCellMotion {
		t.Errorf("view should capture cell-motion mouse events, got %v", v.MouseMode)
	}
}

func TestRenderSnapshotMatchesView(t *testing.T) {
	m := InitialModel(catalogItems())
	m.WinWidth = 40
	m.WinHeight = 10
	m.NoColor = true
	if RenderSnapshot(&m) != m.render() {
		t.Fatal("snapshot must be the same frame View renders")
	}
}
