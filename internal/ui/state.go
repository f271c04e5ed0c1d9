package ui

import (
	"github.com/oakwood-commons/jvx/internal/tree"
)

// Row is one line of the flattened visible list, carrying everything the
// renderer needs without reaching into navigation internals.
type Row struct {
	Path       tree.Path
	Label      string
	Depth      int
	Expandable bool
	Expanded   bool
	Selected   bool
}

// NavState is the navigation state machine over an immutable node
// hierarchy: a cursor, the set of expanded paths, a scroll offset, and the
// help overlay flag. It is deliberately independent of Bubble Tea so it can
// be exercised without a terminal.
//
// All operations are total: movement always derives its target from the
// current flattened list, so user input alone can never put the cursor on a
// row that does not exist.
type NavState struct {
	// Cursor is the currently highlighted path, nil before the first
	// interaction.
	Cursor tree.Path
	// Expanded tracks expanded containers, keyed by Path.Pointer().
	// Absence means collapsed.
	Expanded map[string]struct{}
	// ScrollOffset is the first visible row of the flattened list.
	ScrollOffset int
	// OverlayVisible reports whether the help overlay is shown.
	OverlayVisible bool
}

// NewNavState returns the startup state: cursor unset, nothing expanded,
// offset zero, overlay hidden.
func NewNavState() NavState {
	return NavState{Expanded: make(map[string]struct{})}
}

// IsExpanded reports whether the container at p is currently expanded.
func (s *NavState) IsExpanded(p tree.Path) bool {
	_, ok := s.Expanded[p.Pointer()]
	return ok
}

// VisibleRows computes the flattened visible list: a depth-first pre-order
// walk where a container's children are emitted only while its path is in
// the expanded set. It is recomputed whenever the expansion set changes,
// since row count and positions shift.
func (s *NavState) VisibleRows(nodes []tree.Node) []Row {
	var rows []Row
	var walk func(ns []tree.Node, prefix tree.Path, depth int)
	walk = func(ns []tree.Node, prefix tree.Path, depth int) {
		for i := range ns {
			p := prefix.Child(ns[i].Addr)
			expanded := s.IsExpanded(p)
			rows = append(rows, Row{
				Path:       p,
				Label:      ns[i].Label,
				Depth:      depth,
				Expandable: ns[i].Expandable(),
				Expanded:   expanded,
				Selected:   s.Cursor != nil && p.Equal(s.Cursor),
			})
			if expanded && ns[i].Expandable() {
				walk(ns[i].Children, p, depth+1)
			}
		}
	}
	walk(nodes, nil, 0)
	return rows
}

// cursorIndex locates the cursor in rows, or -1 when the cursor is unset or
// not visible.
func (s *NavState) cursorIndex(rows []Row) int {
	if s.Cursor == nil {
		return -1
	}
	for i := range rows {
		if rows[i].Path.Equal(s.Cursor) {
			return i
		}
	}
	return -1
}

// ToggleSelected flips the expansion of the container under the cursor.
// Scalar rows, empty containers, and an unset cursor are all inert.
func (s *NavState) ToggleSelected(nodes []tree.Node) {
	if s.Cursor == nil {
		return
	}
	n, ok := tree.At(nodes, s.Cursor)
	if !ok || !n.Expandable() {
		return
	}
	key := s.Cursor.Pointer()
	if _, expanded := s.Expanded[key]; expanded {
		delete(s.Expanded, key)
	} else {
		s.Expanded[key] = struct{}{}
	}
}

// MoveLeft collapses the expanded container under the cursor; on a
// collapsed container or a leaf it moves the cursor to its parent. At top
// level there is no parent, so it is a no-op.
func (s *NavState) MoveLeft(nodes []tree.Node, height int) {
	if s.Cursor == nil {
		return
	}
	n, ok := tree.At(nodes, s.Cursor)
	if ok && n.Expandable() && s.IsExpanded(s.Cursor) {
		delete(s.Expanded, s.Cursor.Pointer())
		s.followCursor(nodes, height)
		return
	}
	if parent, ok := s.Cursor.Parent(); ok {
		s.Cursor = parent
		s.followCursor(nodes, height)
	}
}

// MoveRight expands the collapsed container under the cursor; if it is
// already expanded it moves the cursor to the first child.
func (s *NavState) MoveRight(nodes []tree.Node, height int) {
	if s.Cursor == nil {
		return
	}
	n, ok := tree.At(nodes, s.Cursor)
	if !ok || !n.Expandable() {
		return
	}
	if !s.IsExpanded(s.Cursor) {
		s.Expanded[s.Cursor.Pointer()] = struct{}{}
		s.followCursor(nodes, height)
		return
	}
	s.Cursor = s.Cursor.Child(n.Children[0].Addr)
	s.followCursor(nodes, height)
}

// MoveDown advances the cursor one row in the flattened list. Past the last
// row it is a no-op; with no cursor yet it selects the first row.
func (s *NavState) MoveDown(nodes []tree.Node, height int) {
	s.moveRelative(nodes, height, 1)
}

// MoveUp retreats the cursor one row. Past the first row it is a no-op;
// with no cursor yet it selects the first row.
func (s *NavState) MoveUp(nodes []tree.Node, height int) {
	s.moveRelative(nodes, height, -1)
}

func (s *NavState) moveRelative(nodes []tree.Node, height, delta int) {
	rows := s.VisibleRows(nodes)
	if len(rows) == 0 {
		return
	}
	idx := s.cursorIndex(rows)
	if idx < 0 {
		idx = 0
	} else if next := idx + delta; next >= 0 && next < len(rows) {
		idx = next
	}
	s.Cursor = rows[idx].Path
	s.scrollTo(idx, len(rows), height)
}

// SelectFirst moves the cursor to the first visible row. With no rows the
// cursor stays unset.
func (s *NavState) SelectFirst(nodes []tree.Node, height int) {
	rows := s.VisibleRows(nodes)
	if len(rows) == 0 {
		return
	}
	s.Cursor = rows[0].Path
	s.scrollTo(0, len(rows), height)
}

// SelectLast moves the cursor to the last visible row.
func (s *NavState) SelectLast(nodes []tree.Node, height int) {
	rows := s.VisibleRows(nodes)
	if len(rows) == 0 {
		return
	}
	s.Cursor = rows[len(rows)-1].Path
	s.scrollTo(len(rows)-1, len(rows), height)
}

// ScrollDown moves the viewport down n rows without touching the cursor.
func (s *NavState) ScrollDown(nodes []tree.Node, height, n int) {
	rows := s.VisibleRows(nodes)
	s.ScrollOffset = clampOffset(s.ScrollOffset+n, len(rows), height)
}

// ScrollUp moves the viewport up n rows without touching the cursor.
func (s *NavState) ScrollUp(nodes []tree.Node, height, n int) {
	rows := s.VisibleRows(nodes)
	s.ScrollOffset = clampOffset(s.ScrollOffset-n, len(rows), height)
}

// ToggleOverlay flips the help overlay flag.
func (s *NavState) ToggleOverlay() {
	s.OverlayVisible = !s.OverlayVisible
}

// ExpandToDepth pre-expands every container whose depth is below limit.
// A negative limit expands everything. Used for the --expand startup flag.
func (s *NavState) ExpandToDepth(nodes []tree.Node, limit int) {
	var walk func(ns []tree.Node, prefix tree.Path, depth int)
	walk = func(ns []tree.Node, prefix tree.Path, depth int) {
		if limit >= 0 && depth >= limit {
			return
		}
		for i := range ns {
			if !ns[i].Expandable() {
				continue
			}
			p := prefix.Child(ns[i].Addr)
			s.Expanded[p.Pointer()] = struct{}{}
			walk(ns[i].Children, p, depth+1)
		}
	}
	walk(nodes, nil, 0)
}

// followCursor re-locates the cursor in the freshly flattened list and
// scrolls just enough to keep it inside the viewport. Collapsing an
// ancestor can only have happened through the cursor itself, so the cursor
// row always remains visible after every operation.
func (s *NavState) followCursor(nodes []tree.Node, height int) {
	rows := s.VisibleRows(nodes)
	idx := s.cursorIndex(rows)
	if idx < 0 {
		s.ScrollOffset = clampOffset(s.ScrollOffset, len(rows), height)
		return
	}
	s.scrollTo(idx, len(rows), height)
}

// scrollTo adjusts ScrollOffset only as needed to bring row idx into a
// viewport of the given height.
func (s *NavState) scrollTo(idx, rowCount, height int) {
	if height <= 0 {
		height = 1
	}
	if idx < s.ScrollOffset {
		s.ScrollOffset = idx
	} else if idx >= s.ScrollOffset+height {
		s.ScrollOffset = idx - height + 1
	}
	s.ScrollOffset = clampOffset(s.ScrollOffset, rowCount, height)
}

func clampOffset(offset, rowCount, height int) int {
	if height <= 0 {
		height = 1
	}
	max := rowCount - height
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
