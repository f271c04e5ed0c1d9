package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jvx/internal/tree"
)

// Model is the Bubble Tea front end over the navigation state machine. All
// mutation happens synchronously inside Update; View only reads.
type Model struct {
	Nav   NavState
	Items []tree.Node

	AppName   string
	NoColor   bool
	DebugMode bool
	Theme     Theme
	Help      HelpModel

	WinWidth  int
	WinHeight int
	// ForceWindowSize pins the window to the desired dimensions regardless
	// of what the terminal reports, used by snapshot rendering and tests.
	ForceWindowSize  bool
	DesiredWinWidth  int
	DesiredWinHeight int

	// Search state. SearchActive means the input line is focused;
	// SearchQuery is the last committed query n/N cycle through.
	SearchInput  textinput.Model
	SearchActive bool
	SearchQuery  string

	StatusMsg string
	LastKey   string

	pendingKey string
}

// InitialModel builds the model for an already-projected hierarchy.
func InitialModel(items []tree.Node) Model {
	si := textinput.New()
	si.Prompt = "/"
	si.Placeholder = "search"
	si.CharLimit = 200

	return Model{
		Nav:         NewNavState(),
		Items:       items,
		AppName:     "jvx",
		Theme:       DefaultTheme(),
		Help:        NewHelpModel(),
		WinWidth:    80,
		WinHeight:   24,
		SearchInput: si,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// treeHeight is the number of tree rows that fit in the window: total
// height minus the block border and the footer line.
func (m *Model) treeHeight() int {
	h := m.WinHeight - 3
	if h < 1 {
		h = 1
	}
	return h
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		targetW, targetH := msg.Width, msg.Height
		if m.ForceWindowSize {
			if m.DesiredWinWidth > 0 {
				targetW = m.DesiredWinWidth
			}
			if m.DesiredWinHeight > 0 {
				targetH = m.DesiredWinHeight
			}
		}
		m.WinWidth = targetW
		m.WinHeight = targetH
		m.SearchInput.SetWidth(maxInt(10, targetW-4))
		m.Nav.followCursor(m.Items, m.treeHeight())
		return m, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		m.LastKey = keyStr

		// The overlay is modal: only closing it or quitting get through.
		if m.Nav.OverlayVisible {
			switch keyStr {
			case "c", "esc":
				m.Nav.ToggleOverlay()
			case "q", "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		if m.SearchActive {
			return m.updateSearchInput(msg, keyStr)
		}

		switch m.resolveKey(keyStr) {
		case ActionQuit:
			return m, tea.Quit
		case ActionToggle:
			m.Nav.ToggleSelected(m.Items)
			m.Nav.followCursor(m.Items, m.treeHeight())
		case ActionLeft:
			m.Nav.MoveLeft(m.Items, m.treeHeight())
		case ActionRight:
			m.Nav.MoveRight(m.Items, m.treeHeight())
		case ActionDown:
			m.Nav.MoveDown(m.Items, m.treeHeight())
		case ActionUp:
			m.Nav.MoveUp(m.Items, m.treeHeight())
		case ActionTop:
			m.Nav.SelectFirst(m.Items, m.treeHeight())
		case ActionBottom:
			m.Nav.SelectLast(m.Items, m.treeHeight())
		case ActionPageDown:
			m.Nav.ScrollDown(m.Items, m.treeHeight(), PageScrollRows)
		case ActionPageUp:
			m.Nav.ScrollUp(m.Items, m.treeHeight(), PageScrollRows)
		case ActionOverlay:
			m.Nav.ToggleOverlay()
		case ActionSearch:
			m.SearchActive = true
			m.SearchInput.SetValue("")
			return m, m.SearchInput.Focus()
		case ActionNextMatch:
			m.jumpToMatch(1)
		case ActionPrevMatch:
			m.jumpToMatch(-1)
		}
		return m, nil

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelDown:
			m.Nav.ScrollDown(m.Items, m.treeHeight(), 1)
		case tea.MouseWheelUp:
			m.Nav.ScrollUp(m.Items, m.treeHeight(), 1)
		}
		return m, nil
	}

	return m, nil
}

// updateSearchInput handles keys while the search line is focused.
func (m *Model) updateSearchInput(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "esc":
		m.SearchActive = false
		m.SearchQuery = ""
		m.SearchInput.Blur()
		m.StatusMsg = ""
		return m, nil
	case "enter":
		m.SearchActive = false
		m.SearchQuery = m.SearchInput.Value()
		m.SearchInput.Blur()
		if m.SearchQuery != "" {
			m.jumpToMatch(1)
		}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

// jumpToMatch moves the cursor to the next (delta=1) or previous (delta=-1)
// visible row whose label contains the committed query, wrapping around.
// The match scan only covers visible rows; collapsed subtrees are skipped,
// consistent with movement being defined over the flattened list.
func (m *Model) jumpToMatch(delta int) {
	query := strings.ToLower(m.SearchQuery)
	if query == "" {
		return
	}
	rows := m.Nav.VisibleRows(m.Items)
	if len(rows) == 0 {
		m.StatusMsg = "no match: " + m.SearchQuery
		return
	}
	n := len(rows)
	start := m.Nav.cursorIndex(rows)
	for step := 1; step <= n; step++ {
		idx := ((start+delta*step)%n + n) % n
		if strings.Contains(strings.ToLower(rows[idx].Label), query) {
			m.Nav.Cursor = rows[idx].Path
			m.Nav.scrollTo(idx, len(rows), m.treeHeight())
			m.StatusMsg = ""
			return
		}
	}
	m.StatusMsg = "no match: " + m.SearchQuery
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
