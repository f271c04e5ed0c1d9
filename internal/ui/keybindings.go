package ui

// Action represents a navigation action triggered by a keybinding.
type Action string

const (
	ActionNone       Action = ""
	ActionQuit       Action = "quit"
	ActionToggle     Action = "toggle"
	ActionLeft       Action = "left"
	ActionRight      Action = "right"
	ActionDown       Action = "down"
	ActionUp         Action = "up"
	ActionTop        Action = "top"
	ActionBottom     Action = "bottom"
	ActionPageDown   Action = "page_down"
	ActionPageUp     Action = "page_up"
	ActionOverlay    Action = "overlay"
	ActionSearch     Action = "search"
	ActionNextMatch  Action = "next_match"
	ActionPrevMatch  Action = "prev_match"
	ActionPendingG   Action = "pending_g" // waiting for the second key of a gg sequence
)

// PageScrollRows is how many rows PageUp/PageDown move the viewport.
// Mouse wheel events always scroll by one.
const PageScrollRows = 3

// DefaultKeyBindings maps arrow/function keys to actions. These mirror the
// classic tree-widget bindings: enter or space toggles, arrows move,
// Home/End jump, PageUp/PageDown scroll, 'c' shows the command overlay.
var DefaultKeyBindings = map[string]Action{
	"q":      ActionQuit,
	"ctrl+c": ActionQuit,
	"enter":  ActionToggle,
	"space":  ActionToggle,
	" ":      ActionToggle,
	"left":   ActionLeft,
	"right":  ActionRight,
	"down":   ActionDown,
	"up":     ActionUp,
	"home":   ActionTop,
	"end":    ActionBottom,
	"pgdown": ActionPageDown,
	"pgup":   ActionPageUp,
	"c":      ActionOverlay,
}

// VimKeyBindings adds vim-style motions on top of the defaults.
var VimKeyBindings = map[string]Action{
	"j": ActionDown,
	"k": ActionUp,
	"h": ActionLeft,
	"l": ActionRight,
	"g": ActionPendingG,
	"G": ActionBottom,
	"/": ActionSearch,
	"n": ActionNextMatch,
	"N": ActionPrevMatch,
}

// resolveKey maps a key string to an action, handling the pending 'g' of a
// gg sequence. Keys with no binding resolve to ActionNone and are ignored.
func (m *Model) resolveKey(keyStr string) Action {
	if m.pendingKey == "g" {
		m.pendingKey = ""
		if keyStr == "g" {
			return ActionTop
		}
		// The pending 'g' is consumed; fall through to normal resolution.
	}

	if action, ok := DefaultKeyBindings[keyStr]; ok {
		return action
	}
	action, ok := VimKeyBindings[keyStr]
	if !ok {
		return ActionNone
	}
	if action == ActionPendingG {
		m.pendingKey = "g"
		return ActionNone
	}
	return action
}
