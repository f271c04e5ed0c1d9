package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys replays keypresses against the model before the program
// starts: named keys in angle brackets (e.g. "<Down>", "<CR>", "<End>") and
// literal characters for everything else. It mutates the model in place and
// is what the --keys flag and the snapshot tests drive navigation with.
func ApplyStartupKeys(m *Model, keys []string) {
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		for _, seg := range splitKeyTokens(token) {
			if msg, ok := keyMsgFromToken(seg); ok {
				applyKey(m, msg)
				continue
			}
			if strings.HasPrefix(seg, "<") && strings.HasSuffix(seg, ">") {
				// Unrecognized named key, not literal text.
				continue
			}
			for _, r := range seg {
				applyKey(m, tea.KeyPressMsg{Code: r, Text: string(r)})
			}
		}
	}
}

func applyKey(m *Model, msg tea.KeyPressMsg) {
	if updated, _ := m.Update(msg); updated != nil {
		if um, ok := updated.(*Model); ok {
			*m = *um
		}
	}
}

// splitKeyTokens separates "<...>" named keys from surrounding literal
// text, so "<End>abc<CR>" yields three segments.
func splitKeyTokens(token string) []string {
	var segs []string
	for len(token) > 0 {
		start := strings.IndexByte(token, '<')
		if start < 0 {
			segs = append(segs, token)
			break
		}
		if start > 0 {
			segs = append(segs, token[:start])
		}
		end := strings.IndexByte(token[start:], '>')
		if end < 0 {
			segs = append(segs, token[start:])
			break
		}
		segs = append(segs, token[start:start+end+1])
		token = token[start+end+1:]
	}
	return segs
}

// keyMsgFromToken parses one "<...>" token into a key message.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return tea.KeyPressMsg{}, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	switch inner {
	case "esc", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "space":
		return tea.KeyPressMsg{Code: ' ', Text: " "}, true
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}, true
	case "bs", "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}, true
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}, true
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}, true
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}, true
	case "pgup", "pageup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}, true
	case "pgdn", "pagedown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}, true
	case "c-c":
		return tea.KeyPressMsg{Code: 0x03}, true
	}
	return tea.KeyPressMsg{}, false
}
