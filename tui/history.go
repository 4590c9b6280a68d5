// Package tui provides the Bubble Tea game-master panel: battlefield cards
// with a live forecast, a scrolling session log and a command line.
package tui

// History keeps the most recent commands for Up/Down recall.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) while not navigating
}

// NewHistory creates a history holding at most limit commands.
func NewHistory(limit int) *History {
	return &History{entries: make([]string, 0, limit), limit: limit}
}

// Push records a command and stops navigation. Repeating the newest entry
// is a no-op.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.ResetCursor()
}

// Prev steps to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps to a newer command. Stepping past the newest returns false
// and ends navigation.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries)-1 {
		h.ResetCursor()
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// ResetCursor ends navigation.
func (h *History) ResetCursor() {
	h.pos = len(h.entries)
}
