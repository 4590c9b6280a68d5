package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/siegecore/engine/snapshot"
)

// renderStatusBar produces a full-width inverted status line showing the
// turn, phase and event on the left and action and queue counts on the
// right.
func (m Model) renderStatusBar(snap snapshot.GameState) string {
	left := fmt.Sprintf(" %s | Turn %d | %s", snap.Title, snap.Turn, snap.Phase)
	if snap.Event.Name != "" {
		left += " | " + snap.Event.Name
	}

	right := fmt.Sprintf("Acted %d/%d | Queue %d ", len(snap.Actions), len(snap.Players), len(snap.Queue))
	if o := m.engine.State.Override; o != nil {
		candidate := fmt.Sprintf("Next: %s | %s", o.EventName, right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
