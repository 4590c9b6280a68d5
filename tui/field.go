package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/siegecore/engine/snapshot"
	"github.com/nathoo/siegecore/types"
)

// cardLines is the content height of a battlefield card; fieldHeight adds
// the border.
const (
	cardLines   = 5
	fieldHeight = cardLines + 2
)

// renderField draws the three slots side by side. While actions are
// pending each card also shows the forecast for its slot.
func (m Model) renderField(snap snapshot.GameState) string {
	var forecast []types.Slot
	if len(snap.Actions) > 0 {
		next := m.engine.Preview()
		forecast = next[:]
	}

	width := m.width/len(snap.Battlefield) - 2
	if width < 14 {
		width = 14
	}

	cards := make([]string, 0, len(snap.Battlefield))
	for i, sl := range snap.Battlefield {
		var next *types.Slot
		if forecast != nil {
			next = &forecast[i]
		}
		style := styleCard.Width(width).Height(cardLines)
		if sl.Monster != nil {
			style = style.BorderForeground(elementColor(sl.Monster.Element))
		}
		cards = append(cards, style.Render(strings.Join(cardText(sl, next), "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func cardText(sl types.Slot, next *types.Slot) []string {
	title := styleCardTitle.Render("[" + string(sl.ID) + "]")
	if sl.LastIcedBy != 0 {
		title += " " + styleFrozen.Render("frozen")
	}
	if sl.Monster == nil {
		return []string{title, styleEmpty.Render("empty")}
	}

	mon := sl.Monster
	lines := []string{
		title,
		lipgloss.NewStyle().Foreground(elementColor(mon.Element)).Bold(true).Render(mon.Name),
		fmt.Sprintf("%s  %d/%d HP", mon.Element, mon.HP, mon.MaxHP),
	}
	if next != nil {
		lines = append(lines, forecastLine(*mon, next.Monster))
	}

	var tags []string
	if n := len(sl.PoisonedBy); n > 0 {
		tags = append(tags, fmt.Sprintf("poison x%d", n))
	}
	tags = append(tags, mon.Skills...)
	if len(tags) > 0 {
		lines = append(lines, styleStatus.Render(strings.Join(tags, ", ")))
	}
	return lines
}

// forecastLine describes what the pending actions would do to cur. after is
// the slot's occupant in the forecast.
func forecastLine(cur types.Monster, after *types.Monster) string {
	switch {
	case after == nil:
		return styleKill.Render("-> slain")
	case after.Name != cur.Name || after.MaxHP != cur.MaxHP:
		return styleKill.Render("-> slain, " + after.Name + " next")
	case after.HP == cur.HP:
		return styleEmpty.Render("-> unchanged")
	default:
		return styleKill.Render(fmt.Sprintf("-> %d HP", after.HP))
	}
}
