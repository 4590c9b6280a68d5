package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/siegecore/types"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	styleCommand = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTurn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	styleEvent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("177"))

	styleKill = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSkipped = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	styleRejected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleCardTitle = lipgloss.NewStyle().Bold(true)

	styleEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	styleFrozen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("123"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141"))
)

var elementColors = map[types.Element]lipgloss.Color{
	types.ElementFire:  lipgloss.Color("203"),
	types.ElementWater: lipgloss.Color("39"),
	types.ElementWood:  lipgloss.Color("71"),
	types.ElementNone:  lipgloss.Color("250"),
}

func elementColor(el types.Element) lipgloss.Color {
	if c, ok := elementColors[el]; ok {
		return c
	}
	return elementColors[types.ElementNone]
}

// lineKind identifies the type of a log line for styling.
type lineKind int

const (
	kindInfo lineKind = iota
	kindTurn
	kindEvent
	kindKill
	kindSkipped
	kindRejected
	kindSystem
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "Rejected:"),
		strings.HasPrefix(line, "Warning:"),
		strings.HasPrefix(line, "Unknown command"),
		strings.HasPrefix(line, "Event draw failed"):
		return kindRejected
	case strings.HasPrefix(line, "Turn "):
		return kindTurn
	case strings.HasPrefix(line, "Event: "),
		strings.HasPrefix(line, "Next event forced"):
		return kindEvent
	case strings.Contains(line, " is slain by "):
		return kindKill
	case strings.HasPrefix(line, "Skipped "),
		strings.Contains(line, " fizzles: "),
		strings.Contains(line, " is nullified: "):
		return kindSkipped
	default:
		return kindInfo
	}
}

func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindTurn:
		return styleTurn.Render(line)
	case kindEvent:
		return styleEvent.Render(line)
	case kindKill:
		return styleKill.Render(line)
	case kindSkipped:
		return styleSkipped.Render(line)
	case kindRejected:
		return styleRejected.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleInfo.Render(line)
	}
}

// styledSystemMsg renders a console message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
