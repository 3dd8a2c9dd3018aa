package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// KeyLabel returns the printable form of a key identifier.
func KeyLabel(key string) string {
	if key == " " {
		return "␣"
	}
	return key
}

// DrawPlayfield draws lane borders, the judgement line, lane highlights and
// key labels. Notes are drawn separately by the presenter.
func DrawPlayfield(s *core.Screen, l Layout, session *engine.Session, bindings core.Bindings) {
	area := l.Area()
	for i := range l.Lanes {
		lane := area.Lane(i, l.LaneWidth)
		if session.Pressed(i) {
			s.FillRect(core.NewRect(lane.X, 0, lane.W, l.LineRow()), '░', core.ColorGray)
		}
		s.DrawVLine(lane.X-1, 0, l.Height()-1, '│', core.ColorGray)

		label := "?"
		if key, ok := bindings.Key(i); ok {
			label = KeyLabel(key)
		}
		s.DrawTextCentered(core.NewRect(lane.X, 0, lane.W, 1), l.LabelRow(), label, core.LaneColor(i))
	}
	s.DrawVLine(area.Right()-1, 0, l.Height()-1, '│', core.ColorGray)
	s.DrawHLine(0, l.LineRow(), l.Width(), '═', core.ColorWhite)
}

// DrawSidePanel draws the judgement readout right of the playfield.
func DrawSidePanel(s *core.Screen, x int, tally *engine.Tally, tiers core.Tiers) {
	y := 1
	if v, ok := tally.Last(); ok {
		s.DrawTextColor(x, y, fmt.Sprintf("%-8s %+dms", v.Label, v.DiffMs), labelColor(v.Label, tiers))
	}
	y += 2
	for _, row := range tally.Rows() {
		s.DrawTextColor(x, y, fmt.Sprintf("%-8s %4d", row.Label, row.Count), labelColor(row.Label, tiers))
		y++
	}
	y++
	s.DrawText(x, y, fmt.Sprintf("combo    %4d", tally.Combo()))
	s.DrawText(x, y+1, fmt.Sprintf("max      %4d", tally.MaxCombo()))
}

// DrawDebug draws the live slot table and pool counters.
func DrawDebug(s *core.Screen, x, y int, session *engine.Session) {
	stats := session.Stats()
	s.DrawTextColor(x, y, fmt.Sprintf("clock: %d", stats.ClockMs), core.ColorGray)
	s.DrawTextColor(x, y+1, fmt.Sprintf("Pool upperbound: %d", stats.UpperBound), core.ColorGray)
	s.DrawTextColor(x, y+2, fmt.Sprintf("live %d  pending %d", stats.Live, stats.Pending), core.ColorGray)
	row := y + 4
	session.Registry().ForEach(func(ln *engine.LiveNote) {
		if row >= s.Height() {
			return
		}
		s.DrawTextColor(x, row, fmt.Sprintf("%d: %s", ln.SlotID, ln.Note), core.ColorGray)
		row++
	})
}

func labelColor(label string, tiers core.Tiers) core.Color {
	for i, t := range tiers {
		if t.Label == label {
			return core.LabelColor(i, len(tiers))
		}
	}
	return core.LabelColor(-1, len(tiers))
}
