package engine

import "github.com/vovakirdan/tui-rhythm/internal/core"

// OffsetFunc returns how late (positive) or early (negative) the autoplayer
// presses note i.
type OffsetFunc func(i int, n core.Note) int64

// Exact presses every note on time.
func Exact(int, core.Note) int64 { return 0 }

// ConstantOffset presses every note ms late.
func ConstantOffset(ms int64) OffsetFunc {
	return func(int, core.Note) int64 { return ms }
}

// Autoplayer presses the bound key of each chart note once the session clock
// reaches the note time plus its offset. Keys are released on the following
// step.
type Autoplayer struct {
	chart    []core.Note
	bindings core.Bindings
	offset   OffsetFunc
	next     int
	held     []string
}

// NewAutoplayer creates a bot for chart. A nil offset plays exactly on time.
func NewAutoplayer(chart []core.Note, bindings core.Bindings, offset OffsetFunc) *Autoplayer {
	if offset == nil {
		offset = Exact
	}
	return &Autoplayer{chart: chart, bindings: bindings, offset: offset}
}

// Step releases the keys pressed last step and presses every due note.
// It returns the number of presses made. Call it after each Session.Tick.
func (a *Autoplayer) Step(s *Session) int {
	for _, key := range a.held {
		s.KeyUp(key)
	}
	a.held = a.held[:0]

	presses := 0
	for a.next < len(a.chart) {
		n := a.chart[a.next]
		if s.Clock() < n.TimeMs+a.offset(a.next, n) {
			break
		}
		if key, ok := a.bindings.Key(n.Lane); ok {
			s.KeyDown(key)
			a.held = append(a.held, key)
			presses++
		}
		a.next++
	}
	return presses
}

// Finished reports whether every note has been pressed.
func (a *Autoplayer) Finished() bool {
	return a.next == len(a.chart)
}
