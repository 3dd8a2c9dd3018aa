// Package patterns contains the built-in chart generators. Importing it for
// side effects registers every pattern.
package patterns

import (
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
)

func init() {
	registry.Register(Alternate{})
	registry.Register(Stairs{})
	registry.Register(Jacks{})
	registry.Register(Chords{})
}

// Alternate alternates between two lanes, starting on the right one.
// With the default parameters it is the classic 1024-note test chart.
type Alternate struct{}

func (Alternate) ID() string    { return "alternate" }
func (Alternate) Title() string { return "Alternate" }

func (Alternate) Generate(p registry.Params) []core.Note {
	left, right := 1, 3
	if p.Lanes < 4 {
		left, right = 0, p.Lanes-1
	}

	notes := make([]core.Note, p.Count)
	for i := range notes {
		lane := right
		if i%2 == 1 {
			lane = left
		}
		notes[i] = core.Note{TimeMs: p.StartMs + int64(i)*p.StepMs, Lane: lane}
	}
	return notes
}

// Stairs walks across every lane and back.
type Stairs struct{}

func (Stairs) ID() string    { return "stairs" }
func (Stairs) Title() string { return "Stairs" }

func (Stairs) Generate(p registry.Params) []core.Note {
	period := 2*p.Lanes - 2
	notes := make([]core.Note, p.Count)
	for i := range notes {
		lane := 0
		if period > 0 {
			lane = i % period
			if lane >= p.Lanes {
				lane = period - lane
			}
		}
		notes[i] = core.Note{TimeMs: p.StartMs + int64(i)*p.StepMs, Lane: lane}
	}
	return notes
}

// jackRun is the number of consecutive notes per lane.
const jackRun = 4

// Jacks repeats each lane several times in a row. Consecutive notes are
// closer than the default miss window, so one press must take one note.
type Jacks struct{}

func (Jacks) ID() string    { return "jacks" }
func (Jacks) Title() string { return "Jacks" }

func (Jacks) Generate(p registry.Params) []core.Note {
	notes := make([]core.Note, p.Count)
	for i := range notes {
		lane := (i / jackRun) % p.Lanes
		notes[i] = core.Note{TimeMs: p.StartMs + int64(i)*p.StepMs, Lane: lane}
	}
	return notes
}

// Chords places mirrored lane pairs on the same timestamp. Count is the
// number of chords; a chord on the middle lane of an odd lane count is a
// single note.
type Chords struct{}

func (Chords) ID() string    { return "chords" }
func (Chords) Title() string { return "Chords" }

func (Chords) Generate(p registry.Params) []core.Note {
	pairs := (p.Lanes + 1) / 2
	notes := make([]core.Note, 0, 2*p.Count)
	for i := 0; i < p.Count; i++ {
		t := p.StartMs + int64(i)*p.StepMs*2
		a := i % pairs
		b := p.Lanes - 1 - a
		notes = append(notes, core.Note{TimeMs: t, Lane: a})
		if b != a {
			notes = append(notes, core.Note{TimeMs: t, Lane: b})
		}
	}
	return notes
}
