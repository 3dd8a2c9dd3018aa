// Package engine runs a rhythm session: it spawns chart notes ahead of the
// clock, advances the clock from an external time source, and judges key
// presses and misses against tolerance tiers.
//
// A Session is single-owner. Hosts that already serialize their callbacks
// (Bubble Tea's Update) drive it directly; everything else goes through a
// Runner.
package engine

import (
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/pool"
)

// LiveNote is a spawned note. It exists from spawn until it is judged or
// missed, and its embedded Note never changes while live.
type LiveNote struct {
	core.Note
	SlotID int
	Visual core.Visual
}

// Registry owns the live notes of a session and the spawn cursor into the
// chart.
type Registry struct {
	chart     []core.Note
	cursor    int
	presenter core.Presenter
	live      pool.Pool[*LiveNote]
}

// NewRegistry creates a registry for chart, which must already be sorted by
// TimeMs. A nil presenter creates no-op visuals.
func NewRegistry(chart []core.Note, presenter core.Presenter) *Registry {
	if presenter == nil {
		presenter = core.NopPresenter{}
	}
	return &Registry{chart: chart, presenter: presenter}
}

// Spawn creates the visual for n, allocates a slot and returns the live note.
func (r *Registry) Spawn(n core.Note) *LiveNote {
	ln := &LiveNote{Note: n, Visual: r.presenter.CreateVisual(n)}
	ln.SlotID = r.live.Add(ln)
	return ln
}

// Despawn frees the note's slot and destroys its visual.
// Despawning a note twice panics.
func (r *Registry) Despawn(ln *LiveNote) {
	r.live.Remove(ln.SlotID)
	ln.Visual.Destroy()
}

// Advance spawns every pending note whose target time is within lookaheadMs
// of clockMs, in chart order, and returns how many were spawned.
func (r *Registry) Advance(clockMs, lookaheadMs int64) int {
	spawned := 0
	for r.cursor < len(r.chart) && r.chart[r.cursor].TimeMs-clockMs <= lookaheadMs {
		r.Spawn(r.chart[r.cursor])
		r.cursor++
		spawned++
	}
	return spawned
}

// ForEach visits live notes in increasing slot order.
// visit must not spawn or despawn.
func (r *Registry) ForEach(visit func(ln *LiveNote)) {
	r.live.ForEach(func(ln *LiveNote, _, _ int) {
		visit(ln)
	})
}

// Live returns the number of live notes.
func (r *Registry) Live() int {
	return r.live.Len()
}

// UpperBound returns the pool's upper bound.
func (r *Registry) UpperBound() int {
	return r.live.UpperBound()
}

// Spawned returns how many chart notes have been spawned so far.
func (r *Registry) Spawned() int {
	return r.cursor
}

// Pending returns how many chart notes have not been spawned yet.
func (r *Registry) Pending() int {
	return len(r.chart) - r.cursor
}

// Exhausted reports whether every note has been spawned and resolved.
func (r *Registry) Exhausted() bool {
	return r.cursor == len(r.chart) && r.live.Len() == 0
}
