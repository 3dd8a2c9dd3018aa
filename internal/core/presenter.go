package core

// Visual is the presentation object of one live note. The engine never looks
// inside it: it only moves it each tick and destroys it on despawn.
type Visual interface {
	// Move places the visual for a note whose clock distance is offsetMs
	// (clock - target; negative while the note approaches).
	Move(offsetMs int64)

	// Destroy releases the visual. Called exactly once.
	Destroy()
}

// Presenter creates visuals for notes as they spawn.
type Presenter interface {
	CreateVisual(n Note) Visual
}

// NopPresenter creates visuals that do nothing. Used by headless runs.
type NopPresenter struct{}

// CreateVisual returns a no-op visual.
func (NopPresenter) CreateVisual(Note) Visual {
	return nopVisual{}
}

type nopVisual struct{}

func (nopVisual) Move(int64) {}
func (nopVisual) Destroy()   {}

// TimeToPosition maps a clock distance to a distance in rows, where rangeMs
// spans height rows.
func TimeToPosition(ms, rangeMs int64, height int) int {
	if rangeMs <= 0 {
		return 0
	}
	return int(ms * int64(height) / rangeMs)
}
