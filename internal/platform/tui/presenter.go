package tui

import (
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// Layout is the geometry of the playfield.
//
//	row 0 .. LaneHeight-1   approach area, one lookahead window tall
//	row LaneHeight          judgement line
//	next BiasRows rows      late notes before they are missed
//	last row                key labels
type Layout struct {
	Lanes       int
	LaneWidth   int
	LaneHeight  int
	BiasRows    int
	LookaheadMs int64
}

// NewLayout derives the layout from a session configuration.
func NewLayout(cfg config.Session) Layout {
	return Layout{
		Lanes:       cfg.Lanes,
		LaneWidth:   cfg.Display.LaneWidth,
		LaneHeight:  cfg.Display.LaneHeight,
		BiasRows:    cfg.Display.BiasRows,
		LookaheadMs: cfg.LookaheadMs,
	}
}

// Width returns the playfield width including lane borders.
func (l Layout) Width() int {
	return l.Lanes*(l.LaneWidth+1) + 1
}

// Height returns the playfield height including the label row.
func (l Layout) Height() int {
	return l.LaneHeight + 1 + l.BiasRows + 1
}

// LineRow returns the row of the judgement line.
func (l Layout) LineRow() int {
	return l.LaneHeight
}

// LabelRow returns the row of the key labels.
func (l Layout) LabelRow() int {
	return l.Height() - 1
}

// Area returns the playfield rectangle.
func (l Layout) Area() core.Rect {
	return core.NewRect(0, 0, l.Width(), l.Height())
}

// RowFor returns the row of a note at clock distance offsetMs and whether it
// is inside the visible area.
func (l Layout) RowFor(offsetMs int64) (int, bool) {
	row := l.LineRow() + core.TimeToPosition(offsetMs, l.LookaheadMs, l.LaneHeight)
	return row, row >= 0 && row <= l.LineRow()+l.BiasRows
}

// Presenter implements core.Presenter for the terminal playfield.
type Presenter struct {
	visuals map[*noteVisual]struct{}
}

// NewPresenter creates an empty presenter.
func NewPresenter() *Presenter {
	return &Presenter{visuals: make(map[*noteVisual]struct{})}
}

// CreateVisual registers a visual for n. It is not drawn until first moved.
func (p *Presenter) CreateVisual(n core.Note) core.Visual {
	v := &noteVisual{owner: p, note: n}
	p.visuals[v] = struct{}{}
	return v
}

// Len returns the number of live visuals.
func (p *Presenter) Len() int {
	return len(p.visuals)
}

// Draw paints every placed visual into s.
func (p *Presenter) Draw(s *core.Screen, l Layout) {
	glyph := []rune("▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄")
	long := []rune("████████████████")
	for v := range p.visuals {
		if !v.placed {
			continue
		}
		row, visible := l.RowFor(v.offset)
		if !visible {
			continue
		}
		lane := l.Area().Lane(v.note.Lane, l.LaneWidth)
		cells := glyph
		if v.note.Long {
			cells = long
		}
		s.DrawTextColor(lane.X, row, string(cells[:core.Min(l.LaneWidth, len(cells))]), core.LaneColor(v.note.Lane))
	}
}

type noteVisual struct {
	owner  *Presenter
	note   core.Note
	offset int64
	placed bool
}

func (v *noteVisual) Move(offsetMs int64) {
	v.offset = offsetMs
	v.placed = true
}

func (v *noteVisual) Destroy() {
	delete(v.owner.visuals, v)
}
