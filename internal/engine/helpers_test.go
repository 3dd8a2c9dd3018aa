package engine

import (
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

var testTiers = core.Tiers{
	{Label: "PERFECT", ToleranceMs: 30},
	{Label: "GOOD", ToleranceMs: 60},
	{Label: "NORMAL", ToleranceMs: 70},
	{Label: "BAD", ToleranceMs: 110},
}

var testBindings = core.NewBindings([]core.Binding{
	{Key: "d", Lane: 0},
	{Key: "f", Lane: 1},
	{Key: " ", Lane: 2},
	{Key: "j", Lane: 3},
	{Key: "k", Lane: 4},
})

type recordingVisual struct {
	note      core.Note
	offsets   []int64
	destroyed int
}

func (v *recordingVisual) Move(offsetMs int64) { v.offsets = append(v.offsets, offsetMs) }
func (v *recordingVisual) Destroy()            { v.destroyed++ }

func (v *recordingVisual) lastOffset() (int64, bool) {
	if len(v.offsets) == 0 {
		return 0, false
	}
	return v.offsets[len(v.offsets)-1], true
}

type recordingPresenter struct {
	visuals []*recordingVisual
}

func (p *recordingPresenter) CreateVisual(n core.Note) core.Visual {
	v := &recordingVisual{note: n}
	p.visuals = append(p.visuals, v)
	return v
}

type verdictLog []core.Verdict

func (l *verdictLog) Verdict(v core.Verdict) { *l = append(*l, v) }

// newTestSession builds a session on a manual clock at epoch.
func newTestSession(chart []core.Note, lookahead int64) (*Session, *core.ManualClock, *recordingPresenter, *verdictLog) {
	clock := core.NewManualClock(time.Unix(0, 0))
	presenter := &recordingPresenter{}
	verdicts := &verdictLog{}
	s := NewSession(chart, Options{
		LookaheadMs: lookahead,
		Tiers:       testTiers,
		Bindings:    testBindings,
		Clock:       clock,
		Presenter:   presenter,
		Sink:        verdicts,
	})
	return s, clock, presenter, verdicts
}

// tickAt moves the manual clock to ms after the session start and ticks.
func tickAt(s *Session, clock *core.ManualClock, ms int64) {
	clock.Set(time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond))
	s.Tick()
}
