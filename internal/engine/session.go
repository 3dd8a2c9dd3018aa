package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// Options configures a Session. Zero fields fall back to defaults: the system
// clock, no-op visuals, dropped verdicts and a discarding logger.
type Options struct {
	LookaheadMs int64
	Tiers       core.Tiers
	Bindings    core.Bindings
	Clock       core.Clock
	Presenter   core.Presenter
	Sink        core.VerdictSink
	Logger      *log.Logger
}

// Stats is a snapshot of session counters, shown by the debug overlay.
type Stats struct {
	ClockMs    int64
	Spawned    int
	Live       int
	UpperBound int
	Pending    int
}

// Session is one play-through of a chart.
type Session struct {
	source    core.Clock
	anchor    time.Time
	lastMs    int64
	clockMs   int64
	lookahead int64

	registry *Registry
	judge    *Judge
	bindings core.Bindings
	keys     core.KeyState
	logger   *log.Logger
}

// NewSession starts a session for chart at the current time of opts.Clock.
// The game clock starts at zero.
func NewSession(chart []core.Note, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	s := &Session{
		source:    opts.Clock,
		anchor:    opts.Clock.Now(),
		lookahead: opts.LookaheadMs,
		registry:  NewRegistry(chart, opts.Presenter),
		judge:     NewJudge(opts.Tiers, opts.Sink, opts.Logger),
		bindings:  opts.Bindings,
		keys:      core.KeyState{},
		logger:    opts.Logger,
	}
	s.logger.Debug("session start", "notes", len(chart), "lookahead", s.lookahead)
	return s
}

// Tick advances the clock by the wall time elapsed since the previous tick,
// moves every visual, spawns notes entering the lookahead window and evicts
// misses.
func (s *Session) Tick() {
	now := s.source.Now().Sub(s.anchor).Milliseconds()
	delta := now - s.lastMs
	s.lastMs = now
	if delta < 0 {
		delta = 0
	}
	s.clockMs += delta

	s.registry.ForEach(func(ln *LiveNote) {
		ln.Visual.Move(s.clockMs - ln.TimeMs)
	})

	if n := s.registry.Advance(s.clockMs, s.lookahead); n > 0 {
		s.logger.Debug("spawn", "count", n, "clock", s.clockMs, "upper", s.registry.UpperBound())
	}

	s.judge.EvictMisses(s.registry, s.clockMs)
}

// KeyDown records key as held and, if it is bound to a lane, judges the press
// against the clock of the last completed tick.
func (s *Session) KeyDown(key string) (core.Verdict, bool) {
	s.keys.Press(key)
	lane, ok := s.bindings.Lane(key)
	if !ok {
		return core.Verdict{}, false
	}
	return s.judge.Press(s.registry, lane, s.clockMs)
}

// KeyUp records key as released. It never judges.
func (s *Session) KeyUp(key string) {
	s.keys.Release(key)
}

// Pressed reports whether any key bound to lane is held.
func (s *Session) Pressed(lane int) bool {
	for _, key := range s.bindings.Keys(lane) {
		if s.keys.Pressed(key) {
			return true
		}
	}
	return false
}

// Clock returns the game clock in milliseconds.
func (s *Session) Clock() int64 {
	return s.clockMs
}

// Done reports whether the chart is finished and nothing is live.
func (s *Session) Done() bool {
	return s.registry.Exhausted()
}

// Registry returns the session's note registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Tiers returns the session's judgement tiers.
func (s *Session) Tiers() core.Tiers {
	return s.judge.Tiers()
}

// Stats returns current counters.
func (s *Session) Stats() Stats {
	return Stats{
		ClockMs:    s.clockMs,
		Spawned:    s.registry.Spawned(),
		Live:       s.registry.Live(),
		UpperBound: s.registry.UpperBound(),
		Pending:    s.registry.Pending(),
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
