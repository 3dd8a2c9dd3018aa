package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// DefaultDelay is the re-arm delay between ticks of a DelayScheduler.
const DefaultDelay = time.Millisecond

// KeyEvent is a key transition delivered to a Runner.
type KeyEvent struct {
	Key  string
	Down bool
}

// Scheduler arms the next tick. After is called once per tick, on the
// runner's goroutine, and the runner always receives from the returned
// channel before calling After again.
type Scheduler interface {
	After() <-chan time.Time
	Stop()
}

// DelayScheduler fires after a fixed real-time delay, reusing one timer.
type DelayScheduler struct {
	Delay time.Duration
	timer *time.Timer
}

// After re-arms the timer.
func (d *DelayScheduler) After() <-chan time.Time {
	delay := d.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	if d.timer == nil {
		d.timer = time.NewTimer(delay)
	} else {
		d.timer.Reset(delay)
	}
	return d.timer.C
}

// Stop releases the timer.
func (d *DelayScheduler) Stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}

// StepScheduler advances a manual clock by Step and fires immediately.
// Runs driven by it are deterministic and as fast as the CPU allows.
type StepScheduler struct {
	Clock *core.ManualClock
	Step  time.Duration
	ch    chan time.Time
}

// NewStepScheduler creates a scheduler stepping clock by step.
func NewStepScheduler(clock *core.ManualClock, step time.Duration) *StepScheduler {
	return &StepScheduler{Clock: clock, Step: step, ch: make(chan time.Time, 1)}
}

// After advances the clock and returns a channel that is ready.
func (s *StepScheduler) After() <-chan time.Time {
	s.Clock.Advance(s.Step)
	select {
	case s.ch <- s.Clock.Now():
	default:
	}
	return s.ch
}

// Stop is a no-op.
func (s *StepScheduler) Stop() {}

// Runner owns a Session on a single goroutine, serializing ticks and key
// events.
type Runner struct {
	session *Session
	sched   Scheduler

	// OnTick runs after every tick on the runner goroutine.
	OnTick func(s *Session)
}

// NewRunner creates a runner for session. A nil scheduler uses a
// DelayScheduler with DefaultDelay.
func NewRunner(session *Session, sched Scheduler) *Runner {
	if sched == nil {
		sched = &DelayScheduler{Delay: DefaultDelay}
	}
	return &Runner{session: session, sched: sched}
}

// Session returns the owned session. Only touch it from OnTick or after Run
// has returned.
func (r *Runner) Session() *Session {
	return r.session
}

// Run ticks the session until it is done or ctx is cancelled. Events are
// applied between ticks in arrival order; a nil or closed channel is ignored.
// Run returns nil when the chart is finished and ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context, events <-chan KeyEvent) error {
	defer r.sched.Stop()

	s := r.session
	tick := r.sched.After()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Down {
				s.KeyDown(ev.Key)
			} else {
				s.KeyUp(ev.Key)
			}

		case <-tick:
			s.Tick()
			if r.OnTick != nil {
				r.OnTick(s)
			}
			if s.Done() {
				return nil
			}
			tick = r.sched.After()
		}
	}
}
