package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// Judge turns key presses and elapsed time into verdicts.
type Judge struct {
	tiers  core.Tiers
	sink   core.VerdictSink
	logger *log.Logger
}

// NewJudge creates a judge for tiers, which must be non-empty and ascending.
// It panics otherwise. A nil sink drops verdicts.
func NewJudge(tiers core.Tiers, sink core.VerdictSink, logger *log.Logger) *Judge {
	if len(tiers) == 0 {
		panic("engine: no judgement tiers")
	}
	if !tiers.Ascending() {
		panic(fmt.Sprintf("engine: judgement tiers not in ascending tolerance order: %v", tiers))
	}
	if sink == nil {
		sink = core.VerdictFunc(func(core.Verdict) {})
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Judge{tiers: tiers, sink: sink, logger: logger}
}

// Tiers returns the judgement tiers.
func (j *Judge) Tiers() core.Tiers {
	return j.tiers
}

// EvictMisses despawns every live note that is later than the loosest
// tolerance, reporting one MISS verdict each. It returns the number evicted.
func (j *Judge) EvictMisses(reg *Registry, clockMs int64) int {
	loosest := j.tiers.Loosest().ToleranceMs

	var missed []*LiveNote
	reg.ForEach(func(ln *LiveNote) {
		if clockMs-ln.TimeMs > loosest {
			missed = append(missed, ln)
		}
	})

	for _, ln := range missed {
		reg.Despawn(ln)
		j.emit(core.Verdict{
			Label:  core.MissLabel,
			Lane:   ln.Lane,
			SlotID: ln.SlotID,
			TimeMs: ln.TimeMs,
			DiffMs: clockMs - ln.TimeMs,
			Miss:   true,
		})
	}
	return len(missed)
}

// Press judges a key-down in lane at clockMs. Only the earliest live note of
// the lane inside the loosest window is judged; ties go to the lower slot.
// It reports false when no note was judged.
func (j *Judge) Press(reg *Registry, lane int, clockMs int64) (core.Verdict, bool) {
	loosest := j.tiers.Loosest().ToleranceMs

	var target *LiveNote
	reg.ForEach(func(ln *LiveNote) {
		if ln.Lane != lane || core.Abs64(clockMs-ln.TimeMs) >= loosest {
			return
		}
		// Slots are visited in increasing order, so strict comparison keeps
		// the lowest slot among equal times.
		if target == nil || ln.TimeMs < target.TimeMs {
			target = ln
		}
	})
	if target == nil {
		return core.Verdict{}, false
	}

	diff := clockMs - target.TimeMs
	tier, ok := j.tiers.Match(core.Abs64(diff))
	if !ok {
		return core.Verdict{}, false
	}

	reg.Despawn(target)
	v := core.Verdict{
		Label:  tier.Label,
		Lane:   lane,
		SlotID: target.SlotID,
		TimeMs: target.TimeMs,
		DiffMs: diff,
	}
	j.emit(v)
	return v, true
}

func (j *Judge) emit(v core.Verdict) {
	j.logger.Debug("verdict", "label", v.Label, "lane", v.Lane, "slot", v.SlotID, "diff", v.DiffMs)
	j.sink.Verdict(v)
}
