package engine

import (
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

func TestPressJudgesEarliestNoteOnly(t *testing.T) {
	tiers := core.Tiers{
		{Label: "PERFECT", ToleranceMs: 30},
		{Label: "GOOD", ToleranceMs: 60},
		{Label: "BAD", ToleranceMs: 110},
	}
	var got verdictLog
	j := NewJudge(tiers, &got, nil)
	reg := NewRegistry(nil, nil)

	// clock 1000: one note 20ms late, one due in 90ms
	reg.Spawn(core.Note{TimeMs: 1090, Lane: 2})
	reg.Spawn(core.Note{TimeMs: 980, Lane: 2})

	v, ok := j.Press(reg, 2, 1000)
	if !ok {
		t.Fatal("Press should judge a note")
	}
	if v.Label != "PERFECT" || v.TimeMs != 980 || v.DiffMs != 20 {
		t.Errorf("Press() = %+v, expected PERFECT for the 980 note", v)
	}
	if reg.Live() != 1 {
		t.Fatalf("Live() = %d, expected the other note to remain", reg.Live())
	}
	reg.ForEach(func(ln *LiveNote) {
		if ln.TimeMs != 1090 {
			t.Errorf("remaining note at %d, expected 1090", ln.TimeMs)
		}
	})
	if len(got) != 1 {
		t.Errorf("sink received %d verdicts, expected 1", len(got))
	}
}

func TestPressPrefersEarliestOverClosest(t *testing.T) {
	j := NewJudge(testTiers, nil, nil)
	reg := NewRegistry(nil, nil)

	reg.Spawn(core.Note{TimeMs: 990, Lane: 0})
	reg.Spawn(core.Note{TimeMs: 910, Lane: 0})

	v, ok := j.Press(reg, 0, 1000)
	if !ok || v.TimeMs != 910 || v.Label != "BAD" {
		t.Errorf("Press() = (%+v, %v), expected BAD for the 910 note", v, ok)
	}
}

func TestPressTieGoesToLowerSlot(t *testing.T) {
	j := NewJudge(testTiers, nil, nil)
	reg := NewRegistry(nil, nil)

	first := reg.Spawn(core.Note{TimeMs: 1000, Lane: 1})
	reg.Spawn(core.Note{TimeMs: 1000, Lane: 1})

	v, ok := j.Press(reg, 1, 1000)
	if !ok || v.SlotID != first.SlotID {
		t.Errorf("Press() judged slot %d, expected %d", v.SlotID, first.SlotID)
	}
}

func TestPressTierSelection(t *testing.T) {
	tests := []struct {
		name  string
		diff  int64
		label string
	}{
		{"exact", 0, "PERFECT"},
		{"early edge", -30, "PERFECT"},
		{"late good", 45, "GOOD"},
		{"first covering tier wins", 65, "NORMAL"},
		{"early bad", -100, "BAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJudge(testTiers, nil, nil)
			reg := NewRegistry(nil, nil)
			reg.Spawn(core.Note{TimeMs: 1000, Lane: 3})

			v, ok := j.Press(reg, 3, 1000+tt.diff)
			if !ok || v.Label != tt.label {
				t.Errorf("Press at diff %d = (%q, %v), expected %q", tt.diff, v.Label, ok, tt.label)
			}
			if v.DiffMs != tt.diff {
				t.Errorf("DiffMs = %d, expected %d", v.DiffMs, tt.diff)
			}
		})
	}
}

func TestPressOutsideWindow(t *testing.T) {
	j := NewJudge(testTiers, nil, nil)
	reg := NewRegistry(nil, nil)
	reg.Spawn(core.Note{TimeMs: 1000, Lane: 0})

	for _, clock := range []int64{890, 1110, 500} {
		if v, ok := j.Press(reg, 0, clock); ok {
			t.Errorf("Press at %d judged %+v, expected nothing", clock, v)
		}
	}
	if _, ok := j.Press(reg, 1, 1000); ok {
		t.Error("Press in another lane should not judge")
	}
	if reg.Live() != 1 {
		t.Errorf("Live() = %d, expected note to stay live", reg.Live())
	}
}

func TestEvictMisses(t *testing.T) {
	var got verdictLog
	j := NewJudge(testTiers, &got, nil)
	reg := NewRegistry(nil, nil)

	reg.Spawn(core.Note{TimeMs: 1000, Lane: 1})
	reg.Spawn(core.Note{TimeMs: 1001, Lane: 2})
	reg.Spawn(core.Note{TimeMs: 2000, Lane: 1})

	if n := j.EvictMisses(reg, 1110); n != 0 {
		t.Errorf("EvictMisses(1110) = %d, expected 0 at the tolerance edge", n)
	}
	if n := j.EvictMisses(reg, 1111); n != 1 {
		t.Errorf("EvictMisses(1111) = %d, expected 1", n)
	}
	if n := j.EvictMisses(reg, 1200); n != 1 {
		t.Errorf("EvictMisses(1200) = %d, expected 1", n)
	}
	if n := j.EvictMisses(reg, 1200); n != 0 {
		t.Errorf("repeated EvictMisses(1200) = %d, expected 0", n)
	}

	if len(got) != 2 {
		t.Fatalf("got %d verdicts, expected 2", len(got))
	}
	for _, v := range got {
		if !v.Miss || v.Label != core.MissLabel {
			t.Errorf("verdict %+v, expected MISS", v)
		}
	}
	if got[0].TimeMs != 1000 || got[0].DiffMs != 111 {
		t.Errorf("first miss = %+v, expected note 1000 at diff 111", got[0])
	}
	if reg.Live() != 1 {
		t.Errorf("Live() = %d, expected 1", reg.Live())
	}
}

func TestNewJudgePanicsOnInvalidTiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers core.Tiers
	}{
		{"empty", nil},
		{"unsorted", core.Tiers{{Label: "GOOD", ToleranceMs: 60}, {Label: "PERFECT", ToleranceMs: 30}}},
		{"merged", core.Tiers{{Label: "PERFECT", ToleranceMs: 2}, {Label: "GOOD", ToleranceMs: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewJudge(%v) did not panic", tt.tiers)
				}
			}()
			NewJudge(tt.tiers, nil, nil)
		})
	}
}

func TestNewSessionPanicsWithoutTiers(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewSession without tiers did not panic")
		}
	}()
	NewSession([]core.Note{{TimeMs: 100, Lane: 0}}, Options{LookaheadMs: 1000})
}
