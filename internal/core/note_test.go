package core

import "testing"

var testTiers = Tiers{
	{Label: "PERFECT", ToleranceMs: 30},
	{Label: "GOOD", ToleranceMs: 60},
	{Label: "NORMAL", ToleranceMs: 70},
	{Label: "BAD", ToleranceMs: 110},
}

func TestTiersMatch(t *testing.T) {
	tests := []struct {
		diff  int64
		label string
		ok    bool
	}{
		{0, "PERFECT", true},
		{30, "PERFECT", true},
		{31, "GOOD", true},
		{60, "GOOD", true},
		{65, "NORMAL", true},
		{70, "NORMAL", true},
		{109, "BAD", true},
		{110, "BAD", true},
		{111, "", false},
	}

	for _, tt := range tests {
		tier, ok := testTiers.Match(tt.diff)
		if ok != tt.ok || tier.Label != tt.label {
			t.Errorf("Match(%d) = (%q, %v), expected (%q, %v)", tt.diff, tier.Label, ok, tt.label, tt.ok)
		}
	}
}

func TestTiersLoosest(t *testing.T) {
	if got := testTiers.Loosest(); got.Label != "BAD" || got.ToleranceMs != 110 {
		t.Errorf("Loosest() = %+v, expected BAD/110", got)
	}
}

func TestTiersAscending(t *testing.T) {
	if !testTiers.Ascending() {
		t.Error("default tiers should be ascending")
	}
	bad := Tiers{{Label: "A", ToleranceMs: 50}, {Label: "B", ToleranceMs: 50}}
	if bad.Ascending() {
		t.Error("equal tolerances should not count as ascending")
	}
}

func TestTiersScale(t *testing.T) {
	scaled := testTiers.Scale(1.5)
	want := []int64{45, 90, 105, 165}
	for i, tier := range scaled {
		if tier.ToleranceMs != want[i] {
			t.Errorf("Scale(1.5)[%d] = %d, expected %d", i, tier.ToleranceMs, want[i])
		}
	}
	if testTiers[0].ToleranceMs != 30 {
		t.Error("Scale should not mutate the receiver")
	}

	tiny := Tiers{{Label: "X", ToleranceMs: 1}}.Scale(0.1)
	if tiny[0].ToleranceMs != 1 {
		t.Errorf("Scale should not shrink below 1ms, got %d", tiny[0].ToleranceMs)
	}
}

func TestTimeToPosition(t *testing.T) {
	tests := []struct {
		ms, rangeMs int64
		height      int
		expected    int
	}{
		{0, 1000, 20, 0},
		{500, 1000, 20, 10},
		{1000, 1000, 20, 20},
		{-250, 1000, 20, -5},
		{100, 0, 20, 0},
	}
	for _, tt := range tests {
		if got := TimeToPosition(tt.ms, tt.rangeMs, tt.height); got != tt.expected {
			t.Errorf("TimeToPosition(%d, %d, %d) = %d, expected %d", tt.ms, tt.rangeMs, tt.height, got, tt.expected)
		}
	}
}

func TestBindings(t *testing.T) {
	b := NewBindings([]Binding{{Key: "d", Lane: 0}, {Key: "f", Lane: 1}, {Key: "left", Lane: 0}})

	if lane, ok := b.Lane("f"); !ok || lane != 1 {
		t.Errorf("Lane(f) = (%d, %v), expected (1, true)", lane, ok)
	}
	if _, ok := b.Lane("z"); ok {
		t.Error("unbound key should not resolve")
	}
	if key, ok := b.Key(0); !ok || key != "d" {
		t.Errorf("Key(0) = (%q, %v), expected (d, true)", key, ok)
	}
	if keys := b.Keys(0); len(keys) != 2 {
		t.Errorf("Keys(0) = %v, expected two keys", keys)
	}
	if _, ok := b.Key(4); ok {
		t.Error("lane without keys should report false")
	}
}

func TestKeyState(t *testing.T) {
	k := KeyState{}
	k.Press("j")
	if !k.Pressed("j") {
		t.Error("j should be pressed")
	}
	k.Release("j")
	if k.Pressed("j") {
		t.Error("j should be released")
	}
}

func TestVerdictsFanOut(t *testing.T) {
	var first, second []string
	sink := Verdicts{
		VerdictFunc(func(v Verdict) { first = append(first, v.Label) }),
		VerdictFunc(func(v Verdict) { second = append(second, v.Label) }),
	}

	sink.Verdict(Verdict{Label: "PERFECT"})
	sink.Verdict(Verdict{Label: MissLabel, Miss: true})

	if len(first) != 2 || len(second) != 2 || first[1] != MissLabel || second[0] != "PERFECT" {
		t.Errorf("sinks got %v and %v, expected both [PERFECT MISS]", first, second)
	}
}
