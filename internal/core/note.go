// Package core provides the fundamental types of the rhythm runtime: notes,
// judgement tiers, verdicts, key state and the capabilities the engine uses to
// reach the presentation layer. It contains no external dependencies
// (especially no Bubble Tea) to keep the engine pure and testable.
package core

import "fmt"

// Note is a single chart entry: the moment a key should be pressed and the
// lane it belongs to. Charts are sequences of notes sorted by TimeMs.
type Note struct {
	TimeMs int64 `yaml:"t"`              // Target time in milliseconds
	Lane   int   `yaml:"lane"`           // Lane index, 0-based
	Long   bool  `yaml:"long,omitempty"` // Drawn as a long note
}

// String returns a compact description used by the debug overlay.
func (n Note) String() string {
	return fmt.Sprintf("lane %d @ %d", n.Lane, n.TimeMs)
}

// DiffMs returns the signed distance between the clock and the note's target
// time. Positive values mean the note is late.
func (n Note) DiffMs(clockMs int64) int64 {
	return clockMs - n.TimeMs
}

// Tier is one judgement window. A press whose absolute distance from the
// target is within ToleranceMs earns Label.
type Tier struct {
	Label       string `yaml:"label"`
	ToleranceMs int64  `yaml:"tolerance_ms"`
}

// Tiers is a list of judgement windows ordered by ascending tolerance.
type Tiers []Tier

// Loosest returns the tier with the largest tolerance. Its window doubles as
// the global miss tolerance. Tiers must not be empty.
func (t Tiers) Loosest() Tier {
	return t[len(t)-1]
}

// Match returns the first tier whose tolerance covers absDiff.
func (t Tiers) Match(absDiff int64) (Tier, bool) {
	for _, tier := range t {
		if tier.ToleranceMs >= absDiff {
			return tier, true
		}
	}
	return Tier{}, false
}

// Ascending reports whether tolerances are strictly increasing.
func (t Tiers) Ascending() bool {
	for i := 1; i < len(t); i++ {
		if t[i].ToleranceMs <= t[i-1].ToleranceMs {
			return false
		}
	}
	return true
}

// Labels returns the tier labels in tolerance order.
func (t Tiers) Labels() []string {
	labels := make([]string, len(t))
	for i, tier := range t {
		labels[i] = tier.Label
	}
	return labels
}

// Scale returns a copy with every tolerance multiplied by factor, never
// shrinking a window below 1ms.
func (t Tiers) Scale(factor float64) Tiers {
	scaled := make(Tiers, len(t))
	for i, tier := range t {
		ms := int64(float64(tier.ToleranceMs)*factor + 0.5)
		if ms < 1 {
			ms = 1
		}
		scaled[i] = Tier{Label: tier.Label, ToleranceMs: ms}
	}
	return scaled
}

// Abs64 returns the absolute value of x.
func Abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
