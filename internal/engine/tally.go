package engine

import (
	"math"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// TallyRow is one line of the results table.
type TallyRow struct {
	Label string
	Count int
}

// Tally counts verdicts for display. It implements core.VerdictSink.
type Tally struct {
	labels []string
	counts map[string]int

	combo    int
	maxCombo int
	last     core.Verdict
	hasLast  bool

	hits  int
	sum   float64
	sumSq float64
}

// NewTally creates a tally with one counter per tier plus MISS.
func NewTally(tiers core.Tiers) *Tally {
	labels := append(tiers.Labels(), core.MissLabel)
	return &Tally{labels: labels, counts: make(map[string]int, len(labels))}
}

// Verdict records v.
func (t *Tally) Verdict(v core.Verdict) {
	t.counts[v.Label]++
	t.last = v
	t.hasLast = true

	if v.Miss {
		t.combo = 0
		return
	}
	t.combo++
	if t.combo > t.maxCombo {
		t.maxCombo = t.combo
	}

	d := float64(v.DiffMs)
	t.hits++
	t.sum += d
	t.sumSq += d * d
}

// Count returns the number of verdicts labelled label.
func (t *Tally) Count(label string) int {
	return t.counts[label]
}

// Total returns the number of verdicts recorded.
func (t *Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Rows returns the counters in tier order, MISS last.
func (t *Tally) Rows() []TallyRow {
	rows := make([]TallyRow, len(t.labels))
	for i, label := range t.labels {
		rows[i] = TallyRow{Label: label, Count: t.counts[label]}
	}
	return rows
}

// Combo returns the current run of non-miss verdicts.
func (t *Tally) Combo() int { return t.combo }

// MaxCombo returns the longest run of non-miss verdicts.
func (t *Tally) MaxCombo() int { return t.maxCombo }

// Last returns the most recent verdict.
func (t *Tally) Last() (core.Verdict, bool) {
	return t.last, t.hasLast
}

// Mean returns the mean hit offset in milliseconds. Misses are excluded.
func (t *Tally) Mean() float64 {
	if t.hits == 0 {
		return 0
	}
	return t.sum / float64(t.hits)
}

// StdDev returns the population standard deviation of hit offsets.
func (t *Tally) StdDev() float64 {
	if t.hits == 0 {
		return 0
	}
	mean := t.Mean()
	variance := t.sumSq/float64(t.hits) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
