package core

// MissLabel is reported for notes that scroll past the loosest window.
const MissLabel = "MISS"

// Verdict is the outcome for a single note, either a judgement tier or a miss.
type Verdict struct {
	Label  string
	Lane   int
	SlotID int   // Pool slot the note occupied
	TimeMs int64 // Target time of the note
	DiffMs int64 // clock - target at the moment of the verdict
	Miss   bool
}

// VerdictSink receives every verdict the engine produces.
type VerdictSink interface {
	Verdict(v Verdict)
}

// VerdictFunc adapts a function to VerdictSink.
type VerdictFunc func(v Verdict)

// Verdict calls f(v).
func (f VerdictFunc) Verdict(v Verdict) {
	f(v)
}

// Verdicts fans a verdict out to several sinks in order.
type Verdicts []VerdictSink

// Verdict forwards v to every sink.
func (vs Verdicts) Verdict(v Verdict) {
	for _, s := range vs {
		s.Verdict(v)
	}
}
