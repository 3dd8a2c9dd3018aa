// Package config provides YAML-based session configuration loading,
// validation and judge presets for the rhythm runtime.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Session contains everything fixed at session start.
type Session struct {
	LookaheadMs int64          `yaml:"lookahead_ms"`
	Lanes       int            `yaml:"lanes"`
	Tiers       core.Tiers     `yaml:"tiers"`
	Bindings    []core.Binding `yaml:"bindings"`
	Display     Display        `yaml:"display"`
}

// Display defines how the terminal host draws the playfield.
type Display struct {
	LaneWidth   int `yaml:"lane_width"`   // Columns per lane
	LaneHeight  int `yaml:"lane_height"`  // Rows covering the lookahead window
	BiasRows    int `yaml:"bias_rows"`    // Rows below the judgement line
	HighlightMs int `yaml:"highlight_ms"` // Lane highlight after a press
	TickMs      int `yaml:"tick_ms"`      // Render tick interval
}

// KeyBindings returns the lookup table for the configured bindings.
func (s Session) KeyBindings() core.Bindings {
	return core.NewBindings(s.Bindings)
}

// TickInterval returns the render tick interval.
func (d Display) TickInterval() time.Duration {
	return time.Duration(d.TickMs) * time.Millisecond
}

// Highlight returns how long a lane stays highlighted after a press.
func (d Display) Highlight() time.Duration {
	return time.Duration(d.HighlightMs) * time.Millisecond
}

// Validate checks the configuration and normalizes key names.
func (s *Session) Validate() error {
	if s.LookaheadMs <= 0 {
		return fmt.Errorf("config: lookahead_ms must be positive, got %d: %w", s.LookaheadMs, ErrInvalid)
	}
	if s.Lanes < 1 {
		return fmt.Errorf("config: lanes must be at least 1, got %d: %w", s.Lanes, ErrInvalid)
	}
	if len(s.Tiers) == 0 {
		return fmt.Errorf("config: no judgement tiers: %w", ErrInvalid)
	}
	for _, t := range s.Tiers {
		if t.ToleranceMs <= 0 {
			return fmt.Errorf("config: tier %q tolerance must be positive: %w", t.Label, ErrInvalid)
		}
		if t.Label == "" || t.Label == core.MissLabel {
			return fmt.Errorf("config: tier label %q is reserved or empty: %w", t.Label, ErrInvalid)
		}
	}
	if !s.Tiers.Ascending() {
		return fmt.Errorf("config: tiers must be sorted by ascending tolerance: %w", ErrInvalid)
	}

	seen := make(map[string]bool, len(s.Bindings))
	for i := range s.Bindings {
		b := &s.Bindings[i]
		b.Key = NormalizeKey(b.Key)
		if b.Key == "" {
			return fmt.Errorf("config: binding %d has no key: %w", i, ErrInvalid)
		}
		if b.Lane < 0 || b.Lane >= s.Lanes {
			return fmt.Errorf("config: key %q bound to unknown lane %d: %w", b.Key, b.Lane, ErrInvalid)
		}
		if seen[b.Key] {
			return fmt.Errorf("config: key %q bound twice: %w", b.Key, ErrInvalid)
		}
		seen[b.Key] = true
	}

	d := s.Display
	if d.LaneWidth < 1 || d.LaneHeight < 1 || d.BiasRows < 0 || d.TickMs < 1 || d.HighlightMs < 0 {
		return fmt.Errorf("config: display values out of range %+v: %w", d, ErrInvalid)
	}
	return nil
}

// NormalizeKey maps configuration key names to the identifiers the terminal
// reports.
func NormalizeKey(key string) string {
	switch key {
	case "space", "Space", "SPACE":
		return " "
	}
	return key
}

// JudgePreset represents a named judgement strictness.
type JudgePreset string

const (
	JudgeEasy   JudgePreset = "easy"
	JudgeNormal JudgePreset = "normal"
	JudgeHard   JudgePreset = "hard"
)

// ParseJudgePreset validates a preset name. Empty means normal.
func ParseJudgePreset(name string) (JudgePreset, error) {
	switch p := JudgePreset(name); p {
	case "":
		return JudgeNormal, nil
	case JudgeEasy, JudgeNormal, JudgeHard:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown judge preset %q (easy, normal, hard): %w", name, ErrInvalid)
}

// Factor returns the tolerance multiplier for the preset.
func (p JudgePreset) Factor() float64 {
	switch p {
	case JudgeEasy:
		return 1.5
	case JudgeHard:
		return 0.75
	default:
		return 1.0
	}
}

// ApplyJudgePreset scales every tier tolerance by the preset factor and
// validates the result. Rounding can merge narrow windows, which is an error.
func ApplyJudgePreset(cfg *Session, preset JudgePreset) error {
	if preset.Factor() == 1.0 {
		return nil
	}
	cfg.Tiers = cfg.Tiers.Scale(preset.Factor())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: judge preset %s: %w", preset, err)
	}
	return nil
}
