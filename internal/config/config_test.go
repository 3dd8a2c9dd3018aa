package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg := embeddedSession()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}

	def := DefaultSession()
	if err := def.Validate(); err != nil {
		t.Fatalf("hardcoded config invalid: %v", err)
	}

	if cfg.LookaheadMs != def.LookaheadMs || cfg.Lanes != def.Lanes || cfg.Display != def.Display {
		t.Errorf("embedded = %+v, expected %+v", cfg, def)
	}
	if len(cfg.Tiers) != len(def.Tiers) {
		t.Fatalf("embedded tiers = %v, expected %v", cfg.Tiers, def.Tiers)
	}
	for i := range def.Tiers {
		if cfg.Tiers[i] != def.Tiers[i] {
			t.Errorf("tier %d = %+v, expected %+v", i, cfg.Tiers[i], def.Tiers[i])
		}
	}
	for i := range def.Bindings {
		if cfg.Bindings[i] != def.Bindings[i] {
			t.Errorf("binding %d = %+v, expected %+v", i, cfg.Bindings[i], def.Bindings[i])
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Session)
	}{
		{"zero lookahead", func(s *Session) { s.LookaheadMs = 0 }},
		{"no lanes", func(s *Session) { s.Lanes = 0 }},
		{"no tiers", func(s *Session) { s.Tiers = nil }},
		{"unsorted tiers", func(s *Session) { s.Tiers[0], s.Tiers[1] = s.Tiers[1], s.Tiers[0] }},
		{"negative tolerance", func(s *Session) { s.Tiers[0].ToleranceMs = -5 }},
		{"reserved label", func(s *Session) { s.Tiers[3].Label = core.MissLabel }},
		{"unknown lane", func(s *Session) { s.Bindings[0].Lane = 5 }},
		{"duplicate key", func(s *Session) { s.Bindings[1].Key = "e" }},
		{"space twice", func(s *Session) { s.Bindings[0].Key = "space" }},
		{"empty key", func(s *Session) { s.Bindings[0].Key = "" }},
		{"zero tick", func(s *Session) { s.Display.TickMs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSession()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestValidateNormalizesSpace(t *testing.T) {
	cfg := DefaultSession()
	cfg.Bindings[2].Key = "space"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if lane, ok := cfg.KeyBindings().Lane(" "); !ok || lane != 2 {
		t.Errorf("space bound to (%d, %v), expected lane 2", lane, ok)
	}
}

func TestLoadSessionCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	data := []byte("lookahead_ms: 1500\ndisplay:\n  tick_ms: 8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() = %v", err)
	}
	if cfg.LookaheadMs != 1500 {
		t.Errorf("LookaheadMs = %d, expected 1500", cfg.LookaheadMs)
	}
	if cfg.Display.TickMs != 8 {
		t.Errorf("TickMs = %d, expected 8", cfg.Display.TickMs)
	}
	// Unset fields keep their defaults.
	if cfg.Lanes != 5 || len(cfg.Tiers) != 4 || cfg.Display.LaneWidth != 7 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadSessionErrors(t *testing.T) {
	if _, err := LoadSession(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("lanes: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSession(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadSession() = %v, expected ErrInvalid for bindings beyond lane 1", err)
	}
}

func TestLoadSessionUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if cfg, err := LoadSession(""); err != nil || cfg.LookaheadMs != 1000 {
		t.Fatalf("LoadSession() = (%d, %v), expected embedded default", cfg.LookaheadMs, err)
	}

	dir := filepath.Join(home, ".rhythm", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "session.yaml"), []byte("lookahead_ms: 800\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSession("")
	if err != nil {
		t.Fatalf("LoadSession() = %v", err)
	}
	if cfg.LookaheadMs != 800 {
		t.Errorf("LookaheadMs = %d, expected 800 from user config", cfg.LookaheadMs)
	}
}

func TestJudgePresets(t *testing.T) {
	tests := []struct {
		name  string
		want  JudgePreset
		first int64
	}{
		{"", JudgeNormal, 30},
		{"easy", JudgeEasy, 45},
		{"normal", JudgeNormal, 30},
		{"hard", JudgeHard, 23},
	}

	for _, tt := range tests {
		p, err := ParseJudgePreset(tt.name)
		if err != nil || p != tt.want {
			t.Errorf("ParseJudgePreset(%q) = (%q, %v), expected %q", tt.name, p, err, tt.want)
			continue
		}
		cfg := DefaultSession()
		if err := ApplyJudgePreset(&cfg, p); err != nil {
			t.Errorf("ApplyJudgePreset(%s) = %v", p, err)
			continue
		}
		if cfg.Tiers[0].ToleranceMs != tt.first {
			t.Errorf("%s: PERFECT tolerance = %d, expected %d", p, cfg.Tiers[0].ToleranceMs, tt.first)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: scaled config invalid: %v", p, err)
		}
	}

	if _, err := ParseJudgePreset("insane"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseJudgePreset(insane) = %v, expected ErrInvalid", err)
	}
}

func TestJudgePresetRejectsMergedTiers(t *testing.T) {
	cfg := DefaultSession()
	cfg.Tiers = core.Tiers{
		{Label: "PERFECT", ToleranceMs: 2},
		{Label: "GOOD", ToleranceMs: 3},
		{Label: "NORMAL", ToleranceMs: 70},
		{Label: "BAD", ToleranceMs: 110},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v before the preset", err)
	}

	if err := ApplyJudgePreset(&cfg, JudgeHard); !errors.Is(err, ErrInvalid) {
		t.Errorf("ApplyJudgePreset(hard) = %v, expected ErrInvalid", err)
	}
}
