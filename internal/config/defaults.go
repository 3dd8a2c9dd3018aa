package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

//go:embed defaults/session.yaml
var defaultSessionYAML []byte

// DefaultSession returns the built-in session configuration.
func DefaultSession() Session {
	return Session{
		LookaheadMs: 1000,
		Lanes:       5,
		Tiers: core.Tiers{
			{Label: "PERFECT", ToleranceMs: 30},
			{Label: "GOOD", ToleranceMs: 60},
			{Label: "NORMAL", ToleranceMs: 70},
			{Label: "BAD", ToleranceMs: 110},
		},
		Bindings: []core.Binding{
			{Key: "e", Lane: 0},
			{Key: "f", Lane: 1},
			{Key: " ", Lane: 2},
			{Key: "j", Lane: 3},
			{Key: "i", Lane: 4},
		},
		Display: Display{
			LaneWidth:   7,
			LaneHeight:  20,
			BiasRows:    3,
			HighlightMs: 120,
			TickMs:      16,
		},
	}
}

// DefaultSessionYAML returns the embedded default configuration file.
func DefaultSessionYAML() []byte {
	return defaultSessionYAML
}
