package chart

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// YAMLChart represents the YAML structure for a chart file.
type YAMLChart struct {
	ID       string            `yaml:"id,omitempty"`
	Name     string            `yaml:"name"`
	Artist   string            `yaml:"artist,omitempty"`
	Lanes    int               `yaml:"lanes,omitempty"`
	OffsetMs int64             `yaml:"offset_ms,omitempty"` // Added to every note time
	Notes    []core.Note       `yaml:"notes"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML chart. It does not validate ordering or lanes.
func ParseYAML(data []byte) (Chart, error) {
	var yc YAMLChart
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Chart{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	notes := make([]core.Note, len(yc.Notes))
	for i, n := range yc.Notes {
		n.TimeMs += yc.OffsetMs
		notes[i] = n
	}

	return Chart{
		ID:       yc.ID,
		Name:     yc.Name,
		Artist:   yc.Artist,
		Lanes:    yc.Lanes,
		Notes:    notes,
		Metadata: yc.Metadata,
	}, nil
}

// MarshalYAML encodes c in the chart file format with offsets applied.
func MarshalYAML(c Chart) ([]byte, error) {
	data, err := yaml.Marshal(YAMLChart{
		ID:       c.ID,
		Name:     c.Name,
		Artist:   c.Artist,
		Lanes:    c.Lanes,
		Notes:    c.Notes,
		Metadata: c.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
