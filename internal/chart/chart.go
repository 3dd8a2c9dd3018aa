// Package chart provides chart files: the YAML format, a directory loader,
// ordering and lane validation, and a content hash used as library id.
package chart

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

var (
	// ErrUnsorted is returned for charts whose notes are not in time order.
	ErrUnsorted = errors.New("notes not sorted by time")
	// ErrLane is returned for notes outside the session's lanes.
	ErrLane = errors.New("note lane out of range")
	// ErrEmpty is returned for charts without notes.
	ErrEmpty = errors.New("chart has no notes")
	// ErrNotFound is returned when a loader has no chart with the given id.
	ErrNotFound = errors.New("chart not found")
)

// Chart is a playable note sequence with its metadata.
type Chart struct {
	ID       string
	Name     string
	Artist   string
	Lanes    int // Lanes the chart was written for, 0 if unspecified
	Notes    []core.Note
	Metadata map[string]string
	Source   string // File path, "builtin" or "library"
}

// Duration returns the time of the last note.
func (c *Chart) Duration() int64 {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].TimeMs
}

// LaneCount returns the number of lanes the chart uses: the declared count or,
// if none, one past the highest lane referenced.
func (c *Chart) LaneCount() int {
	if c.Lanes > 0 {
		return c.Lanes
	}
	highest := -1
	for _, n := range c.Notes {
		if n.Lane > highest {
			highest = n.Lane
		}
	}
	return highest + 1
}

// Validate checks that notes are sorted by time and fit in lanes.
// The engine relies on both and never re-sorts.
func (c *Chart) Validate(lanes int) error {
	if len(c.Notes) == 0 {
		return fmt.Errorf("chart %s: %w", c.label(), ErrEmpty)
	}
	for i, n := range c.Notes {
		if n.Lane < 0 || n.Lane >= lanes {
			return fmt.Errorf("chart %s: note %d (%v) with %d lanes: %w", c.label(), i, n, lanes, ErrLane)
		}
		if i > 0 && n.TimeMs < c.Notes[i-1].TimeMs {
			return fmt.Errorf("chart %s: note %d at %d before %d: %w", c.label(), i, n.TimeMs, c.Notes[i-1].TimeMs, ErrUnsorted)
		}
	}
	return nil
}

func (c *Chart) label() string {
	if c.ID != "" {
		return c.ID
	}
	if c.Name != "" {
		return c.Name
	}
	return "(unnamed)"
}

// Hash returns the hex SHA-256 of the note sequence. Metadata does not
// contribute, so retitled copies of a chart share a hash.
func Hash(notes []core.Note) string {
	h := sha256.New()
	var buf [17]byte
	for _, n := range notes {
		binary.BigEndian.PutUint64(buf[0:8], uint64(n.TimeMs))
		binary.BigEndian.PutUint64(buf[8:16], uint64(n.Lane))
		buf[16] = 0
		if n.Long {
			buf[16] = 1
		}
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
