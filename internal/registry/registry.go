// Package registry provides a global registry for built-in chart patterns.
// Patterns register themselves in init() functions, allowing the CLI and the
// menu to discover and generate charts without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-rhythm/internal/chart"
	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// Params shape a generated chart. Zero fields take the defaults below.
type Params struct {
	Lanes   int
	Count   int
	StartMs int64
	StepMs  int64
}

// Defaults for generated charts.
const (
	DefaultCount   = 1024
	DefaultStartMs = 1000
	DefaultStepMs  = 80
	DefaultLanes   = 5
)

// WithDefaults fills zero fields.
func (p Params) WithDefaults() Params {
	if p.Lanes <= 0 {
		p.Lanes = DefaultLanes
	}
	if p.Count <= 0 {
		p.Count = DefaultCount
	}
	if p.StartMs <= 0 {
		p.StartMs = DefaultStartMs
	}
	if p.StepMs <= 0 {
		p.StepMs = DefaultStepMs
	}
	return p
}

// Pattern generates a chart procedurally.
type Pattern interface {
	// ID returns a unique identifier (e.g., "alternate", "stairs").
	// Used by CLI commands.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Generate returns notes sorted by time, in lanes [0, p.Lanes).
	// p has defaults applied.
	Generate(p Params) []core.Note
}

// PatternInfo contains metadata about a registered pattern.
type PatternInfo struct {
	ID    string
	Title string
}

var (
	patterns = make(map[string]Pattern)
	mu       sync.RWMutex
)

// Register adds a pattern to the registry.
// Typically called from a pattern's init() function.
// Panics if a pattern with the same ID is already registered.
func Register(p Pattern) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := patterns[p.ID()]; exists {
		panic(fmt.Sprintf("registry: pattern %q already registered", p.ID()))
	}
	patterns[p.ID()] = p
}

// List returns information about all registered patterns, sorted by ID.
func List() []PatternInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PatternInfo, 0, len(patterns))
	for id, p := range patterns {
		result = append(result, PatternInfo{ID: id, Title: p.Title()})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create generates the chart of pattern id.
// Returns an error if the pattern ID is not registered.
func Create(id string, p Params) (chart.Chart, error) {
	mu.RLock()
	pat, ok := patterns[id]
	mu.RUnlock()
	if !ok {
		return chart.Chart{}, fmt.Errorf("registry: unknown pattern %q", id)
	}

	p = p.WithDefaults()
	return chart.Chart{
		ID:     id,
		Name:   pat.Title(),
		Lanes:  p.Lanes,
		Notes:  pat.Generate(p),
		Source: "builtin",
	}, nil
}

// Exists checks if a pattern with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := patterns[id]
	return ok
}
