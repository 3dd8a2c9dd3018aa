// Package catalog resolves chart references for the CLI and the menus: a
// built-in pattern id, a chart file path, the id of a chart in the chart
// directory or a library id (or unique prefix).
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/tui-rhythm/internal/chart"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// ErrUnknown is returned when a reference matches nothing.
var ErrUnknown = errors.New("unknown chart")

// Kind tells where a chart comes from.
type Kind string

const (
	KindBuiltin Kind = "builtin"
	KindLibrary Kind = "library"
	KindFile    Kind = "file"
)

// Item is one choosable chart.
type Item struct {
	Ref        string // Pass to Load
	Title      string
	Artist     string
	Kind       Kind
	Notes      int
	DurationMs int64
}

// Catalog lists and loads charts for a session with a fixed lane count.
type Catalog struct {
	store  *storage.Store
	dir    string
	params registry.Params
}

// New creates a catalog. store may be nil and dir may be empty or missing.
// params.Lanes must match the session configuration; charts are validated
// against it.
func New(store *storage.Store, dir string, params registry.Params) *Catalog {
	return &Catalog{store: store, dir: dir, params: params.WithDefaults()}
}

// Items returns built-in patterns, then charts in the chart directory that
// fit the session lanes, then library charts.
func (c *Catalog) Items() ([]Item, error) {
	var items []Item
	for _, info := range registry.List() {
		ch, err := registry.Create(info.ID, c.params)
		if err != nil {
			return items, fmt.Errorf("catalog: %w", err)
		}
		items = append(items, Item{
			Ref:        info.ID,
			Title:      info.Title,
			Kind:       KindBuiltin,
			Notes:      len(ch.Notes),
			DurationMs: ch.Duration(),
		})
	}

	charts, err := c.dirCharts()
	if err != nil {
		return items, err
	}
	for _, ch := range charts {
		if ch.Validate(c.params.Lanes) != nil {
			continue
		}
		items = append(items, Item{
			Ref:        ch.Source,
			Title:      ch.Name,
			Artist:     ch.Artist,
			Kind:       KindFile,
			Notes:      len(ch.Notes),
			DurationMs: ch.Duration(),
		})
	}

	if c.store == nil {
		return items, nil
	}
	entries, err := c.store.ListCharts()
	if err != nil {
		return items, fmt.Errorf("catalog: %w", err)
	}
	for _, e := range entries {
		items = append(items, Item{
			Ref:        e.ID,
			Title:      e.Name,
			Artist:     e.Artist,
			Kind:       KindLibrary,
			Notes:      e.Notes,
			DurationMs: e.DurationMs,
		})
	}
	return items, nil
}

// Load resolves ref and validates the chart against the session lanes.
// Built-in ids win over file paths, then chart directory ids, then library
// ids.
func (c *Catalog) Load(ref string) (chart.Chart, error) {
	ch, err := c.lookup(ref)
	if err != nil {
		return chart.Chart{}, err
	}
	if err := ch.Validate(c.params.Lanes); err != nil {
		return chart.Chart{}, err
	}
	return ch, nil
}

func (c *Catalog) lookup(ref string) (chart.Chart, error) {
	if registry.Exists(ref) {
		return registry.Create(ref, c.params)
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return chart.LoadFile(ref)
	}

	if c.hasDir() {
		ch, err := chart.NewLoader(c.dir).LoadByID(ref)
		if err == nil {
			return ch, nil
		}
		if !errors.Is(err, chart.ErrNotFound) {
			return chart.Chart{}, fmt.Errorf("catalog: %w", err)
		}
	}

	if c.store != nil {
		ch, err := c.store.Chart(ref)
		if err == nil {
			return ch, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return chart.Chart{}, err
		}
	}

	return chart.Chart{}, fmt.Errorf("catalog: %q is not a pattern, file or library id: %w", ref, ErrUnknown)
}

// hasDir reports whether the chart directory exists.
func (c *Catalog) hasDir() bool {
	if c.dir == "" {
		return false
	}
	info, err := os.Stat(c.dir)
	return err == nil && info.IsDir()
}

func (c *Catalog) dirCharts() ([]chart.Chart, error) {
	if !c.hasDir() {
		return nil, nil
	}
	charts, err := chart.NewLoader(c.dir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return charts, nil
}
