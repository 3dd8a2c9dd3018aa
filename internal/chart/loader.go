package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile loads a single chart file. The chart id defaults to the file name
// without extension.
func LoadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExtension(ext) {
		return Chart{}, fmt.Errorf("unsupported extension: %s", ext)
	}

	c, err := ParseYAML(data)
	if err != nil {
		return Chart{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if c.ID == "" {
		c.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	c.Source = path
	return c, nil
}

// Loader handles loading charts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new chart loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all chart files.
// Unparsable files are skipped. Returns charts sorted by ID.
func (l *Loader) LoadAll() ([]Chart, error) {
	var charts []Chart

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		c, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		charts = append(charts, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(charts, func(i, j int) bool {
		return charts[i].ID < charts[j].ID
	})
	return charts, nil
}

// LoadByID loads a specific chart by ID.
func (l *Loader) LoadByID(id string) (Chart, error) {
	charts, err := l.LoadAll()
	if err != nil {
		return Chart{}, err
	}
	for _, c := range charts {
		if c.ID == id {
			return c, nil
		}
	}
	return Chart{}, fmt.Errorf("chart %q in %s: %w", id, l.Root, ErrNotFound)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
