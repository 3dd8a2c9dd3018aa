// Package storage provides the SQLite chart library: imported charts are kept
// keyed by the SHA-256 of their notes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-rhythm/internal/chart"
)

var (
	// ErrNotFound is returned when no stored chart matches a reference.
	ErrNotFound = errors.New("chart not found")
	// ErrAmbiguous is returned when an id prefix matches several charts.
	ErrAmbiguous = errors.New("chart id prefix is ambiguous")
)

// Store manages the SQLite database connection for the chart library.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Entry is the listing row of a stored chart.
type Entry struct {
	ID         string // Hex SHA-256 of the notes
	Name       string
	Artist     string
	Lanes      int
	Notes      int
	DurationMs int64
	ImportedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// A nil logger discards output.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	logger.Debug("chart library open", "path", dbPath)
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS charts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			lanes INTEGER NOT NULL,
			note_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			body BLOB NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_charts_name ON charts(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveChart stores c under the hash of its notes and returns that id.
// Saving the same notes again updates the metadata.
func (s *Store) SaveChart(c chart.Chart) (string, error) {
	id := chart.Hash(c.Notes)
	c.ID = id

	body, err := chart.MarshalYAML(c)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode chart: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO charts (id, name, artist, lanes, note_count, duration_ms, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   artist = excluded.artist,
		   lanes = excluded.lanes,
		   body = excluded.body`,
		id, c.Name, c.Artist, c.LaneCount(), len(c.Notes), c.Duration(), body,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save chart: %w", err)
	}

	s.logger.Info("chart saved", "id", id[:12], "name", c.Name, "notes", len(c.Notes))
	return id, nil
}

// Chart loads the chart whose id equals ref or starts with it.
func (s *Store) Chart(ref string) (chart.Chart, error) {
	id, err := s.resolve(ref)
	if err != nil {
		return chart.Chart{}, err
	}

	var body []byte
	err = s.db.QueryRow("SELECT body FROM charts WHERE id = ?", id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return chart.Chart{}, fmt.Errorf("storage: %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return chart.Chart{}, fmt.Errorf("storage: cannot query chart: %w", err)
	}

	c, err := chart.ParseYAML(body)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("storage: corrupt chart %s: %w", id, err)
	}
	c.ID = id
	c.Source = "library"
	return c, nil
}

// ListCharts returns every stored chart ordered by name.
func (s *Store) ListCharts() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, artist, lanes, note_count, duration_ms, imported_at
		 FROM charts
		 ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query charts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var importedAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Artist, &e.Lanes, &e.Notes, &e.DurationMs, &importedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.ImportedAt = parseTime(importedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteChart removes the chart matching ref.
func (s *Store) DeleteChart(ref string) error {
	id, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM charts WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete chart: %w", err)
	}
	s.logger.Info("chart deleted", "id", id[:12])
	return nil
}

// resolve expands an id prefix to a full id.
func (s *Store) resolve(ref string) (string, error) {
	ref = strings.ToLower(ref)
	if ref == "" || strings.Trim(ref, "0123456789abcdef") != "" {
		return "", fmt.Errorf("storage: %q is not a chart id: %w", ref, ErrNotFound)
	}

	rows, err := s.db.Query("SELECT id FROM charts WHERE id LIKE ? LIMIT 2", ref+"%")
	if err != nil {
		return "", fmt.Errorf("storage: cannot query charts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("storage: %s: %w", ref, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("storage: %s: %w", ref, ErrAmbiguous)
	}
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
