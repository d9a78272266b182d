// Package store provides the local sqlite persistence backing the match
// cache and the cached resume text.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	job_id     TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Store wraps a sqlite database file.
type Store struct {
	db *sql.DB
}

// Open creates or opens the sqlite database at the provided path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is required")
	}

	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %q: %w", path, err)
	}

	// The engine is single-writer; a single connection avoids sqlite
	// busy errors without a busy-timeout dance.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing store schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetMatch returns the stored payload for a job id. The second return
// value reports whether a record exists.
func (s *Store) GetMatch(jobID string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM matches WHERE job_id = ?`, jobID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading match %q: %w", jobID, err)
	}
	return []byte(payload), true, nil
}

// PutMatch stores or overwrites the payload for a job id.
func (s *Store) PutMatch(jobID string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO matches (job_id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(job_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		jobID, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing match %q: %w", jobID, err)
	}
	return nil
}

// AllMatches returns every stored match payload keyed by job id.
func (s *Store) AllMatches() (map[string][]byte, error) {
	rows, err := s.db.Query(`SELECT job_id, payload FROM matches`)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	matches := make(map[string][]byte)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		matches[id] = []byte(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}

	return matches, nil
}

// GetDocument returns a named document, such as the cached resume bullet text.
func (s *Store) GetDocument(name string) (string, bool, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM documents WHERE name = ?`, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading document %q: %w", name, err)
	}
	return content, true, nil
}

// PutDocument stores or overwrites a named document.
func (s *Store) PutDocument(name, content string) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (name, content, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		name, content, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing document %q: %w", name, err)
	}
	return nil
}
