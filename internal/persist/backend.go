package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Backend reads and writes the raw snapshot payload. Two
// implementations exist: a JSON file and a SQLite table, selected by
// configuration the same way the rest of the data dir is.
type Backend interface {
	// Read returns the stored payload, or (nil, nil) when nothing has
	// been stored yet.
	Read() ([]byte, error)
	Write(payload []byte) error
	Close() error
}

// FileBackend stores the snapshot as a single JSON file, written
// atomically via a temp file and rename so a crash mid-write never
// leaves a torn snapshot.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Read() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Write(payload []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// SQLiteBackend stores the snapshot in a single-row table. It keeps
// prior generations in a history table capped at a few rows, which
// doubles as an on-disk backup of recent saves.
type SQLiteBackend struct {
	db *sql.DB
}

const snapshotHistoryKeep = 5

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshot_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot tables: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Read() ([]byte, error) {
	var payload []byte
	err := b.db.QueryRow("SELECT payload FROM snapshot WHERE id = 1").Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return payload, nil
}

func (b *SQLiteBackend) Write(payload []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO snapshot (id, payload, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		payload, now,
	); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO snapshot_history (payload, saved_at) VALUES (?, ?)",
		payload, now,
	); err != nil {
		return fmt.Errorf("failed to write snapshot history: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM snapshot_history WHERE id NOT IN (
			SELECT id FROM snapshot_history ORDER BY id DESC LIMIT ?
		)`, snapshotHistoryKeep,
	); err != nil {
		return fmt.Errorf("failed to prune snapshot history: %w", err)
	}

	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
