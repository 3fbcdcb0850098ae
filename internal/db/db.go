// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/propensive/digression/internal/errors"
)

// Entry represents one rendered trace kept in history
type Entry struct {
	ID         int64     `json:"id"`
	Component  string    `json:"component"`
	ClassName  string    `json:"class_name"`
	Message    string    `json:"message"`
	FrameCount int       `json:"frame_count"`
	Rendered   string    `json:"rendered"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store handles database operations
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path. An
// empty path selects ~/.digression/history.db.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.WrapStoreFailed("failed to get home dir", err)
		}
		path = filepath.Join(home, ".digression", "history.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.WrapStoreFailed("failed to create data dir", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapStoreFailed("failed to open db", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS traces (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		component TEXT NOT NULL,
		class_name TEXT NOT NULL,
		message TEXT,
		frame_count INTEGER NOT NULL,
		rendered TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_traces_class_name ON traces(class_name);
	CREATE INDEX IF NOT EXISTS idx_traces_timestamp ON traces(timestamp);
	`
	if _, err := db.Exec(query); err != nil {
		return errors.WrapStoreFailed("failed to init schema", err)
	}
	return nil
}

// Save persists one trace entry and returns its assigned id.
func (s *Store) Save(entry *Entry) (int64, error) {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := s.db.Exec(`
	INSERT INTO traces (component, class_name, message, frame_count, rendered, timestamp)
	VALUES (?, ?, ?, ?, ?, ?)
	`, entry.Component, entry.ClassName, entry.Message, entry.FrameCount, entry.Rendered, ts)
	if err != nil {
		return 0, errors.WrapStoreFailed("failed to insert trace", err)
	}
	return res.LastInsertId()
}

// List returns the most recent entries, newest first, without the
// rendered text. A non-positive limit returns everything.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
	SELECT id, component, class_name, message, frame_count, timestamp
	FROM traces ORDER BY timestamp DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.WrapStoreFailed("failed to list traces", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Component, &e.ClassName, &e.Message, &e.FrameCount, &e.Timestamp); err != nil {
			return nil, errors.WrapStoreFailed("failed to scan trace row", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry, including its rendered text.
func (s *Store) Get(id int64) (*Entry, error) {
	var e Entry
	err := s.db.QueryRow(`
	SELECT id, component, class_name, message, frame_count, rendered, timestamp
	FROM traces WHERE id = ?
	`, id).Scan(&e.ID, &e.Component, &e.ClassName, &e.Message, &e.FrameCount, &e.Rendered, &e.Timestamp)
	if err == sql.ErrNoRows {
		return nil, errors.WrapEntryNotFound(id)
	}
	if err != nil {
		return nil, errors.WrapStoreFailed("failed to load trace", err)
	}
	return &e, nil
}

// Clear removes every stored trace and reports how many were deleted.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM traces`)
	if err != nil {
		return 0, errors.WrapStoreFailed("failed to clear traces", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
