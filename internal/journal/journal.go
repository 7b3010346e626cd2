// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a history of conversions in SQLite.
// Implements: docs/ARCHITECTURE § Conversion Journal.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gsconvert/pkg/types"
)

const defaultLimit = 20

// timeLayout has fixed-width fractions so rows sort by start time as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database at path and creates the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id          TEXT PRIMARY KEY,
			input       TEXT NOT NULL,
			device      TEXT NOT NULL,
			status      TEXT NOT NULL,
			code        INTEGER NOT NULL DEFAULT 0,
			error       TEXT NOT NULL DEFAULT '',
			page_count  INTEGER NOT NULL DEFAULT 0,
			outputs     TEXT NOT NULL DEFAULT '[]',
			spot_colors TEXT NOT NULL DEFAULT '[]',
			parameters  TEXT NOT NULL DEFAULT '',
			started_at  TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started ON conversions(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores r, replacing an earlier row with the same ID.
func (s *Store) Record(ctx context.Context, r types.ConversionResult) error {
	outputs, err := json.Marshal(nonNil(r.Outputs))
	if err != nil {
		return fmt.Errorf("encoding outputs: %w", err)
	}
	spots, err := json.Marshal(nonNil(r.SpotColors))
	if err != nil {
		return fmt.Errorf("encoding spot colors: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO conversions
			(id, input, device, status, code, error, page_count, outputs, spot_colors, parameters, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Input, string(r.Device), string(r.Status), r.Code, r.Error, r.PageCount,
		string(outputs), string(spots), r.Parameters,
		r.StartedAt.UTC().Format(timeLayout), r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording conversion %s: %w", r.ID, err)
	}
	return nil
}

// List returns the most recent conversions, newest first. A limit <= 0 uses
// the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, device, status, code, error, page_count, outputs, spot_colors, parameters, started_at, duration_ms
		 FROM conversions ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var results []types.ConversionResult
	for rows.Next() {
		var (
			r              types.ConversionResult
			device, status string
			outputs, spots string
			started        string
			durationMillis int64
		)
		if err := rows.Scan(&r.ID, &r.Input, &device, &status, &r.Code, &r.Error, &r.PageCount,
			&outputs, &spots, &r.Parameters, &started, &durationMillis); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		r.Device = types.Device(device)
		r.Status = types.ConversionStatus(status)
		if err := json.Unmarshal([]byte(outputs), &r.Outputs); err != nil {
			return nil, fmt.Errorf("decoding outputs of %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(spots), &r.SpotColors); err != nil {
			return nil, fmt.Errorf("decoding spot colors of %s: %w", r.ID, err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing start time of %s: %w", r.ID, err)
		}
		r.Duration = time.Duration(durationMillis) * time.Millisecond
		results = append(results, r)
	}
	return results, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
