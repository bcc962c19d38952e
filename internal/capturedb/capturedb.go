// Package capturedb archives raw captures and their decoded frames in
// SQLite so buffers can be replayed and decoded offline later.
package capturedb

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/iceberg.twist/internal/imu/frame"
)

// schema.sql defines the archive tables: one row per capture holding the
// raw buffer, and one row per decoded frame.
//
//go:embed schema.sql
var schemaSQL string

type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the capture archive at path. Use
// ":memory:" for an ephemeral archive in tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize capture archive schema: %w", err)
	}

	return &DB{db}, nil
}

// Capture describes one archived acquisition.
type Capture struct {
	ID         string  `json:"id"`
	Device     string  `json:"device"`
	CapturedAt float64 `json:"captured_at"`
	ByteCount  int     `json:"byte_count"`
}

// RecordCapture stores a raw capture buffer and returns its generated ID.
func (db *DB) RecordCapture(device string, raw []byte) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO captures (id, device, byte_count, raw) VALUES (?, ?, ?, ?)`,
		id, device, len(raw), raw,
	)
	if err != nil {
		return "", fmt.Errorf("insert capture: %w", err)
	}
	return id, nil
}

// RecordFrames stores the decoded frames of a capture in stream order.
// Samples are stored as a JSON array so the rows stay queryable without a
// binary decoder.
func (db *DB) RecordFrames(captureID string, frames []frame.Frame) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO frames (capture_id, frame_index, sensor_timestamp, sample_count, samples)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range frames {
		samples, err := json.Marshal(f.Samples)
		if err != nil {
			return fmt.Errorf("marshal samples for frame %d: %w", i, err)
		}
		if _, err := stmt.Exec(captureID, i, f.Timestamp, len(f.Samples), string(samples)); err != nil {
			return fmt.Errorf("insert frame %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// CaptureRaw fetches the raw bytes of an archived capture for replay.
func (db *DB) CaptureRaw(id string) ([]byte, error) {
	var raw []byte
	err := db.QueryRow(`SELECT raw FROM captures WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("capture %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query capture %s: %w", id, err)
	}
	return raw, nil
}

// RecentCaptures lists the most recently archived captures.
func (db *DB) RecentCaptures(limit int) ([]Capture, error) {
	rows, err := db.Query(
		`SELECT id, device, captured_at, byte_count
		 FROM captures ORDER BY captured_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent captures: %w", err)
	}
	defer rows.Close()

	var captures []Capture
	for rows.Next() {
		var c Capture
		if err := rows.Scan(&c.ID, &c.Device, &c.CapturedAt, &c.ByteCount); err != nil {
			return nil, fmt.Errorf("scan capture row: %w", err)
		}
		captures = append(captures, c)
	}
	return captures, rows.Err()
}

// FrameCount reports how many decoded frames are archived for a capture.
func (db *DB) FrameCount(captureID string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM frames WHERE capture_id = ?`, captureID).Scan(&n)
	return n, err
}
