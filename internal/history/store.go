// Package history records completed conversions in Postgres. It is an
// optional audit trail around the conversion engine: the engine itself
// keeps no state between requests, and when no database is configured
// the store is a no-op.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of pgx operations the store needs. Satisfied by
// both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Record is one completed conversion.
type Record struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	Mode      string    `json:"mode"`
	Rows      int       `json:"rows"`
	Entries   int       `json:"entries"`
	Messages  int       `json:"messages"`
	Duration  int64     `json:"durationMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists conversion records. A nil Store is valid and records
// nothing, so callers never need to branch on configuration.
type Store struct {
	db DBTX
}

// New creates a Store backed by the given database handle.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// Enabled reports whether the store can persist records.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Ensure creates the history table when it does not exist yet.
func (s *Store) Ensure(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS conversion_history (
			id          UUID PRIMARY KEY,
			file_name   TEXT NOT NULL,
			mode        TEXT NOT NULL,
			row_count   INT NOT NULL,
			entry_count INT NOT NULL,
			msg_count   INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure history table: %w", err)
	}
	return nil
}

// Add inserts one conversion record. A zero ID is filled in.
func (s *Store) Add(ctx context.Context, rec Record) error {
	if !s.Enabled() {
		return nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO conversion_history
			(id, file_name, mode, row_count, entry_count, msg_count, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		toPgUUID(rec.ID), rec.FileName, rec.Mode,
		rec.Rows, rec.Entries, rec.Messages, rec.Duration,
		pgtype.Timestamptz{Time: rec.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if !s.Enabled() {
		return []Record{}, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, file_name, mode, row_count, entry_count, msg_count, duration_ms, created_at
		FROM conversion_history
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec Record
			id  pgtype.UUID
			at  pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &rec.FileName, &rec.Mode,
			&rec.Rows, &rec.Entries, &rec.Messages, &rec.Duration, &at); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		rec.ID = uuid.UUID(id.Bytes)
		rec.CreatedAt = at.Time
		records = append(records, rec)
	}
	return records, rows.Err()
}

// toPgUUID converts a uuid.UUID to its pgtype form.
func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
