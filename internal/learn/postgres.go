package learn

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the learned_corrections table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS learned_corrections (
    original      TEXT NOT NULL,
    corrected     TEXT NOT NULL,
    left_context  JSONB NOT NULL DEFAULT '[]',
    right_context JSONB NOT NULL DEFAULT '[]',
    confidence    DOUBLE PRECISION NOT NULL,
    times_applied INTEGER NOT NULL DEFAULT 1,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_learned_corrections_pair
    ON learned_corrections(lower(original), lower(corrected));
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database, for setups
// where several transcription clients share one learned-correction list.
// Context word lists are serialised as JSONB.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] that uses the given database
// connection or pool. The caller is responsible for calling
// [PostgresStore.Migrate] to ensure the schema exists before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database, creating the
// learned_corrections table and its unique index if they do not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("learn: migrate: %w", err)
	}
	return nil
}

// Save implements [Store.Save]. Repeat confirmations of the same
// (original, corrected) pair update the existing row in place, bumping
// times_applied and confidence, instead of inserting a duplicate.
func (s *PostgresStore) Save(ctx context.Context, c Correction) error {
	leftJSON, err := json.Marshal(emptySlice(c.LeftContext))
	if err != nil {
		return fmt.Errorf("learn: marshal left_context: %w", err)
	}
	rightJSON, err := json.Marshal(emptySlice(c.RightContext))
	if err != nil {
		return fmt.Errorf("learn: marshal right_context: %w", err)
	}

	const query = `
		INSERT INTO learned_corrections (
			original, corrected, left_context, right_context, confidence
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (lower(original), lower(corrected)) DO UPDATE SET
			left_context = EXCLUDED.left_context,
			right_context = EXCLUDED.right_context,
			times_applied = learned_corrections.times_applied + 1,
			confidence = LEAST(learned_corrections.confidence + $6, 1.0),
			updated_at = now()
		RETURNING created_at, updated_at`

	err = s.db.QueryRow(ctx, query,
		c.Original, c.Corrected, leftJSON, rightJSON, initialConfidence, confidenceStep,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("learn: save: %w", err)
	}
	return nil
}

// All implements [Store.All].
func (s *PostgresStore) All(ctx context.Context) ([]Correction, error) {
	const query = `
		SELECT original, corrected, left_context, right_context,
		       confidence, times_applied, created_at, updated_at
		FROM learned_corrections
		ORDER BY lower(original)`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("learn: list: %w", err)
	}
	defer rows.Close()

	var all []Correction
	for rows.Next() {
		var c Correction
		var leftJSON, rightJSON []byte

		if err := rows.Scan(
			&c.Original, &c.Corrected, &leftJSON, &rightJSON,
			&c.Confidence, &c.TimesApplied, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("learn: list scan: %w", err)
		}
		if err := json.Unmarshal(leftJSON, &c.LeftContext); err != nil {
			return nil, fmt.Errorf("learn: unmarshal left_context: %w", err)
		}
		if err := json.Unmarshal(rightJSON, &c.RightContext); err != nil {
			return nil, fmt.Errorf("learn: unmarshal right_context: %w", err)
		}
		all = append(all, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("learn: list: %w", err)
	}
	return all, nil
}

// Remove implements [Store.Remove].
func (s *PostgresStore) Remove(ctx context.Context, original, corrected string) error {
	const query = `
		DELETE FROM learned_corrections
		WHERE lower(original) = lower($1) AND lower(corrected) = lower($2)`

	tag, err := s.db.Exec(ctx, query, original, corrected)
	if err != nil {
		return fmt.Errorf("learn: remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// emptySlice returns s if non-nil, otherwise an empty non-nil slice. This
// ensures JSON marshalling produces "[]" instead of "null".
func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
