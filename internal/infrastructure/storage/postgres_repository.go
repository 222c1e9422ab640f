package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"GridironDigest/internal/domain"
	"GridironDigest/internal/ports"
)

// PostgresPublicationLog persists one row per published edition so history
// survives outside the docs directory.
type PostgresPublicationLog struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.PublicationLog = (*PostgresPublicationLog)(nil)

// Open connects to Postgres and wires the publication log.
func Open(dsn string) (*PostgresPublicationLog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresPublicationLog(db), nil
}

// NewPostgresPublicationLog wires an existing sql.DB.
func NewPostgresPublicationLog(db *sql.DB) *PostgresPublicationLog {
	return &PostgresPublicationLog{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// RecordPublication upserts the edition row keyed by (year, week, type, day),
// matching the archive's replace-on-republish semantics.
func (r *PostgresPublicationLog) RecordPublication(ctx context.Context, record domain.Publication) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("publications").
		Columns("year", "week", "type", "day", "filename", "game_count", "ai_provider", "published_at").
		Values(record.Year, record.Week, string(record.Type), record.Day,
			record.Filename, record.GameCount, record.AIProvider, record.PublishedAt).
		Suffix(`ON CONFLICT (year, week, type, day) DO UPDATE
                SET filename = EXCLUDED.filename,
                    game_count = EXCLUDED.game_count,
                    ai_provider = EXCLUDED.ai_provider,
                    published_at = EXCLUDED.published_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert publication: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (r *PostgresPublicationLog) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
