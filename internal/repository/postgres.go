package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotelsearch/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository stores the listing snapshots produced by the external
// hotels fetch and an analytics log of filter applications. The engine
// itself never touches the database; snapshots are loaded once per session
// and treated as immutable from then on.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the snapshot and log tables when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS listing_snapshots (
		id         UUID PRIMARY KEY,
		query      TEXT NOT NULL DEFAULT '',
		listings   JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS filter_events (
		id           BIGSERIAL PRIMARY KEY,
		session_id   TEXT NOT NULL,
		selection    JSONB NOT NULL,
		result_count INT NOT NULL,
		took_ms      BIGINT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveSnapshot persists a fetched listing array and returns its id.
func (r *PostgresRepository) SaveSnapshot(ctx context.Context, query string, listings model.Listings) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO listing_snapshots (id, query, listings) VALUES ($1, $2, $3)`,
		id, query, listings,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return id, nil
}

// GetSnapshot loads a stored listing array by id.
func (r *PostgresRepository) GetSnapshot(ctx context.Context, id string) (model.Listings, error) {
	var listings model.Listings
	err := r.db.QueryRowxContext(ctx,
		`SELECT listings FROM listing_snapshots WHERE id = $1`,
		id,
	).Scan(&listings)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return listings, nil
}

// LogFilter records one filter application for analytics.
func (r *PostgresRepository) LogFilter(ctx context.Context, sessionID string, selection any, resultCount int, tookMs int64) error {
	payload, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO filter_events (session_id, selection, result_count, took_ms) VALUES ($1, $2, $3, $4)`,
		sessionID, payload, resultCount, tookMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log filter event: %w", err)
	}
	return nil
}
