package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// schema creates the catalog tables when they do not exist yet.
// Assets keep their catalog order through the position column.
const schema = `
CREATE TABLE IF NOT EXISTS catalogs (
	id   UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS catalog_assets (
	id               UUID PRIMARY KEY,
	catalog_id       UUID NOT NULL REFERENCES catalogs(id) ON DELETE CASCADE,
	position         INTEGER NOT NULL,
	name             TEXT NOT NULL,
	cost             BIGINT NOT NULL CHECK (cost > 0),
	payoff           BIGINT NOT NULL CHECK (payoff > 0),
	maturation_delay INTEGER NOT NULL CHECK (maturation_delay > 0),
	UNIQUE (catalog_id, position)
);
`

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=harvestflow sslmode=disable"
func NewDB(ctx context.Context, connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// EnsureSchema creates the catalog tables if needed
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
