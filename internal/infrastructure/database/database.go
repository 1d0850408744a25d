// Package database opens and migrates the relational store backing the
// vocabulary repositories. Postgres (through the pgx stdlib driver) and
// sqlite are supported.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Config selects the driver and DSN.
type Config struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	switch cfg.Driver {
	case "pgx", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == "sqlite3" {
		// sqlite serializes writes on a single connection.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	for _, stmt := range statements(driver) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func statements(driver string) []string {
	timestamp := "TIMESTAMP"
	if driver == "pgx" {
		timestamp = "TIMESTAMPTZ"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			word TEXT NOT NULL,
			word_key TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '{}',
			srs_level INTEGER NOT NULL DEFAULT 0,
			next_review %[1]s NOT NULL,
			last_correct %[1]s,
			times_correct INTEGER NOT NULL DEFAULT 0,
			times_incorrect INTEGER NOT NULL DEFAULT 0,
			added_date %[1]s NOT NULL,
			created_at %[1]s NOT NULL,
			updated_at %[1]s NOT NULL,
			UNIQUE (user_id, word_key)
		)`, timestamp),
		`CREATE INDEX IF NOT EXISTS idx_words_user_next_review ON words (user_id, next_review)`,
		`CREATE INDEX IF NOT EXISTS idx_words_user_added_date ON words (user_id, added_date)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id BIGINT PRIMARY KEY,
			daily_goal INTEGER NOT NULL DEFAULT 5,
			updated_at %s NOT NULL
		)`, timestamp),
	}
}
