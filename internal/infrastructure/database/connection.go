package database

import (
	"context"
	"database/sql"

	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
)

// NewConnection opens the configured database and applies the schema.
func NewConnection(cfg *config.Config) (*sql.DB, func(), error) {
	ctx := context.Background()
	db, err := Open(ctx, Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(ctx, db, cfg.Database.Driver); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}
