package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
	"github.com/kelimeci/kelimeci/internal/infrastructure/database"
)

// dbInitCmd creates the database schema without starting the server.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the database schema",
	Long:  "Runs the schema migrations against the configured database. Note: go-sqlite3 requires CGO_ENABLED=1 builds.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := database.Open(ctx, database.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		cmd.Printf("database initialized (%s)\n", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}
