package cmd

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
	"github.com/kelimeci/kelimeci/internal/infrastructure/database"
	"github.com/kelimeci/kelimeci/internal/usecase/backup"
)

const (
	importInputKey  = "backup.import.input"
	importGzipKey   = "backup.import.gzip"
	importTablesKey = "backup.import.tables"
	importBatchKey  = "backup.import.batch_size"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an NDJSON backup into the vocabulary database",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		inputPath := viper.GetString(importInputKey)
		gzipEnabled := viper.GetBool(importGzipKey)
		tableList := tablesFromConfig(importTablesKey)
		batchSize := viper.GetInt(importBatchKey)

		if inputPath == "" {
			return fmt.Errorf("specify a backup file with --input, or - for stdin")
		}
		if !gzipEnabled && inputPath != "-" && strings.HasSuffix(strings.ToLower(inputPath), ".gz") {
			gzipEnabled = true
		}

		db, err := database.Open(ctx, database.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		service, err := backup.NewService(db, cfg.Database.Driver, backup.WithBatchSize(batchSize))
		if err != nil {
			return fmt.Errorf("create backup service: %w", err)
		}

		var (
			reader  = cmd.InOrStdin()
			closers []func() error
		)

		if inputPath != "-" {
			file, openErr := os.Open(filepath.Clean(inputPath))
			if openErr != nil {
				return fmt.Errorf("open backup file: %w", openErr)
			}
			reader = file
			closers = append(closers, file.Close)
		}

		if gzipEnabled {
			gzr, gzErr := gzip.NewReader(reader)
			if gzErr != nil {
				return fmt.Errorf("create gzip reader: %w", gzErr)
			}
			reader = gzr
			closers = append([]func() error{gzr.Close}, closers...)
		}

		defer func() {
			for _, closer := range closers {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		var importOpts []backup.ImportOption
		if len(tableList) > 0 {
			importOpts = append(importOpts, backup.WithImportTables(tableList))
		}

		if err := service.Import(ctx, reader, importOpts...); err != nil {
			return fmt.Errorf("import backup: %w", err)
		}

		if inputPath == "-" {
			cmd.Println("import complete: read from stdin")
		} else {
			cmd.Printf("import complete: %s\n", inputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "backup input path, use - for stdin")
	importCmd.Flags().Bool("gzip", false, "treat input as gzip-compressed")
	importCmd.Flags().StringSlice("tables", nil, "import only the given tables")
	importCmd.Flags().Int("batch-size", 0, "import batch size (default 512)")

	bindImportConfig()
}

func bindImportConfig() {
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
	bindFlagToViper(importTablesKey, importCmd.Flags().Lookup("tables"))
	bindFlagToViper(importBatchKey, importCmd.Flags().Lookup("batch-size"))
}
