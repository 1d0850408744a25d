package cmd

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
	"github.com/kelimeci/kelimeci/internal/infrastructure/database"
	"github.com/kelimeci/kelimeci/internal/usecase/backup"
)

const (
	exportOutputKey = "backup.export.output"
	exportGzipKey   = "backup.export.gzip"
	exportTablesKey = "backup.export.tables"
	exportBatchKey  = "backup.export.batch_size"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vocabulary database as an NDJSON backup",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		outputPath := viper.GetString(exportOutputKey)
		gzipEnabled := viper.GetBool(exportGzipKey)
		tableList := tablesFromConfig(exportTablesKey)
		batchSize := viper.GetInt(exportBatchKey)

		if outputPath == "" {
			outputPath = defaultExportFilename(gzipEnabled)
		}
		if !gzipEnabled && outputPath != "-" && strings.HasSuffix(strings.ToLower(outputPath), ".gz") {
			gzipEnabled = true
		}

		db, err := database.Open(ctx, database.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		service, err := backup.NewService(db, cfg.Database.Driver, backup.WithBatchSize(batchSize))
		if err != nil {
			return fmt.Errorf("create backup service: %w", err)
		}

		var (
			writer   = cmd.OutOrStdout()
			closeFns []func() error
		)

		if outputPath != "-" {
			if dir := filepath.Dir(outputPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			file, openErr := os.Create(outputPath)
			if openErr != nil {
				return fmt.Errorf("create backup file: %w", openErr)
			}
			writer = file
			closeFns = append(closeFns, file.Close)
		}

		if gzipEnabled {
			gz := gzip.NewWriter(writer)
			writer = gz
			closeFns = append([]func() error{gz.Close}, closeFns...)
		}

		defer func() {
			for _, closer := range closeFns {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		progress := newCLIProgress(cmd.ErrOrStderr())
		exportOpts := []backup.ExportOption{backup.WithProgressReporter(progress)}
		if len(tableList) > 0 {
			exportOpts = append(exportOpts, backup.WithTables(tableList))
		}

		if err := service.Export(ctx, writer, exportOpts...); err != nil {
			return fmt.Errorf("export backup: %w", err)
		}

		if outputPath == "-" {
			cmd.Println("export complete: written to stdout")
		} else {
			cmd.Printf("export complete: %s\n", outputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "backup output path, use - for stdout")
	exportCmd.Flags().Bool("gzip", false, "gzip-compress the output")
	exportCmd.Flags().StringSlice("tables", nil, "export only the given tables")
	exportCmd.Flags().Int("batch-size", 0, "export batch size (default 512)")

	bindExportConfig()
}

func defaultExportFilename(gzipEnabled bool) string {
	ts := time.Now().UTC().Format("20060102-150405")
	filename := fmt.Sprintf("kelimeci-backup-%s.jsonl", ts)
	if gzipEnabled {
		filename += ".gz"
	}
	return filename
}

func bindExportConfig() {
	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportGzipKey, exportCmd.Flags().Lookup("gzip"))
	bindFlagToViper(exportTablesKey, exportCmd.Flags().Lookup("tables"))
	bindFlagToViper(exportBatchKey, exportCmd.Flags().Lookup("batch-size"))
}
