// Package backup streams the vocabulary store to and from NDJSON
// backups. The first line is a meta record describing the export; every
// following line is one table row.
package backup

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1
)

var errNoTablesSelected = errors.New("backup: no tables selected")

// table describes one backed-up table: its columns in export order and
// the primary key used for stable batching and conflict handling.
type table struct {
	name    string
	columns []string
	pk      []string
}

var tables = []table{
	{
		name: "words",
		columns: []string{
			"id", "user_id", "word", "word_key", "details",
			"srs_level", "next_review", "last_correct", "times_correct", "times_incorrect",
			"added_date", "created_at", "updated_at",
		},
		pk: []string{"id"},
	},
	{
		name:    "user_profiles",
		columns: []string{"user_id", "daily_goal", "updated_at"},
		pk:      []string{"user_id"},
	},
}

// ProgressReporter receives callbacks while a table is streamed.
type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Service exports and imports backups over an open database handle.
type Service struct {
	db        *sql.DB
	sb        sq.StatementBuilderType
	batchSize int
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewService constructs a backup service for the given driver ("pgx" or
// "sqlite3").
func NewService(db *sql.DB, driver string, opts ...Option) (*Service, error) {
	if db == nil {
		return nil, errors.New("backup: database handle is required")
	}
	var placeholder sq.PlaceholderFormat = sq.Question
	switch strings.TrimSpace(strings.ToLower(driver)) {
	case "pgx":
		placeholder = sq.Dollar
	case "sqlite3":
	default:
		return nil, fmt.Errorf("backup: unsupported driver %q", driver)
	}

	svc := &Service{
		db:        db,
		sb:        sq.StatementBuilder.PlaceholderFormat(placeholder),
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	tables   []string
	reporter ProgressReporter
}

// WithTables restricts export to the provided table names.
func WithTables(names []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(names) == 0 {
			return
		}
		cfg.tables = append([]string{}, names...)
	}
}

// WithProgressReporter registers a reporter that receives progress
// callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	tables []string
}

// WithImportTables restricts import to the provided table names.
func WithImportTables(names []string) ImportOption {
	return func(cfg *importConfig) {
		if len(names) == 0 {
			return
		}
		cfg.tables = append([]string{}, names...)
	}
}

type record struct {
	Type       string          `json:"type"`
	Version    int             `json:"version,omitempty"`
	ExportedAt *time.Time      `json:"exported_at,omitempty"`
	Tables     []string        `json:"tables,omitempty"`
	RowCounts  map[string]int  `json:"row_counts,omitempty"`
	Table      string          `json:"table,omitempty"`
	Row        json.RawMessage `json:"row,omitempty"`
}

// Export writes a meta line followed by one line per row.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	selected, err := selectTables(cfg.tables)
	if err != nil {
		return err
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	counts := make(map[string]int, len(selected))
	for _, tbl := range selected {
		count, err := s.countRows(ctx, tbl.name)
		if err != nil {
			return fmt.Errorf("count table %s: %w", tbl.name, err)
		}
		counts[tbl.name] = count
	}

	writer := bufio.NewWriter(w)

	now := time.Now().UTC()
	meta := record{
		Type:       "meta",
		Version:    formatVersion,
		ExportedAt: &now,
		Tables:     tableNames(selected),
		RowCounts:  counts,
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	for _, tbl := range selected {
		reporter.StartTable(tbl.name, counts[tbl.name])
		if err := s.exportTable(ctx, tbl, reporter, writer); err != nil {
			return err
		}
		reporter.FinishTable(tbl.name)
	}
	return writer.Flush()
}

func (s *Service) exportTable(ctx context.Context, tbl table, reporter ProgressReporter, writer *bufio.Writer) error {
	offset := uint64(0)
	for {
		query := s.sb.Select(tbl.columns...).From(tbl.name).
			OrderBy(tbl.pk...).
			Limit(uint64(s.batchSize)).Offset(offset)
		sqlStr, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("build export query for %s: %w", tbl.name, err)
		}
		rows, err := s.db.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("export table %s: %w", tbl.name, err)
		}
		exported, err := writeRows(writer, tbl, rows)
		rows.Close()
		if err != nil {
			return err
		}
		if exported > 0 {
			reporter.Increment(tbl.name, exported)
		}
		if exported < s.batchSize {
			return nil
		}
		offset += uint64(exported)
	}
}

func writeRows(writer *bufio.Writer, tbl table, rows *sql.Rows) (int, error) {
	count := 0
	for rows.Next() {
		values := make([]any, len(tbl.columns))
		targets := make([]any, len(tbl.columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return count, fmt.Errorf("scan %s row: %w", tbl.name, err)
		}
		row := make(map[string]any, len(tbl.columns))
		for i, column := range tbl.columns {
			row[column] = exportValue(values[i])
		}
		payload, err := json.Marshal(row)
		if err != nil {
			return count, fmt.Errorf("marshal %s row: %w", tbl.name, err)
		}
		if err := writeRecord(writer, record{Type: "row", Table: tbl.name, Row: payload}); err != nil {
			return count, err
		}
		count++
	}
	return count, rows.Err()
}

// exportValue keeps row values JSON-friendly; timestamps travel as
// RFC3339 strings.
func exportValue(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

// Import replays an NDJSON backup. Rows whose primary key already
// exists are skipped, so a restore into a non-empty database is safe to
// repeat.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) error {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	selected, err := selectTables(cfg.tables)
	if err != nil {
		return err
	}
	allowed := make(map[string]table, len(selected))
	for _, tbl := range selected {
		allowed[tbl.name] = tbl
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	sawMeta := false
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("backup line %d: %w", line, err)
		}
		switch rec.Type {
		case "meta":
			if rec.Version > formatVersion {
				return fmt.Errorf("backup format version %d is newer than supported %d", rec.Version, formatVersion)
			}
			sawMeta = true
		case "row":
			if !sawMeta {
				return fmt.Errorf("backup line %d: row before meta record", line)
			}
			tbl, ok := allowed[rec.Table]
			if !ok {
				continue
			}
			if err := s.importRow(ctx, tbl, rec.Row); err != nil {
				return fmt.Errorf("backup line %d: %w", line, err)
			}
		default:
			return fmt.Errorf("backup line %d: unknown record type %q", line, rec.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if !sawMeta {
		return errors.New("backup: missing meta record")
	}
	return nil
}

func (s *Service) importRow(ctx context.Context, tbl table, payload json.RawMessage) error {
	var row map[string]any
	if err := json.Unmarshal(payload, &row); err != nil {
		return fmt.Errorf("decode %s row: %w", tbl.name, err)
	}
	values := make([]any, len(tbl.columns))
	for i, column := range tbl.columns {
		values[i] = row[column]
	}
	// A bare DO NOTHING also swallows unique-key conflicts beyond the
	// primary key, so replaying a backup is idempotent.
	query := s.sb.Insert(tbl.name).Columns(tbl.columns...).Values(values...).
		Suffix("ON CONFLICT DO NOTHING")
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert for %s: %w", tbl.name, err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert %s row: %w", tbl.name, err)
	}
	return nil
}

func (s *Service) countRows(ctx context.Context, name string) (int, error) {
	sqlStr, args, err := s.sb.Select("COUNT(*)").From(name).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func selectTables(names []string) ([]table, error) {
	if len(names) == 0 {
		return tables, nil
	}
	index := make(map[string]table, len(tables))
	for _, tbl := range tables {
		index[tbl.name] = tbl
	}
	selected := make([]table, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		tbl, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("backup: unknown table %q", name)
		}
		selected = append(selected, tbl)
	}
	if len(selected) == 0 {
		return nil, errNoTablesSelected
	}
	return selected, nil
}

func tableNames(selected []table) []string {
	names := make([]string, len(selected))
	for i, tbl := range selected {
		names[i] = tbl.name
	}
	return names
}

func writeRecord(writer *bufio.Writer, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal backup record: %w", err)
	}
	if _, err := writer.Write(payload); err != nil {
		return err
	}
	return writer.WriteByte('\n')
}
