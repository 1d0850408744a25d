package backup

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "github.com/kelimeci/kelimeci/internal/adapter/repository"
	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/infrastructure/database"
)

func newBackupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{Driver: "sqlite3", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, "sqlite3"))
	return db
}

func seedWords(t *testing.T, db *sql.DB, texts ...string) {
	t.Helper()
	repo := adapterrepo.NewWordRepository(db, "sqlite3")
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, text := range texts {
		added := now.Add(time.Duration(i) * time.Minute)
		_, err := repo.Create(context.Background(), &entity.Word{
			UserID:     1,
			Word:       text,
			Details:    entity.WordDetails{Translations: []string{"çeviri"}},
			NextReview: added.AddDate(0, 0, 1),
			AddedDate:  added,
			CreatedAt:  added,
			UpdatedAt:  added,
		})
		require.NoError(t, err)
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newBackupTestDB(t)
	seedWords(t, source, "cat", "dog", "bird")
	_, err := source.Exec(`INSERT INTO user_profiles (user_id, daily_goal, updated_at) VALUES (1, 7, ?)`,
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	exporter, err := NewService(source, "sqlite3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// meta + 3 words + 1 profile
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"type":"meta"`)

	target := newBackupTestDB(t)
	importer, err := NewService(target, "sqlite3")
	require.NoError(t, err)
	require.NoError(t, importer.Import(context.Background(), bytes.NewReader(buf.Bytes())))

	assert.Equal(t, 3, countRows(t, target, "words"))
	assert.Equal(t, 1, countRows(t, target, "user_profiles"))

	repo := adapterrepo.NewWordRepository(target, "sqlite3")
	restored, err := repo.FindByText(context.Background(), 1, "cat")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, []string{"çeviri"}, restored.Details.Translations)
}

func TestImportIsIdempotent(t *testing.T) {
	source := newBackupTestDB(t)
	seedWords(t, source, "cat", "dog")

	svc, err := NewService(source, "sqlite3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	target := newBackupTestDB(t)
	importer, err := NewService(target, "sqlite3")
	require.NoError(t, err)
	require.NoError(t, importer.Import(context.Background(), bytes.NewReader(buf.Bytes())))
	require.NoError(t, importer.Import(context.Background(), bytes.NewReader(buf.Bytes())))

	assert.Equal(t, 2, countRows(t, target, "words"))
}

func TestExportTableSelection(t *testing.T) {
	source := newBackupTestDB(t)
	seedWords(t, source, "cat")

	svc, err := NewService(source, "sqlite3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf, WithTables([]string{"words"})))
	assert.NotContains(t, buf.String(), "user_profiles")

	err = svc.Export(context.Background(), &bytes.Buffer{}, WithTables([]string{"unknown"}))
	assert.Error(t, err)
}

func TestImportRejectsRowBeforeMeta(t *testing.T) {
	target := newBackupTestDB(t)
	svc, err := NewService(target, "sqlite3")
	require.NoError(t, err)

	input := `{"type":"row","table":"words","row":{}}`
	assert.Error(t, svc.Import(context.Background(), strings.NewReader(input)))
}

func TestImportRejectsNewerFormat(t *testing.T) {
	target := newBackupTestDB(t)
	svc, err := NewService(target, "sqlite3")
	require.NoError(t, err)

	input := `{"type":"meta","version":99}`
	assert.Error(t, svc.Import(context.Background(), strings.NewReader(input)))
}
