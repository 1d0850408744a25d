package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lithammer/shortuuid/v4"
	"github.com/mattn/go-sqlite3"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/repository"
)

const (
	defaultPageSize = int32(20)
	maxPageSize     = int32(200)
)

var wordColumns = []string{
	"id", "user_id", "word", "details",
	"srs_level", "next_review", "last_correct", "times_correct", "times_incorrect",
	"added_date", "created_at", "updated_at",
}

type wordRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewWordRepository constructs a SQL-backed word repository for the
// given driver ("pgx" or "sqlite3").
func NewWordRepository(db *sql.DB, driver string) repository.WordRepository {
	return &wordRepository{db: db, sb: builderFor(driver)}
}

func builderFor(driver string) sq.StatementBuilderType {
	if driver == "pgx" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func (r *wordRepository) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *word
	if stored.ID == "" {
		stored.ID = shortuuid.New()
	}

	details, err := json.Marshal(stored.Details)
	if err != nil {
		return nil, fmt.Errorf("marshal word details: %w", err)
	}

	query := r.sb.Insert("words").
		Columns("id", "user_id", "word", "word_key", "details",
			"srs_level", "next_review", "last_correct", "times_correct", "times_incorrect",
			"added_date", "created_at", "updated_at").
		Values(stored.ID, stored.UserID, stored.Word, stored.Key(), string(details),
			stored.SrsLevel, stored.NextReview, stored.LastCorrect, stored.TimesCorrect, stored.TimesIncorrect,
			stored.AddedDate, stored.CreatedAt, stored.UpdatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return nil, translateError(err)
	}
	return &stored, nil
}

func (r *wordRepository) GetByID(ctx context.Context, userID int64, id string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := r.sb.Select(wordColumns...).From("words").
		Where(sq.Eq{"id": id, "user_id": userID})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	word, err := scanWord(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrWordNotFound
	}
	return word, err
}

func (r *wordRepository) FindByText(ctx context.Context, userID int64, word string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := entity.NormalizeWordToken(word)
	if key == "" {
		return nil, nil
	}
	query := r.sb.Select(wordColumns...).From("words").
		Where(sq.Eq{"user_id": userID, "word_key": key})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	found, err := scanWord(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return found, err
}

func (r *wordRepository) List(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if query == nil {
		return nil, 0, errors.New("list query required")
	}
	bound := *query
	if err := BindListQuery(&bound); err != nil {
		return nil, 0, err
	}

	where := listConditions(&bound)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("words").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	builder := r.sb.Select(wordColumns...).From("words").Where(where)

	direction := "ASC"
	if bound.OrderDesc {
		direction = "DESC"
	}
	builder = builder.OrderBy(bound.OrderByColumn+" "+direction, "id ASC")

	pageSize := bound.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	pageNo := bound.PageNo
	if pageNo <= 0 {
		pageNo = 1
	}
	builder = builder.Limit(uint64(pageSize)).Offset(uint64((pageNo - 1) * pageSize))

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}
	words, err := r.queryWords(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

func listConditions(query *repository.ListWordQuery) sq.And {
	where := sq.And{sq.Eq{"user_id": query.UserID}}
	if query.WordPrefix != "" {
		where = append(where, sq.Like{"word_key": strings.ToLower(query.WordPrefix) + "%"})
	}
	if query.SrsLevel != nil {
		where = append(where, sq.Eq{"srs_level": *query.SrsLevel})
	}
	if query.SrsLevelMin != nil {
		where = append(where, sq.GtOrEq{"srs_level": *query.SrsLevelMin})
	}
	if query.SrsLevelMax != nil {
		where = append(where, sq.LtOrEq{"srs_level": *query.SrsLevelMax})
	}
	if query.AddedAfter != nil {
		where = append(where, sq.GtOrEq{"added_date": *query.AddedAfter})
	}
	if query.AddedBefore != nil {
		where = append(where, sq.LtOrEq{"added_date": *query.AddedBefore})
	}
	if query.DueBefore != nil {
		where = append(where, sq.LtOrEq{"next_review": *query.DueBefore})
	}
	return where
}

func (r *wordRepository) ListDue(ctx context.Context, userID int64, due time.Time) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := r.sb.Select(wordColumns...).From("words").
		Where(sq.And{sq.Eq{"user_id": userID}, sq.LtOrEq{"next_review": due}}).
		OrderBy("next_review ASC", "id ASC")
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build due list: %w", err)
	}
	return r.queryWords(ctx, sqlStr, args...)
}

func (r *wordRepository) ListRecent(ctx context.Context, userID int64, limit int32) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	query := r.sb.Select(wordColumns...).From("words").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("added_date DESC", "id ASC").
		Limit(uint64(limit))
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent list: %w", err)
	}
	return r.queryWords(ctx, sqlStr, args...)
}

// UpdateReview writes the post-review scheduling state in one statement
// so readers never observe a partial update.
func (r *wordRepository) UpdateReview(ctx context.Context, userID int64, id string, update repository.ReviewUpdate) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := r.sb.Update("words").
		Set("srs_level", update.SrsLevel).
		Set("next_review", update.NextReview).
		Set("last_correct", update.LastCorrect).
		Set("times_correct", update.TimesCorrect).
		Set("times_incorrect", update.TimesIncorrect).
		Set("updated_at", update.UpdatedAt).
		Where(sq.Eq{"id": id, "user_id": userID})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build review update: %w", err)
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("review update result: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrWordNotFound
	}
	return r.GetByID(ctx, userID, id)
}

func (r *wordRepository) Delete(ctx context.Context, userID int64, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	query := r.sb.Delete("words").Where(sq.Eq{"id": id, "user_id": userID})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if affected == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) queryWords(ctx context.Context, sqlStr string, args ...any) ([]*entity.Word, error) {
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []*entity.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return words, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*entity.Word, error) {
	var (
		word        entity.Word
		details     string
		lastCorrect sql.NullTime
	)
	err := row.Scan(
		&word.ID, &word.UserID, &word.Word, &details,
		&word.SrsLevel, &word.NextReview, &lastCorrect, &word.TimesCorrect, &word.TimesIncorrect,
		&word.AddedDate, &word.CreatedAt, &word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastCorrect.Valid {
		t := lastCorrect.Time
		word.LastCorrect = &t
	}
	if err := json.Unmarshal([]byte(details), &word.Details); err != nil {
		return nil, fmt.Errorf("unmarshal word details: %w", err)
	}
	return &word, nil
}

// translateError maps driver-specific unique violations onto the domain
// duplicate error.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDuplicateWord
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return entity.ErrDuplicateWord
	}
	return err
}
