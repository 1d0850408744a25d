package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/repository"
)

type profileRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewProfileRepository(db *sql.DB, driver string) repository.ProfileRepository {
	return &profileRepository{db: db, sb: builderFor(driver)}
}

func (r *profileRepository) Get(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := r.sb.Select("user_id", "daily_goal", "updated_at").
		From("user_profiles").
		Where(sq.Eq{"user_id": userID})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build profile select: %w", err)
	}
	var profile entity.UserProfile
	err = r.db.QueryRowContext(ctx, sqlStr, args...).
		Scan(&profile.UserID, &profile.DailyGoal, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// ON CONFLICT syntax is shared by postgres and sqlite.
	query := r.sb.Insert("user_profiles").
		Columns("user_id", "daily_goal", "updated_at").
		Values(profile.UserID, profile.DailyGoal, profile.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET daily_goal = EXCLUDED.daily_goal, updated_at = EXCLUDED.updated_at")
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build profile upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	stored := *profile
	return &stored, nil
}
