package repository

import (
	"context"

	"github.com/kelimeci/kelimeci/internal/entity"
)

// ProfileRepository persists per-user settings.
type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (*entity.UserProfile, error)
	Upsert(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error)
}
