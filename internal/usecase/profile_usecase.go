package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/repository"
)

// ProfileUsecase manages per-user settings.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*entity.UserProfile, error)
	SetDailyGoal(ctx context.Context, userID int64, goal int32) (*entity.UserProfile, error)
}

// NewProfileUsecase wires the repository with default behaviour.
func NewProfileUsecase(repo repository.ProfileRepository) ProfileUsecase {
	return &profileUsecase{repo: repo, clock: time.Now}
}

type profileUsecase struct {
	repo  repository.ProfileRepository
	clock func() time.Time
}

// GetProfile returns the stored profile, or defaults when none exists.
func (u *profileUsecase) GetProfile(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	profile, err := u.repo.Get(ctx, userID)
	if errors.Is(err, entity.ErrProfileNotFound) {
		return &entity.UserProfile{UserID: userID, DailyGoal: entity.DefaultDailyGoal}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *profileUsecase) SetDailyGoal(ctx context.Context, userID int64, goal int32) (*entity.UserProfile, error) {
	if goal <= 0 {
		return nil, errors.New("daily goal must be positive")
	}
	profile := &entity.UserProfile{UserID: userID, DailyGoal: goal}
	profile.Normalize(u.clock())
	return u.repo.Upsert(ctx, profile)
}
