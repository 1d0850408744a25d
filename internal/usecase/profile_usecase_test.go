package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/kelimeci/kelimeci/internal/entity"
)

func TestGetProfileDefaultsWhenMissing(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileRepo())

	profile, err := uc.GetProfile(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.DailyGoal != entity.DefaultDailyGoal {
		t.Errorf("expected default daily goal, got %d", profile.DailyGoal)
	}
}

func TestSetDailyGoal(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUsecase(repo)
	impl := uc.(*profileUsecase)
	fixed := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return fixed }

	updated, err := uc.SetDailyGoal(context.Background(), 3, 12)
	if err != nil {
		t.Fatalf("SetDailyGoal returned error: %v", err)
	}
	if updated.DailyGoal != 12 {
		t.Errorf("expected daily goal 12, got %d", updated.DailyGoal)
	}
	if !updated.UpdatedAt.Equal(fixed) {
		t.Errorf("expected updated_at %v, got %v", fixed, updated.UpdatedAt)
	}

	if _, err := uc.SetDailyGoal(context.Background(), 3, 0); err == nil {
		t.Fatal("expected error for non-positive goal")
	}
}
