package repository

import (
	"context"
	"time"

	"github.com/kelimeci/kelimeci/internal/entity"
)

// ListWordQuery holds parameters for listing a user's vocabulary.
type ListWordQuery struct {
	Pagination
	FilterOrder

	UserID int64

	// Bound filter predicates (populated from the CEL filter expression).
	WordPrefix    string
	SrsLevel      *int32
	SrsLevelMin   *int32
	SrsLevelMax   *int32
	AddedAfter    *time.Time
	AddedBefore   *time.Time
	DueBefore     *time.Time
	OrderByColumn string
	OrderDesc     bool
}

// ReviewUpdate is the atomic scheduling-state change applied after one
// answered review. It is the only write path for SRS fields.
type ReviewUpdate struct {
	SrsLevel       int32
	NextReview     time.Time
	LastCorrect    *time.Time
	TimesCorrect   int32
	TimesIncorrect int32
	UpdatedAt      time.Time
}

// WordRepository abstracts persistence for vocabulary entries so usecases
// stay storage agnostic.
type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	GetByID(ctx context.Context, userID int64, id string) (*entity.Word, error)
	FindByText(ctx context.Context, userID int64, word string) (*entity.Word, error)
	List(ctx context.Context, query *ListWordQuery) ([]*entity.Word, int64, error)
	ListDue(ctx context.Context, userID int64, due time.Time) ([]*entity.Word, error)
	ListRecent(ctx context.Context, userID int64, limit int32) ([]*entity.Word, error)
	UpdateReview(ctx context.Context, userID int64, id string, update ReviewUpdate) (*entity.Word, error)
	Delete(ctx context.Context, userID int64, id string) error
}
