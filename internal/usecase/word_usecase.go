package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kelimeci/kelimeci/internal/ai"
	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/repository"
	"github.com/kelimeci/kelimeci/internal/srs"
)

// WordUsecase encapsulates business logic for managing a user's
// vocabulary entries.
type WordUsecase interface {
	AddWord(ctx context.Context, userID int64, text string) (*entity.Word, error)
	GetWord(ctx context.Context, userID int64, id string) (*entity.Word, error)
	ListWords(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, int64, error)
	DeleteWord(ctx context.Context, userID int64, id string) error
}

// NewWordUsecase wires the repository and the detail generator with
// default behaviour.
func NewWordUsecase(repo repository.WordRepository, generator ai.DetailGenerator) WordUsecase {
	return &wordUsecase{
		repo:      repo,
		generator: generator,
		clock:     time.Now,
	}
}

type wordUsecase struct {
	repo      repository.WordRepository
	generator ai.DetailGenerator
	clock     func() time.Time
}

// AddWord looks the word up with the AI generator and stores it with a
// fresh review schedule. Adding a word already in the collection
// (case-insensitive) fails without touching the existing record.
func (u *wordUsecase) AddWord(ctx context.Context, userID int64, text string) (*entity.Word, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrInvalidWordText
	}

	existing, err := u.repo.FindByText(ctx, userID, text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrDuplicateWord
	}

	details, err := u.generator.GenerateWordDetails(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	now := u.clock()
	word := &entity.Word{
		UserID:     userID,
		Word:       text,
		Details:    *details,
		SrsLevel:   0,
		NextReview: srs.NextReviewAt(now, 0),
	}
	word.Normalize(now)

	return u.repo.Create(ctx, word)
}

func (u *wordUsecase) GetWord(ctx context.Context, userID int64, id string) (*entity.Word, error) {
	if id == "" {
		return nil, entity.ErrInvalidWordID
	}
	return u.repo.GetByID(ctx, userID, id)
}

func (u *wordUsecase) ListWords(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, int64, error) {
	return u.repo.List(ctx, query)
}

func (u *wordUsecase) DeleteWord(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return entity.ErrInvalidWordID
	}
	return u.repo.Delete(ctx, userID, id)
}
