package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/repository"
	"github.com/kelimeci/kelimeci/internal/srs"
)

// MinQuizWords is the smallest vocabulary that supports a generated quiz.
const MinQuizWords = 5

// ReviewStats summarizes the state of a user's review schedule for the
// dashboard.
type ReviewStats struct {
	TotalWords   int64
	DueCount     int
	LearnedToday int
	DailyGoal    int32
}

// ReviewUsecase selects due-for-review words and records review outcomes.
type ReviewUsecase interface {
	DueWords(ctx context.Context, userID int64) ([]*entity.Word, error)
	RecentWords(ctx context.Context, userID int64, limit int32) ([]*entity.Word, error)
	RecordOutcome(ctx context.Context, userID int64, wordID string, correct bool) (*entity.Word, error)
	Stats(ctx context.Context, userID int64) (*ReviewStats, error)
}

// NewReviewUsecase wires the repositories with default behaviour.
func NewReviewUsecase(words repository.WordRepository, profiles repository.ProfileRepository) ReviewUsecase {
	return &reviewUsecase{
		words:    words,
		profiles: profiles,
		clock:    time.Now,
		locks:    map[string]*sync.Mutex{},
	}
}

type reviewUsecase struct {
	words    repository.WordRepository
	profiles repository.ProfileRepository
	clock    func() time.Time

	// Per-word locks serialize the read-modify-write of RecordOutcome so
	// concurrent outcomes for the same word cannot interleave. Outcomes
	// for different words proceed independently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// DueWords returns the review queue: every word whose next review is not
// in the future, most overdue first. An empty queue is a normal result.
func (u *reviewUsecase) DueWords(ctx context.Context, userID int64) ([]*entity.Word, error) {
	return u.words.ListDue(ctx, userID, u.clock())
}

// RecentWords returns the last added words, newest first. It fails when
// the vocabulary holds fewer than MinQuizWords entries.
func (u *reviewUsecase) RecentWords(ctx context.Context, userID int64, limit int32) ([]*entity.Word, error) {
	if limit <= 0 {
		limit = MinQuizWords
	}
	recent, err := u.words.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(recent) < MinQuizWords {
		return nil, fmt.Errorf("%w: have %d, need %d", entity.ErrInsufficientWords, len(recent), MinQuizWords)
	}
	return recent, nil
}

// RecordOutcome applies one review result to a word: level moves through
// the SRS policy, the next review date is derived from the new level, and
// exactly one counter increments. This is the only write path for
// scheduling state, and the update is not considered applied until the
// repository write succeeds.
func (u *reviewUsecase) RecordOutcome(ctx context.Context, userID int64, wordID string, correct bool) (*entity.Word, error) {
	if wordID == "" {
		return nil, entity.ErrInvalidWordID
	}

	lock := u.wordLock(userID, wordID)
	lock.Lock()
	defer lock.Unlock()

	word, err := u.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	level := srs.NextLevel(word.SrsLevel, correct)
	update := repository.ReviewUpdate{
		SrsLevel:       level,
		NextReview:     srs.NextReviewAt(now, level),
		LastCorrect:    word.LastCorrect,
		TimesCorrect:   word.TimesCorrect,
		TimesIncorrect: word.TimesIncorrect,
		UpdatedAt:      now,
	}
	if correct {
		update.LastCorrect = &now
		update.TimesCorrect++
	} else {
		update.TimesIncorrect++
	}

	return u.words.UpdateReview(ctx, userID, wordID, update)
}

func (u *reviewUsecase) Stats(ctx context.Context, userID int64) (*ReviewStats, error) {
	_, total, err := u.words.List(ctx, &repository.ListWordQuery{UserID: userID})
	if err != nil {
		return nil, err
	}

	now := u.clock()
	due, err := u.words.ListDue(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	_, learnedToday, err := u.words.List(ctx, &repository.ListWordQuery{
		UserID:     userID,
		AddedAfter: &midnight,
	})
	if err != nil {
		return nil, err
	}

	stats := &ReviewStats{
		TotalWords:   total,
		DueCount:     len(due),
		LearnedToday: int(learnedToday),
		DailyGoal:    entity.DefaultDailyGoal,
	}

	profile, err := u.profiles.Get(ctx, userID)
	if err == nil && profile != nil {
		stats.DailyGoal = profile.DailyGoal
	} else if err != nil && !errors.Is(err, entity.ErrProfileNotFound) {
		return nil, err
	}
	return stats, nil
}

func (u *reviewUsecase) wordLock(userID int64, wordID string) *sync.Mutex {
	key := fmt.Sprintf("%d/%s", userID, wordID)
	u.mu.Lock()
	defer u.mu.Unlock()
	lock, ok := u.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[key] = lock
	}
	return lock
}
