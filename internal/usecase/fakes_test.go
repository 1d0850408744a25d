package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/repository"
)

type fakeWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[string]*entity.Word
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{items: make(map[string]*entity.Word)}
}

func (r *fakeWordRepo) Create(ctx context.Context, w *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookupLocked(w.UserID, w.Word); ok {
		return nil, entity.ErrDuplicateWord
	}
	r.seq++
	copy := cloneWord(w)
	copy.ID = fmt.Sprintf("w%d", r.seq)
	r.items[copy.ID] = copy
	return cloneWord(copy), nil
}

func (r *fakeWordRepo) GetByID(ctx context.Context, userID int64, id string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrWordNotFound
	}
	return cloneWord(item), nil
}

func (r *fakeWordRepo) FindByText(ctx context.Context, userID int64, word string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.lookupLocked(userID, word); ok {
		return cloneWord(item), nil
	}
	return nil, nil
}

func (r *fakeWordRepo) List(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Word
	for _, item := range r.items {
		if item.UserID != query.UserID {
			continue
		}
		if query.AddedAfter != nil && item.AddedDate.Before(*query.AddedAfter) {
			continue
		}
		if query.DueBefore != nil && item.NextReview.After(*query.DueBefore) {
			continue
		}
		out = append(out, cloneWord(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedDate.After(out[j].AddedDate) })
	return out, int64(len(out)), nil
}

func (r *fakeWordRepo) ListDue(ctx context.Context, userID int64, due time.Time) ([]*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Word
	for _, item := range r.items {
		if item.UserID != userID || item.NextReview.After(due) {
			continue
		}
		out = append(out, cloneWord(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextReview.Before(out[j].NextReview) })
	return out, nil
}

func (r *fakeWordRepo) ListRecent(ctx context.Context, userID int64, limit int32) ([]*entity.Word, error) {
	all, _, err := r.List(ctx, &repository.ListWordQuery{UserID: userID})
	if err != nil {
		return nil, err
	}
	if int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeWordRepo) UpdateReview(ctx context.Context, userID int64, id string, update repository.ReviewUpdate) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrWordNotFound
	}
	item.SrsLevel = update.SrsLevel
	item.NextReview = update.NextReview
	item.LastCorrect = update.LastCorrect
	item.TimesCorrect = update.TimesCorrect
	item.TimesIncorrect = update.TimesIncorrect
	item.UpdatedAt = update.UpdatedAt
	return cloneWord(item), nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, userID int64, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrWordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeWordRepo) lookupLocked(userID int64, word string) (*entity.Word, bool) {
	needle := entity.NormalizeWordToken(word)
	if needle == "" {
		return nil, false
	}
	for _, item := range r.items {
		if item.UserID == userID && item.Key() == needle {
			return item, true
		}
	}
	return nil, false
}

func cloneWord(src *entity.Word) *entity.Word {
	if src == nil {
		return nil
	}
	copy := *src
	if src.LastCorrect != nil {
		last := *src.LastCorrect
		copy.LastCorrect = &last
	}
	copy.Details.Translations = append([]string(nil), src.Details.Translations...)
	copy.Details.Synonyms = append([]string(nil), src.Details.Synonyms...)
	copy.Details.ExampleSentences = append([]entity.ExampleSentence(nil), src.Details.ExampleSentences...)
	return &copy
}

func listQueryFor(userID int64) *repository.ListWordQuery {
	return &repository.ListWordQuery{UserID: userID}
}

type fakeProfileRepo struct {
	mu    sync.RWMutex
	items map[int64]*entity.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{items: make(map[int64]*entity.UserProfile)}
}

func (r *fakeProfileRepo) Get(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[userID]
	if !ok {
		return nil, entity.ErrProfileNotFound
	}
	copy := *item
	return &copy, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *profile
	r.items[profile.UserID] = &copy
	out := copy
	return &out, nil
}

type fakeDetailGenerator struct {
	details *entity.WordDetails
	err     error
	calls   int
}

func (g *fakeDetailGenerator) GenerateWordDetails(_ context.Context, word string) (*entity.WordDetails, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if g.details != nil {
		return g.details, nil
	}
	return &entity.WordDetails{
		Translations: []string{"çeviri"},
		WordType:     "isim",
		Synonyms:     []string{"synonym"},
		ExampleSentences: []entity.ExampleSentence{
			{Sentence: "A sentence with " + strings.ToLower(word) + ".", Translation: "Örnek cümle."},
		},
	}, nil
}

type fakeQuizGenerator struct {
	questions []entity.QuizQuestion
	err       error
	gotWords  []string
	gotCount  int32
}

func (g *fakeQuizGenerator) GenerateQuiz(_ context.Context, words []string, questionCount int32) ([]entity.QuizQuestion, error) {
	g.gotWords = words
	g.gotCount = questionCount
	if g.err != nil {
		return nil, g.err
	}
	return g.questions, nil
}

type fakeEvaluator struct {
	evaluation *entity.Evaluation
	err        error
}

func (e *fakeEvaluator) Evaluate(_ context.Context, _, _, _ string) (*entity.Evaluation, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.evaluation, nil
}
