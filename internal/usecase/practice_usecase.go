package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/lithammer/shortuuid/v4"
	"github.com/samber/lo"

	"github.com/kelimeci/kelimeci/internal/ai"
	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/quiz"
	"github.com/kelimeci/kelimeci/internal/repository"
)

// QuizMode selects the word pool a generated quiz draws from.
type QuizMode string

const (
	// QuizModeRecent quizzes the five most recently added words.
	QuizModeRecent QuizMode = "recent"
	// QuizModeAll quizzes the whole vocabulary.
	QuizModeAll QuizMode = "all"
)

const (
	recentQuizQuestions = 5
	minQuizQuestions    = 5
	maxQuizQuestions    = 20

	// maxQuizPoolWords caps the word list handed to the generator so the
	// prompt stays bounded for large vocabularies.
	maxQuizPoolWords = 100
)

// SessionState is a snapshot of a running quiz session returned to the
// transport layer.
type SessionState struct {
	SessionID string
	Questions []entity.QuizQuestion
	Index     int
	Finished  bool
}

// QuizResults is the terminal report of a finished (or abandoned) session.
type QuizResults struct {
	Score   int
	Results []quiz.QuestionResult
	Answers []entity.UserAnswer
}

// BlankResult couples the AI judgment of a blank exercise with the
// updated word record.
type BlankResult struct {
	Evaluation entity.Evaluation
	Word       *entity.Word
}

// PracticeUsecase runs quiz sessions and fill-in-the-blank exercises.
type PracticeUsecase interface {
	StartQuiz(ctx context.Context, userID int64, mode QuizMode, questionCount int32) (*SessionState, error)
	Answer(ctx context.Context, sessionID, option string) (*entity.UserAnswer, error)
	Advance(ctx context.Context, sessionID string) (*SessionState, error)
	Results(ctx context.Context, sessionID string) (*QuizResults, error)
	Discard(ctx context.Context, sessionID string)
	BlankExercise(ctx context.Context, userID int64, wordID string) (*quiz.BlankExercise, error)
	EvaluateBlank(ctx context.Context, userID int64, wordID, sentence, answer string) (*BlankResult, error)
}

// NewPracticeUsecase wires the collaborators with default behaviour.
func NewPracticeUsecase(
	words repository.WordRepository,
	review ReviewUsecase,
	quizzes ai.QuizGenerator,
	evaluator ai.AnswerEvaluator,
) PracticeUsecase {
	return &practiceUsecase{
		words:     words,
		review:    review,
		quizzes:   quizzes,
		evaluator: evaluator,
		pick:      rand.Intn,
		sessions:  map[string]*quiz.Session{},
	}
}

type practiceUsecase struct {
	words     repository.WordRepository
	review    ReviewUsecase
	quizzes   ai.QuizGenerator
	evaluator ai.AnswerEvaluator
	pick      func(n int) int

	// Sessions live only in memory. The mutex serializes access so a
	// burst of requests for one session cannot race the state machine.
	mu       sync.Mutex
	sessions map[string]*quiz.Session
}

// StartQuiz gathers the word pool for the mode, asks the AI generator for
// questions and opens a session. A failed or empty generation leaves no
// session behind.
func (u *practiceUsecase) StartQuiz(ctx context.Context, userID int64, mode QuizMode, questionCount int32) (*SessionState, error) {
	pool, count, err := u.quizPool(ctx, userID, mode, questionCount)
	if err != nil {
		return nil, err
	}

	texts := lo.Map(pool, func(w *entity.Word, _ int) string { return w.Word })
	questions, err := u.quizzes.GenerateQuiz(ctx, texts, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}
	questions = lo.Filter(questions, func(q entity.QuizQuestion, _ int) bool { return q.Valid() })
	if len(questions) == 0 {
		return nil, entity.ErrGenerationFailed
	}

	session := quiz.NewSession(questions)
	id := shortuuid.New()

	u.mu.Lock()
	u.sessions[id] = session
	u.mu.Unlock()

	return &SessionState{SessionID: id, Questions: questions, Index: 0}, nil
}

func (u *practiceUsecase) quizPool(ctx context.Context, userID int64, mode QuizMode, questionCount int32) ([]*entity.Word, int32, error) {
	switch mode {
	case QuizModeRecent:
		recent, err := u.review.RecentWords(ctx, userID, recentQuizQuestions)
		if err != nil {
			return nil, 0, err
		}
		return recent, recentQuizQuestions, nil
	case QuizModeAll:
		query := &repository.ListWordQuery{UserID: userID}
		query.PageSize = maxQuizPoolWords
		all, _, err := u.words.List(ctx, query)
		if err != nil {
			return nil, 0, err
		}
		if len(all) < MinQuizWords {
			return nil, 0, fmt.Errorf("%w: have %d, need %d", entity.ErrInsufficientWords, len(all), MinQuizWords)
		}
		if questionCount < minQuizQuestions {
			questionCount = minQuizQuestions
		}
		if questionCount > maxQuizQuestions {
			questionCount = maxQuizQuestions
		}
		return all, questionCount, nil
	default:
		return nil, 0, fmt.Errorf("unknown quiz mode %q", mode)
	}
}

// Answer records an option for the session's active question. The first
// answer is final; repeats return the recorded answer.
func (u *practiceUsecase) Answer(_ context.Context, sessionID, option string) (*entity.UserAnswer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	answer, err := session.SelectAnswer(option)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Advance moves the session to the next question; it fails while the
// active question is unanswered.
func (u *practiceUsecase) Advance(_ context.Context, sessionID string) (*SessionState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	if err := session.Advance(); err != nil {
		return nil, err
	}
	return &SessionState{
		SessionID: sessionID,
		Index:     session.Index(),
		Finished:  session.Finished(),
	}, nil
}

func (u *practiceUsecase) Results(_ context.Context, sessionID string) (*QuizResults, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return &QuizResults{
		Score:   session.Score(),
		Results: session.Results(),
		Answers: session.Answers(),
	}, nil
}

// Discard abandons a session. Dropping the in-memory state is the only
// cancellation there is; nothing was persisted.
func (u *practiceUsecase) Discard(_ context.Context, sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.sessions, sessionID)
}

// BlankExercise builds a fill-in-the-blank exercise from one of the
// word's example sentences, chosen at random.
func (u *practiceUsecase) BlankExercise(ctx context.Context, userID int64, wordID string) (*quiz.BlankExercise, error) {
	word, err := u.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	exercise, err := quiz.NewBlankExercise(word.Word, word.Details.ExampleSentences, u.pick)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// EvaluateBlank submits the user's free-text answer to the AI evaluator
// and records the outcome against the word's schedule. A failed
// evaluation records nothing, so the user can retry. The word leaves the
// due queue either way once the outcome lands.
func (u *practiceUsecase) EvaluateBlank(ctx context.Context, userID int64, wordID, sentence, answer string) (*BlankResult, error) {
	word, err := u.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}

	evaluation, err := u.evaluator.Evaluate(ctx, sentence, answer, word.Word)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	updated, err := u.review.RecordOutcome(ctx, userID, wordID, evaluation.IsCorrect)
	if err != nil {
		return nil, err
	}
	return &BlankResult{Evaluation: *evaluation, Word: updated}, nil
}
