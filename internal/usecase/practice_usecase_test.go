package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/quiz"
)

func quizQuestionsFor(words ...string) []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, len(words))
	for i, w := range words {
		questions[i] = entity.QuizQuestion{
			Question:      "Translate " + w,
			Options:       []string{"a", "b", "c", w},
			CorrectAnswer: w,
			Word:          w,
		}
	}
	return questions
}

func practiceFixture(t *testing.T, wordCount int) (*practiceUsecase, *fakeWordRepo, *fakeQuizGenerator, *fakeEvaluator) {
	t.Helper()
	repo := newFakeWordRepo()
	now := time.Now()
	for i := 0; i < wordCount; i++ {
		seedWord(t, repo, 1, fmt.Sprintf("word-%d", i), 0, now, now.Add(time.Duration(i)*time.Minute))
	}
	review := NewReviewUsecase(repo, newFakeProfileRepo())
	quizzes := &fakeQuizGenerator{}
	evaluator := &fakeEvaluator{}
	uc := NewPracticeUsecase(repo, review, quizzes, evaluator)
	return uc.(*practiceUsecase), repo, quizzes, evaluator
}

func TestStartQuizRecentMode(t *testing.T) {
	uc, _, quizzes, _ := practiceFixture(t, 7)
	quizzes.questions = quizQuestionsFor("word-6", "word-5", "word-4", "word-3", "word-2")

	state, err := uc.StartQuiz(context.Background(), 1, QuizModeRecent, 0)
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	if state.SessionID == "" {
		t.Error("expected a session ID")
	}
	if len(state.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(state.Questions))
	}
	if quizzes.gotCount != 5 {
		t.Errorf("expected request for 5 questions, got %d", quizzes.gotCount)
	}
	if len(quizzes.gotWords) != 5 {
		t.Fatalf("expected quiz over 5 recent words, got %v", quizzes.gotWords)
	}
	if quizzes.gotWords[0] != "word-6" {
		t.Errorf("expected newest word first in pool, got %v", quizzes.gotWords)
	}
}

func TestStartQuizRequiresEnoughWords(t *testing.T) {
	uc, _, _, _ := practiceFixture(t, 3)

	_, err := uc.StartQuiz(context.Background(), 1, QuizModeRecent, 0)
	if !errors.Is(err, entity.ErrInsufficientWords) {
		t.Fatalf("expected ErrInsufficientWords, got %v", err)
	}
	_, err = uc.StartQuiz(context.Background(), 1, QuizModeAll, 10)
	if !errors.Is(err, entity.ErrInsufficientWords) {
		t.Fatalf("expected ErrInsufficientWords, got %v", err)
	}
}

func TestStartQuizEmptyGenerationIsSoftFailure(t *testing.T) {
	uc, _, quizzes, _ := practiceFixture(t, 6)
	quizzes.questions = nil

	_, err := uc.StartQuiz(context.Background(), 1, QuizModeAll, 5)
	if !errors.Is(err, entity.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed for empty quiz, got %v", err)
	}
	if len(uc.sessions) != 0 {
		t.Errorf("failed generation must not leave a session behind, found %d", len(uc.sessions))
	}
}

func TestStartQuizDropsMalformedQuestions(t *testing.T) {
	uc, _, quizzes, _ := practiceFixture(t, 6)
	good := quizQuestionsFor("word-1")[0]
	quizzes.questions = []entity.QuizQuestion{
		{Question: "three options only", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"},
		{Question: "answer not an option", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "z"},
		good,
	}

	state, err := uc.StartQuiz(context.Background(), 1, QuizModeAll, 5)
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	if len(state.Questions) != 1 {
		t.Fatalf("expected only the valid question to survive, got %d", len(state.Questions))
	}
}

func TestStartQuizClampsQuestionCount(t *testing.T) {
	uc, _, quizzes, _ := practiceFixture(t, 6)
	quizzes.questions = quizQuestionsFor("word-0")

	if _, err := uc.StartQuiz(context.Background(), 1, QuizModeAll, 50); err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	if quizzes.gotCount != 20 {
		t.Errorf("expected question count clamped to 20, got %d", quizzes.gotCount)
	}
	if _, err := uc.StartQuiz(context.Background(), 1, QuizModeAll, 1); err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	if quizzes.gotCount != 5 {
		t.Errorf("expected question count raised to 5, got %d", quizzes.gotCount)
	}
}

func TestQuizSessionFlow(t *testing.T) {
	uc, _, quizzes, _ := practiceFixture(t, 6)
	quizzes.questions = quizQuestionsFor("word-0", "word-1", "word-2")

	state, err := uc.StartQuiz(context.Background(), 1, QuizModeAll, 5)
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	ctx := context.Background()
	id := state.SessionID

	// correct, incorrect, correct
	for i, option := range []string{"word-0", "b", "word-2"} {
		answer, err := uc.Answer(ctx, id, option)
		if err != nil {
			t.Fatalf("Answer %d returned error: %v", i, err)
		}
		if answer.QuestionIndex != i {
			t.Errorf("expected answer index %d, got %d", i, answer.QuestionIndex)
		}
		if _, err := uc.Advance(ctx, id); err != nil {
			t.Fatalf("Advance %d returned error: %v", i, err)
		}
	}

	results, err := uc.Results(ctx, id)
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if results.Score != 67 {
		t.Errorf("expected score 67, got %d", results.Score)
	}
	if len(results.Answers) != 3 {
		t.Errorf("expected 3 logged answers, got %d", len(results.Answers))
	}

	uc.Discard(ctx, id)
	if _, err := uc.Results(ctx, id); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after discard, got %v", err)
	}
}

func TestAnswerGuards(t *testing.T) {
	uc, _, quizzes, _ := practiceFixture(t, 6)
	quizzes.questions = quizQuestionsFor("word-0")

	state, err := uc.StartQuiz(context.Background(), 1, QuizModeAll, 5)
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := uc.Advance(ctx, state.SessionID); !errors.Is(err, quiz.ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered before answering, got %v", err)
	}
	if _, err := uc.Answer(ctx, "missing", "x"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestBlankExerciseUsesInjectedPicker(t *testing.T) {
	uc, repo, _, _ := practiceFixture(t, 0)
	now := time.Now()
	word, err := repo.Create(context.Background(), &entity.Word{
		UserID:     1,
		Word:       "bridge",
		NextReview: now,
		AddedDate:  now,
		Details: entity.WordDetails{
			ExampleSentences: []entity.ExampleSentence{
				{Sentence: "The bridge is old."},
				{Sentence: "Cross the bridge slowly."},
			},
		},
	})
	if err != nil {
		t.Fatalf("seed word: %v", err)
	}
	uc.pick = func(n int) int { return n - 1 }

	exercise, err := uc.BlankExercise(context.Background(), 1, word.ID)
	if err != nil {
		t.Fatalf("BlankExercise returned error: %v", err)
	}
	if exercise.Sentence != "Cross the bridge slowly." {
		t.Errorf("expected picker-selected sentence, got %q", exercise.Sentence)
	}
	if exercise.Blanked != "Cross the ______ slowly." {
		t.Errorf("unexpected blanked sentence %q", exercise.Blanked)
	}
}

func TestEvaluateBlankRecordsOutcome(t *testing.T) {
	uc, repo, _, evaluator := practiceFixture(t, 0)
	now := time.Now()
	word, err := repo.Create(context.Background(), &entity.Word{
		UserID:     1,
		Word:       "bridge",
		SrsLevel:   1,
		NextReview: now.Add(-time.Hour),
		AddedDate:  now,
		Details: entity.WordDetails{
			ExampleSentences: []entity.ExampleSentence{{Sentence: "The bridge is old."}},
		},
	})
	if err != nil {
		t.Fatalf("seed word: %v", err)
	}
	evaluator.evaluation = &entity.Evaluation{IsCorrect: true, Explanation: "exact match"}

	result, err := uc.EvaluateBlank(context.Background(), 1, word.ID, "The ______ is old.", "bridge")
	if err != nil {
		t.Fatalf("EvaluateBlank returned error: %v", err)
	}
	if !result.Evaluation.IsCorrect {
		t.Error("expected a correct evaluation")
	}
	if result.Word.SrsLevel != 2 {
		t.Errorf("expected schedule advanced to level 2, got %d", result.Word.SrsLevel)
	}
	if result.Word.TimesCorrect != 1 {
		t.Errorf("expected correct counter 1, got %d", result.Word.TimesCorrect)
	}
}

func TestEvaluateBlankFailureLeavesScheduleUntouched(t *testing.T) {
	uc, repo, _, evaluator := practiceFixture(t, 0)
	now := time.Now()
	word, err := repo.Create(context.Background(), &entity.Word{
		UserID:     1,
		Word:       "bridge",
		SrsLevel:   4,
		NextReview: now.Add(-time.Hour),
		AddedDate:  now,
		Details: entity.WordDetails{
			ExampleSentences: []entity.ExampleSentence{{Sentence: "The bridge is old."}},
		},
	})
	if err != nil {
		t.Fatalf("seed word: %v", err)
	}
	evaluator.err = errors.New("model unavailable")

	_, err = uc.EvaluateBlank(context.Background(), 1, word.ID, "The ______ is old.", "bridge")
	if !errors.Is(err, entity.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	stored, err := repo.GetByID(context.Background(), 1, word.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.SrsLevel != 4 || stored.TimesCorrect != 0 || stored.TimesIncorrect != 0 {
		t.Errorf("failed evaluation must not touch the schedule: %+v", stored)
	}
}
