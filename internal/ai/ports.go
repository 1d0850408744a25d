// Package ai declares the collaborator contracts the application consumes
// for generated content. Implementations live under adapter/openai; the
// scheduling core never calls a provider directly.
package ai

import (
	"context"

	"github.com/kelimeci/kelimeci/internal/entity"
)

// DetailGenerator produces translations, word type, synonyms and example
// sentences for an English word.
type DetailGenerator interface {
	GenerateWordDetails(ctx context.Context, word string) (*entity.WordDetails, error)
}

// QuizGenerator builds a multiple-choice quiz over the given words. It may
// return fewer questions than requested; an empty result is a soft
// failure the caller reports, not a crash.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, words []string, questionCount int32) ([]entity.QuizQuestion, error)
}

// AnswerEvaluator judges a free-text fill-in-the-blank answer, accepting
// synonyms and paraphrase. The core only records the returned boolean.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, sentence, userAnswer, correctAnswer string) (*entity.Evaluation, error)
}

// Translator translates free text into Turkish.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// SpeechSynthesizer renders text as spoken audio, returned as a base64
// payload with its MIME type.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*Speech, error)
}

// Speech is a synthesized audio clip.
type Speech struct {
	MIMEType string `json:"mime_type"`
	Audio    string `json:"audio"`
}
