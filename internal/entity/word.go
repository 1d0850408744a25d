package entity

import (
	"strings"
	"time"
)

// ExampleSentence pairs an English example with its Turkish translation.
type ExampleSentence struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// WordDetails is the AI-generated content attached to a vocabulary entry.
// The scheduling core treats it as opaque.
type WordDetails struct {
	Translations     []string          `json:"translations"`
	WordType         string            `json:"word_type"`
	Synonyms         []string          `json:"synonyms"`
	ExampleSentences []ExampleSentence `json:"example_sentences"`
}

// Word represents a learnable vocabulary entry owned by a user.
type Word struct {
	ID     string
	UserID int64
	Word   string

	Details WordDetails

	// Spaced repetition state. NextReview is always derived from SrsLevel
	// through the srs package; it is never set directly.
	SrsLevel       int32
	NextReview     time.Time
	LastCorrect    *time.Time
	TimesCorrect   int32
	TimesIncorrect int32

	AddedDate time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the word's identity within a user's collection.
func (w *Word) Key() string {
	return NormalizeWordToken(w.Word)
}

// Due reports whether the word is due for review at the given time.
func (w *Word) Due(now time.Time) bool {
	return !w.NextReview.After(now)
}

// Normalize ensures defaults & constraints before persistence.
func (w *Word) Normalize(now time.Time) {
	w.Word = strings.TrimSpace(w.Word)
	if w.AddedDate.IsZero() {
		w.AddedDate = now
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	if w.Details.Translations == nil {
		w.Details.Translations = []string{}
	}
	if w.Details.Synonyms == nil {
		w.Details.Synonyms = []string{}
	}
	if w.Details.ExampleSentences == nil {
		w.Details.ExampleSentences = []ExampleSentence{}
	}
}

// NormalizeWordToken lowercases and trims a word so lookups are
// case-insensitive.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
