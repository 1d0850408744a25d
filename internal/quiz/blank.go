package quiz

import (
	"regexp"
	"strings"

	"github.com/kelimeci/kelimeci/internal/entity"
)

// BlankMarker replaces the target word in a fill-in-the-blank sentence.
const BlankMarker = "______"

// BlankExercise is a degenerate single-question session: one sentence
// with the target word redacted, answered with free text and judged by
// the AI evaluator.
type BlankExercise struct {
	Word     string
	Sentence string
	Blanked  string
}

// NewBlankExercise picks one example sentence via the injected picker
// (pick(n) returns an index in [0,n)) and redacts every whole-word,
// case-insensitive occurrence of the target word.
func NewBlankExercise(word string, sentences []entity.ExampleSentence, pick func(n int) int) (BlankExercise, error) {
	if strings.TrimSpace(word) == "" {
		return BlankExercise{}, entity.ErrInvalidWordText
	}
	if len(sentences) == 0 {
		return BlankExercise{}, entity.ErrNoExampleSentence
	}
	sentence := sentences[pick(len(sentences))].Sentence
	return BlankExercise{
		Word:     word,
		Sentence: sentence,
		Blanked:  RedactWord(sentence, word),
	}, nil
}

// RedactWord replaces whole-word, case-insensitive occurrences of word in
// the sentence with the blank marker.
func RedactWord(sentence, word string) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(word)) + `\b`)
	if err != nil {
		return sentence
	}
	return re.ReplaceAllString(sentence, BlankMarker)
}
