package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/quiz"
)

func TestNewBlankExercisePicksInjectedSentence(t *testing.T) {
	sentences := []entity.ExampleSentence{
		{Sentence: "The bridge spans the river."},
		{Sentence: "They built a Bridge near the old bridge."},
	}

	ex, err := quiz.NewBlankExercise("bridge", sentences, func(n int) int {
		require.Equal(t, 2, n)
		return 1
	})
	require.NoError(t, err)

	assert.Equal(t, "They built a Bridge near the old bridge.", ex.Sentence)
	assert.Equal(t, "They built a ______ near the old ______.", ex.Blanked,
		"every case-insensitive whole-word occurrence is redacted")
}

func TestNewBlankExerciseErrors(t *testing.T) {
	_, err := quiz.NewBlankExercise("  ", []entity.ExampleSentence{{Sentence: "x"}}, func(int) int { return 0 })
	assert.ErrorIs(t, err, entity.ErrInvalidWordText)

	_, err = quiz.NewBlankExercise("bridge", nil, func(int) int { return 0 })
	assert.ErrorIs(t, err, entity.ErrNoExampleSentence)
}

func TestRedactWordWholeWordOnly(t *testing.T) {
	got := quiz.RedactWord("A cat sat on the catalog.", "cat")
	assert.Equal(t, "A ______ sat on the catalog.", got,
		"substrings inside longer words must survive")
}
