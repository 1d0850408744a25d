package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/quiz"
)

func makeQuestions(words ...string) []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, len(words))
	for i, w := range words {
		questions[i] = entity.QuizQuestion{
			Question:      "What does '" + w + "' mean?",
			Options:       []string{"a", "b", "c", w},
			CorrectAnswer: w,
			Word:          w,
		}
	}
	return questions
}

func TestSessionHappyPath(t *testing.T) {
	s := quiz.NewSession(makeQuestions("apple", "bridge", "comet"))

	// correct, incorrect, correct
	answers := []string{"apple", "b", "comet"}
	for i, opt := range answers {
		q, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, i, s.Index())
		assert.NotEmpty(t, q.Question)

		recorded, err := s.SelectAnswer(opt)
		require.NoError(t, err)
		assert.Equal(t, i, recorded.QuestionIndex)
		require.NoError(t, s.Advance())
	}

	require.True(t, s.Finished())
	assert.Equal(t, 67, s.Score())

	log := s.Answers()
	require.Len(t, log, 3)
	assert.True(t, log[0].IsCorrect)
	assert.False(t, log[1].IsCorrect)
	assert.True(t, log[2].IsCorrect)
	for i, a := range log {
		assert.Equal(t, i, a.QuestionIndex, "answer log must stay in order")
	}
}

func TestSessionFirstAnswerIsFinal(t *testing.T) {
	s := quiz.NewSession(makeQuestions("apple"))

	first, err := s.SelectAnswer("b")
	require.NoError(t, err)
	assert.False(t, first.IsCorrect)

	// Second select before advancing must not overwrite the log.
	second, err := s.SelectAnswer("apple")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, s.Advance())
	assert.Equal(t, 0, s.Score())
	require.Len(t, s.Answers(), 1)
}

func TestSessionAdvanceRequiresAnswer(t *testing.T) {
	s := quiz.NewSession(makeQuestions("apple", "bridge"))

	assert.ErrorIs(t, s.Advance(), quiz.ErrUnanswered)

	_, err := s.SelectAnswer("apple")
	require.NoError(t, err)
	require.NoError(t, s.Advance())

	assert.ErrorIs(t, s.Advance(), quiz.ErrUnanswered)
}

func TestSessionFinishedGuards(t *testing.T) {
	s := quiz.NewSession(makeQuestions("apple"))
	_, err := s.SelectAnswer("apple")
	require.NoError(t, err)
	require.NoError(t, s.Advance())
	require.True(t, s.Finished())

	_, err = s.SelectAnswer("apple")
	assert.ErrorIs(t, err, quiz.ErrFinished)
	assert.ErrorIs(t, s.Advance(), quiz.ErrFinished)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSessionScores(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		correct int
		want    int
	}{
		{"none of five", 5, 0, 0},
		{"all of five", 5, 5, 100},
		{"three of seven", 7, 3, 43},
		{"empty session", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			words := make([]string, tc.total)
			for i := range words {
				words[i] = "word"
			}
			s := quiz.NewSession(makeQuestions(words...))
			for i := 0; i < tc.total; i++ {
				opt := "b"
				if i < tc.correct {
					opt = "word"
				}
				_, err := s.SelectAnswer(opt)
				require.NoError(t, err)
				require.NoError(t, s.Advance())
			}
			assert.Equal(t, tc.want, s.Score())
		})
	}
}

func TestSessionResultsToleratesMissingAnswers(t *testing.T) {
	s := quiz.NewSession(makeQuestions("apple", "bridge"))
	_, err := s.SelectAnswer("apple")
	require.NoError(t, err)

	results := s.Results()
	require.Len(t, results, 2)
	require.NotNil(t, results[0].Answer)
	assert.True(t, results[0].Answer.IsCorrect)
	assert.Nil(t, results[1].Answer, "unanswered question must pair with nil, not error")
}
