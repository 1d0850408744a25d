// Package quiz drives one in-memory practice session: a fixed sequence of
// questions, an append-only answer log, and a final score. Sessions are
// never persisted; abandoning one simply drops the value.
package quiz

import (
	"errors"
	"math"

	"github.com/kelimeci/kelimeci/internal/entity"
)

var (
	// ErrFinished is returned for operations on a completed session.
	ErrFinished = errors.New("quiz session already finished")
	// ErrUnanswered is returned when advancing past a question that has
	// not been answered yet.
	ErrUnanswered = errors.New("current question not answered")
)

// Session is a single quiz run. It assumes a single actor: the caller
// serializes SelectAnswer and Advance, matching one user answering one
// question at a time.
type Session struct {
	questions []entity.QuizQuestion
	index     int
	answers   []entity.UserAnswer
}

// NewSession starts a session over the given questions at the first one.
func NewSession(questions []entity.QuizQuestion) *Session {
	return &Session{
		questions: questions,
		answers:   make([]entity.UserAnswer, 0, len(questions)),
	}
}

// Current returns the active question, or false when the session is done.
func (s *Session) Current() (entity.QuizQuestion, bool) {
	if s.Finished() {
		return entity.QuizQuestion{}, false
	}
	return s.questions[s.index], true
}

// Index returns the zero-based position of the active question.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Finished reports whether every question has been passed.
func (s *Session) Finished() bool { return s.index >= len(s.questions) }

// Answered reports whether the active question already has an answer.
func (s *Session) Answered() bool {
	return len(s.answers) > s.index
}

// SelectAnswer records the answer for the active question. The first
// answer is final: repeated calls before advancing return the recorded
// answer unchanged.
func (s *Session) SelectAnswer(option string) (entity.UserAnswer, error) {
	if s.Finished() {
		return entity.UserAnswer{}, ErrFinished
	}
	if s.Answered() {
		return s.answers[s.index], nil
	}
	answer := entity.UserAnswer{
		QuestionIndex: s.index,
		Answer:        option,
		IsCorrect:     option == s.questions[s.index].CorrectAnswer,
	}
	s.answers = append(s.answers, answer)
	return answer, nil
}

// Advance moves to the next question. It is only valid once the active
// question has been answered.
func (s *Session) Advance() error {
	if s.Finished() {
		return ErrFinished
	}
	if !s.Answered() {
		return ErrUnanswered
	}
	s.index++
	return nil
}

// Score returns the percentage of correct answers, rounded to the nearest
// integer. An empty session scores zero.
func (s *Session) Score() int {
	if len(s.questions) == 0 {
		return 0
	}
	correct := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(s.questions))))
}

// Answers returns the answer log in submission order.
func (s *Session) Answers() []entity.UserAnswer {
	out := make([]entity.UserAnswer, len(s.answers))
	copy(out, s.answers)
	return out
}

// QuestionResult pairs a question with its recorded answer for the
// end-of-quiz review. Answer is nil when the question was never answered.
type QuestionResult struct {
	Question entity.QuizQuestion
	Answer   *entity.UserAnswer
}

// Results returns one entry per question, tolerating a shorter answer log:
// a missing answer is reported as unanswered rather than an error.
func (s *Session) Results() []QuestionResult {
	results := make([]QuestionResult, len(s.questions))
	for i, q := range s.questions {
		results[i] = QuestionResult{Question: q}
		if i < len(s.answers) {
			answer := s.answers[i]
			results[i].Answer = &answer
		}
	}
	return results
}
