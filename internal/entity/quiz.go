package entity

// QuizQuestion is a single multiple-choice question produced by the AI
// quiz generator. Immutable once generated.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Word          string   `json:"word"`
}

// Valid reports whether the question carries exactly four options and the
// correct answer is one of them.
func (q QuizQuestion) Valid() bool {
	if q.Question == "" || len(q.Options) != 4 {
		return false
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// UserAnswer records one submitted answer within a quiz session.
type UserAnswer struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// Evaluation is the AI judgment of a free-text fill-in-the-blank answer.
type Evaluation struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}
