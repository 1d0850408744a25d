package httpapi

import (
	"time"

	"github.com/samber/lo"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/usecase"
)

type createWordRequest struct {
	Word string `json:"word"`
}

type recordOutcomeRequest struct {
	WordID  string `json:"word_id"`
	Correct bool   `json:"correct"`
}

type startQuizRequest struct {
	Mode          string `json:"mode"`
	QuestionCount int32  `json:"question_count"`
}

type answerRequest struct {
	Option string `json:"option"`
}

type blankRequest struct {
	WordID string `json:"word_id"`
}

type evaluateBlankRequest struct {
	WordID   string `json:"word_id"`
	Sentence string `json:"sentence"`
	Answer   string `json:"answer"`
}

type dailyGoalRequest struct {
	DailyGoal int32 `json:"daily_goal"`
}

type textRequest struct {
	Text string `json:"text"`
}

type exampleSentenceResponse struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

type wordResponse struct {
	ID               string                    `json:"id"`
	Word             string                    `json:"word"`
	Translations     []string                  `json:"translations"`
	WordType         string                    `json:"word_type,omitempty"`
	Synonyms         []string                  `json:"synonyms,omitempty"`
	ExampleSentences []exampleSentenceResponse `json:"example_sentences,omitempty"`
	SrsLevel         int32                     `json:"srs_level"`
	NextReview       time.Time                 `json:"next_review"`
	LastCorrect      *time.Time                `json:"last_correct,omitempty"`
	TimesCorrect     int32                     `json:"times_correct"`
	TimesIncorrect   int32                     `json:"times_incorrect"`
	AddedDate        time.Time                 `json:"added_date"`
}

func toWordResponse(word *entity.Word) wordResponse {
	return wordResponse{
		ID:           word.ID,
		Word:         word.Word,
		Translations: word.Details.Translations,
		WordType:     word.Details.WordType,
		Synonyms:     word.Details.Synonyms,
		ExampleSentences: lo.Map(word.Details.ExampleSentences, func(s entity.ExampleSentence, _ int) exampleSentenceResponse {
			return exampleSentenceResponse{Sentence: s.Sentence, Translation: s.Translation}
		}),
		SrsLevel:       word.SrsLevel,
		NextReview:     word.NextReview,
		LastCorrect:    word.LastCorrect,
		TimesCorrect:   word.TimesCorrect,
		TimesIncorrect: word.TimesIncorrect,
		AddedDate:      word.AddedDate,
	}
}

func toWordResponses(words []*entity.Word) []wordResponse {
	return lo.Map(words, func(w *entity.Word, _ int) wordResponse { return toWordResponse(w) })
}

type listWordsResponse struct {
	Words []wordResponse `json:"words"`
	Total int64          `json:"total"`
}

type reviewQueueResponse struct {
	Words []wordResponse `json:"words"`
}

type reviewStatsResponse struct {
	TotalWords   int64 `json:"total_words"`
	DueCount     int   `json:"due_count"`
	LearnedToday int   `json:"learned_today"`
	DailyGoal    int32 `json:"daily_goal"`
}

type questionResponse struct {
	Word          string   `json:"word,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

func toQuestionResponse(q entity.QuizQuestion) questionResponse {
	return questionResponse{
		Word:          q.Word,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
	}
}

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	Questions []questionResponse `json:"questions"`
	Index     int                `json:"index"`
	Finished  bool               `json:"finished"`
}

func toSessionResponse(state *usecase.SessionState) sessionResponse {
	return sessionResponse{
		SessionID: state.SessionID,
		Questions: lo.Map(state.Questions, func(q entity.QuizQuestion, _ int) questionResponse { return toQuestionResponse(q) }),
		Index:     state.Index,
		Finished:  state.Finished,
	}
}

type answerResponse struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"is_correct"`
}

type questionResultResponse struct {
	Question questionResponse `json:"question"`
	Answer   *answerResponse  `json:"answer,omitempty"`
}

type resultsResponse struct {
	Score   int                      `json:"score"`
	Results []questionResultResponse `json:"results"`
}

func toResultsResponse(results *usecase.QuizResults) resultsResponse {
	resp := resultsResponse{Score: results.Score}
	for _, result := range results.Results {
		item := questionResultResponse{Question: toQuestionResponse(result.Question)}
		if result.Answer != nil {
			item.Answer = &answerResponse{
				QuestionIndex: result.Answer.QuestionIndex,
				Answer:        result.Answer.Answer,
				IsCorrect:     result.Answer.IsCorrect,
			}
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

type blankResponse struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
	Blanked  string `json:"blanked"`
}

type evaluateBlankResponse struct {
	IsCorrect   bool         `json:"is_correct"`
	Explanation string       `json:"explanation"`
	Word        wordResponse `json:"word"`
}

type profileResponse struct {
	UserID    int64 `json:"user_id"`
	DailyGoal int32 `json:"daily_goal"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

type speechResponse struct {
	MIMEType string `json:"mime_type"`
	Audio    string `json:"audio"`
}
