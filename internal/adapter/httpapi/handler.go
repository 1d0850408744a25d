// Package httpapi exposes the application over a JSON REST API.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kelimeci/kelimeci/internal/ai"
	"github.com/kelimeci/kelimeci/internal/repository"
	"github.com/kelimeci/kelimeci/internal/usecase"
)

// Handler carries the usecases behind the REST routes.
type Handler struct {
	words    usecase.WordUsecase
	review   usecase.ReviewUsecase
	practice usecase.PracticeUsecase
	profile  usecase.ProfileUsecase

	translator  ai.Translator
	synthesizer ai.SpeechSynthesizer

	log *logrus.Logger
}

func NewHandler(
	words usecase.WordUsecase,
	review usecase.ReviewUsecase,
	practice usecase.PracticeUsecase,
	profile usecase.ProfileUsecase,
	translator ai.Translator,
	synthesizer ai.SpeechSynthesizer,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		words:       words,
		review:      review,
		practice:    practice,
		profile:     profile,
		translator:  translator,
		synthesizer: synthesizer,
		log:         log,
	}
}

// Register mounts every route under the given group.
func (h *Handler) Register(group *echo.Group) {
	group.POST("/words", h.createWord)
	group.GET("/words", h.listWords)
	group.GET("/words/:id", h.getWord)
	group.DELETE("/words/:id", h.deleteWord)

	group.GET("/review/queue", h.reviewQueue)
	group.GET("/review/stats", h.reviewStats)
	group.POST("/review/outcome", h.recordOutcome)

	group.POST("/quiz/sessions", h.startQuiz)
	group.POST("/quiz/sessions/:id/answers", h.answerQuiz)
	group.POST("/quiz/sessions/:id/advance", h.advanceQuiz)
	group.GET("/quiz/sessions/:id/results", h.quizResults)
	group.DELETE("/quiz/sessions/:id", h.discardQuiz)

	group.POST("/exercises/blank", h.blankExercise)
	group.POST("/exercises/blank/evaluate", h.evaluateBlank)

	group.GET("/profile", h.getProfile)
	group.PUT("/profile/daily-goal", h.setDailyGoal)

	group.POST("/translate", h.translate)
	group.POST("/speech", h.speech)
}

func (h *Handler) createWord(c echo.Context) error {
	var req createWordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	word, err := h.words.AddWord(c.Request().Context(), userID(c), req.Word)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, toWordResponse(word))
}

func (h *Handler) listWords(c echo.Context) error {
	query := &repository.ListWordQuery{UserID: userID(c)}
	query.Filter = c.QueryParam("filter")
	query.OrderBy = c.QueryParam("order_by")
	query.PageNo = queryInt32(c, "page_no")
	query.PageSize = queryInt32(c, "page_size")

	words, total, err := h.words.ListWords(c.Request().Context(), query)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, listWordsResponse{
		Words: toWordResponses(words),
		Total: total,
	})
}

func (h *Handler) getWord(c echo.Context) error {
	word, err := h.words.GetWord(c.Request().Context(), userID(c), c.Param("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, toWordResponse(word))
}

func (h *Handler) deleteWord(c echo.Context) error {
	if err := h.words.DeleteWord(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return translateError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) reviewQueue(c echo.Context) error {
	words, err := h.review.DueWords(c.Request().Context(), userID(c))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, reviewQueueResponse{Words: toWordResponses(words)})
}

func (h *Handler) reviewStats(c echo.Context) error {
	stats, err := h.review.Stats(c.Request().Context(), userID(c))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, reviewStatsResponse{
		TotalWords:   stats.TotalWords,
		DueCount:     stats.DueCount,
		LearnedToday: stats.LearnedToday,
		DailyGoal:    stats.DailyGoal,
	})
}

func (h *Handler) recordOutcome(c echo.Context) error {
	var req recordOutcomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	word, err := h.review.RecordOutcome(c.Request().Context(), userID(c), req.WordID, req.Correct)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, toWordResponse(word))
}

func (h *Handler) startQuiz(c echo.Context) error {
	var req startQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	mode := usecase.QuizMode(strings.ToLower(req.Mode))
	switch mode {
	case usecase.QuizModeRecent, usecase.QuizModeAll:
	case "":
		mode = usecase.QuizModeRecent
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown quiz mode")
	}

	state, err := h.practice.StartQuiz(c.Request().Context(), userID(c), mode, req.QuestionCount)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, toSessionResponse(state))
}

func (h *Handler) answerQuiz(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	answer, err := h.practice.Answer(c.Request().Context(), c.Param("id"), req.Option)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, answerResponse{
		QuestionIndex: answer.QuestionIndex,
		Answer:        answer.Answer,
		IsCorrect:     answer.IsCorrect,
	})
}

func (h *Handler) advanceQuiz(c echo.Context) error {
	state, err := h.practice.Advance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(state))
}

func (h *Handler) quizResults(c echo.Context) error {
	results, err := h.practice.Results(c.Request().Context(), c.Param("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, toResultsResponse(results))
}

func (h *Handler) discardQuiz(c echo.Context) error {
	h.practice.Discard(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) blankExercise(c echo.Context) error {
	var req blankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	exercise, err := h.practice.BlankExercise(c.Request().Context(), userID(c), req.WordID)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, blankResponse{
		Word:     exercise.Word,
		Sentence: exercise.Sentence,
		Blanked:  exercise.Blanked,
	})
}

func (h *Handler) evaluateBlank(c echo.Context) error {
	var req evaluateBlankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	result, err := h.practice.EvaluateBlank(c.Request().Context(), userID(c), req.WordID, req.Sentence, req.Answer)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, evaluateBlankResponse{
		IsCorrect:   result.Evaluation.IsCorrect,
		Explanation: result.Evaluation.Explanation,
		Word:        toWordResponse(result.Word),
	})
}

func (h *Handler) getProfile(c echo.Context) error {
	profile, err := h.profile.GetProfile(c.Request().Context(), userID(c))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, profileResponse{UserID: profile.UserID, DailyGoal: profile.DailyGoal})
}

func (h *Handler) setDailyGoal(c echo.Context) error {
	var req dailyGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	profile, err := h.profile.SetDailyGoal(c.Request().Context(), userID(c), req.DailyGoal)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, profileResponse{UserID: profile.UserID, DailyGoal: profile.DailyGoal})
}

func (h *Handler) translate(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	translated, err := h.translator.Translate(c.Request().Context(), req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "translation failed")
	}
	return c.JSON(http.StatusOK, translateResponse{Translation: translated})
}

func (h *Handler) speech(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	speech, err := h.synthesizer.Synthesize(c.Request().Context(), req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "speech synthesis failed")
	}
	return c.JSON(http.StatusOK, speechResponse{MIMEType: speech.MIMEType, Audio: speech.Audio})
}
