package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kelimeci/kelimeci/internal/entity"
	"github.com/kelimeci/kelimeci/internal/quiz"
)

// translateError maps domain errors onto HTTP status codes. Unknown
// errors pass through for the echo error handler to report as 500.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrWordNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrProfileNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrDuplicateWord):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInsufficientWords):
		return echo.NewHTTPError(http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, entity.ErrGenerationFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, entity.ErrInvalidWordText),
		errors.Is(err, entity.ErrInvalidWordID),
		errors.Is(err, entity.ErrNoExampleSentence),
		errors.Is(err, quiz.ErrFinished),
		errors.Is(err, quiz.ErrUnanswered):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
