package entity

import "errors"

// Domain errors for vocabulary entries and practice sessions.
var (
	ErrWordNotFound      = errors.New("word not found")
	ErrDuplicateWord     = errors.New("word already exists")
	ErrInvalidWordText   = errors.New("invalid word text")
	ErrInvalidWordID     = errors.New("invalid word ID")
	ErrInsufficientWords = errors.New("not enough words in vocabulary")
	ErrNoExampleSentence = errors.New("word has no example sentences")
	ErrGenerationFailed  = errors.New("content generation failed")
	ErrSessionNotFound   = errors.New("quiz session not found")
	ErrProfileNotFound   = errors.New("user profile not found")
)
