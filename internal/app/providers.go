package app

import (
	"database/sql"

	adapteropenai "github.com/kelimeci/kelimeci/internal/adapter/openai"
	adapterrepo "github.com/kelimeci/kelimeci/internal/adapter/repository"
	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
	"github.com/kelimeci/kelimeci/internal/repository"
	"github.com/sirupsen/logrus"
)

// NewAIProvider adapts the application config into the provider config.
func NewAIProvider(cfg *config.Config, logger *logrus.Logger) *adapteropenai.Provider {
	return adapteropenai.NewProvider(adapteropenai.Config{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		ChatModel:   cfg.AI.ChatModel,
		SpeechModel: cfg.AI.SpeechModel,
		SpeechVoice: cfg.AI.SpeechVoice,
		MaxRetries:  cfg.AI.MaxRetries,
		Timeout:     cfg.AI.Timeout,
	}, logger)
}

// NewWordRepository binds the SQL repository to the configured driver.
func NewWordRepository(db *sql.DB, cfg *config.Config) repository.WordRepository {
	return adapterrepo.NewWordRepository(db, cfg.Database.Driver)
}

// NewProfileRepository binds the SQL repository to the configured driver.
func NewProfileRepository(db *sql.DB, cfg *config.Config) repository.ProfileRepository {
	return adapterrepo.NewProfileRepository(db, cfg.Database.Driver)
}
