//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/kelimeci/kelimeci/internal/adapter/httpapi"
	adapteropenai "github.com/kelimeci/kelimeci/internal/adapter/openai"
	"github.com/kelimeci/kelimeci/internal/ai"
	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
	"github.com/kelimeci/kelimeci/internal/infrastructure/database"
	"github.com/kelimeci/kelimeci/internal/infrastructure/server"
	"github.com/kelimeci/kelimeci/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	NewWordRepository,
	NewProfileRepository,
)

var aiSet = wire.NewSet(
	NewAIProvider,
	wire.Bind(new(ai.DetailGenerator), new(*adapteropenai.Provider)),
	wire.Bind(new(ai.QuizGenerator), new(*adapteropenai.Provider)),
	wire.Bind(new(ai.AnswerEvaluator), new(*adapteropenai.Provider)),
	wire.Bind(new(ai.Translator), new(*adapteropenai.Provider)),
	wire.Bind(new(ai.SpeechSynthesizer), new(*adapteropenai.Provider)),
)

var usecaseSet = wire.NewSet(
	usecase.NewWordUsecase,
	usecase.NewReviewUsecase,
	usecase.NewPracticeUsecase,
	usecase.NewProfileUsecase,
)

var serverSet = wire.NewSet(
	httpapi.NewHandler,
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		aiSet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
