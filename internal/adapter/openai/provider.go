// Package openai implements the generated-content ports against an
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/kelimeci/kelimeci/internal/ai"
	"github.com/kelimeci/kelimeci/internal/entity"
)

// Config holds the provider configuration.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	ChatModel   string        `mapstructure:"chat_model"`
	SpeechModel string        `mapstructure:"speech_model"`
	SpeechVoice string        `mapstructure:"speech_voice"`
	MaxRetries  int           `mapstructure:"max_retries"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Provider implements every ai port on a single OpenAI client.
type Provider struct {
	client *openai.Client
	config Config
	log    *logrus.Logger

	// Collapses concurrent detail lookups for the same word into one
	// upstream request.
	details singleflight.Group
}

var (
	_ ai.DetailGenerator   = (*Provider)(nil)
	_ ai.QuizGenerator     = (*Provider)(nil)
	_ ai.AnswerEvaluator   = (*Provider)(nil)
	_ ai.Translator        = (*Provider)(nil)
	_ ai.SpeechSynthesizer = (*Provider)(nil)
)

// NewProvider creates a provider with defaults applied for unset values.
func NewProvider(cfg Config, log *logrus.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = openai.GPT4oMini
	}
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = string(openai.TTSModel1)
	}
	if cfg.SpeechVoice == "" {
		cfg.SpeechVoice = string(openai.VoiceAlloy)
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		log:    log,
	}
}

func (p *Provider) GenerateWordDetails(ctx context.Context, word string) (*entity.WordDetails, error) {
	result, err, _ := p.details.Do(strings.ToLower(strings.TrimSpace(word)), func() (any, error) {
		return p.generateWordDetails(ctx, word)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entity.WordDetails), nil
}

func (p *Provider) generateWordDetails(ctx context.Context, word string) (*entity.WordDetails, error) {
	prompt := fmt.Sprintf(`You are a Turkish-English dictionary assistant.
For the English word %q return a JSON object with these keys:
  "translations": 1-3 Turkish translations, most common first,
  "word_type": one of noun, verb, adjective, adverb, phrase, other,
  "synonyms": up to 3 English synonyms (may be empty),
  "example_sentences": exactly 2 objects with "sentence" (English, using the word) and "translation" (Turkish).
Respond with JSON only.`, word)

	var details wordDetailsPayload
	if err := p.chatJSON(ctx, prompt, &details); err != nil {
		return nil, err
	}
	result, err := details.toEntity()
	if err != nil {
		return nil, fmt.Errorf("word %q: %w", word, err)
	}
	return result, nil
}

func (p *Provider) GenerateQuiz(ctx context.Context, words []string, questionCount int32) ([]entity.QuizQuestion, error) {
	prompt := fmt.Sprintf(`You are a vocabulary quiz writer for Turkish learners of English.
Write %d multiple-choice questions covering these English words: %s.
Return a JSON object {"questions": [...]} where every question has:
  "word": the English word being tested,
  "question": a Turkish question asking for the meaning or usage of the word,
  "options": exactly 4 distinct answer options,
  "correct_answer": the option that is correct, copied verbatim from "options".
Respond with JSON only.`, questionCount, strings.Join(words, ", "))

	var payload quizPayload
	if err := p.chatJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}
	return payload.toEntities(), nil
}

func (p *Provider) Evaluate(ctx context.Context, sentence, userAnswer, correctAnswer string) (*entity.Evaluation, error) {
	prompt := fmt.Sprintf(`A learner filled a blank in the sentence below.
Sentence with blank: %q
Expected word: %q
Learner's answer: %q
Accept the answer when it is the expected word, a close synonym, or a minor misspelling that keeps the meaning.
Return a JSON object {"is_correct": bool, "explanation": short Turkish explanation}.`, sentence, correctAnswer, userAnswer)

	var payload evaluationPayload
	if err := p.chatJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}
	return &entity.Evaluation{IsCorrect: payload.IsCorrect, Explanation: payload.Explanation}, nil
}

func (p *Provider) Translate(ctx context.Context, text string) (string, error) {
	var result string
	err := p.doWithRetry(ctx, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.config.ChatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: "Translate the user's text into Turkish. Reply with the translation only."},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return result, nil
}

func (p *Provider) Synthesize(ctx context.Context, text string) (*ai.Speech, error) {
	var audio []byte
	err := p.doWithRetry(ctx, func() error {
		resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
			Model:          openai.SpeechModel(p.config.SpeechModel),
			Input:          text,
			Voice:          openai.SpeechVoice(p.config.SpeechVoice),
			ResponseFormat: openai.SpeechResponseFormatMp3,
		})
		if err != nil {
			return err
		}
		defer resp.Close()
		audio, err = io.ReadAll(resp)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return &ai.Speech{
		MIMEType: "audio/mpeg",
		Audio:    base64.StdEncoding.EncodeToString(audio),
	}, nil
}

// chatJSON asks for a JSON-only completion and decodes it into out.
func (p *Provider) chatJSON(ctx context.Context, prompt string, out any) error {
	return p.doWithRetry(ctx, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.config.ChatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		return decodeJSONReply(resp.Choices[0].Message.Content, out)
	})
}

// doWithRetry executes fn with exponential backoff.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < p.config.MaxRetries-1 {
			wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			p.log.WithError(err).WithField("attempt", attempt+1).Debug("ai request failed, retrying")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
