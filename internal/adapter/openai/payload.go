package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/kelimeci/kelimeci/internal/entity"
)

type wordDetailsPayload struct {
	Translations     []string `json:"translations"`
	WordType         string   `json:"word_type"`
	Synonyms         []string `json:"synonyms"`
	ExampleSentences []struct {
		Sentence    string `json:"sentence"`
		Translation string `json:"translation"`
	} `json:"example_sentences"`
}

func (p wordDetailsPayload) toEntity() (*entity.WordDetails, error) {
	translations := lo.Filter(p.Translations, func(t string, _ int) bool {
		return strings.TrimSpace(t) != ""
	})
	if len(translations) == 0 {
		return nil, errors.New("reply contains no translations")
	}
	details := &entity.WordDetails{
		Translations: translations,
		WordType:     strings.TrimSpace(p.WordType),
		Synonyms:     p.Synonyms,
	}
	for _, example := range p.ExampleSentences {
		if strings.TrimSpace(example.Sentence) == "" {
			continue
		}
		details.ExampleSentences = append(details.ExampleSentences, entity.ExampleSentence{
			Sentence:    example.Sentence,
			Translation: example.Translation,
		})
	}
	return details, nil
}

type quizPayload struct {
	Questions []struct {
		Word          string   `json:"word"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	} `json:"questions"`
}

func (p quizPayload) toEntities() []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, 0, len(p.Questions))
	for _, q := range p.Questions {
		questions = append(questions, entity.QuizQuestion{
			Word:          q.Word,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return questions
}

type evaluationPayload struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// decodeJSONReply unmarshals a model reply, tolerating markdown code
// fences some models wrap JSON in.
func decodeJSONReply(reply string, out any) error {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
		reply = strings.TrimSpace(reply)
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}
