package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
	"github.com/yungbote/linguaflow-backend/internal/platform/openai"
)

// TranslationService splits French text into sentences and translates each
// into English with optional vocabulary glosses. Implements lesson.Translator.
type TranslationService interface {
	Translate(ctx context.Context, text string) (*lesson.TranslationResult, error)
}

type translationService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewTranslationService(log *logger.Logger, ai openai.Client) (TranslationService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ai == nil {
		return nil, fmt.Errorf("openai client required")
	}
	return &translationService{
		log: log.With("service", "TranslationService"),
		ai:  ai,
	}, nil
}

const translateSystem = `You are a French language tutor. Split the given French text into sentences.
For each sentence return the French form, a natural English translation, and up to three key
vocabulary terms worth glossing (French term plus English meaning). Keep sentence order.`

func translateSchema() map[string]any {
	vocabItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"french":  map[string]any{"type": "string"},
			"english": map[string]any{"type": "string"},
		},
		"required":             []string{"french", "english"},
		"additionalProperties": false,
	}
	sentenceItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"french":    map[string]any{"type": "string"},
			"english":   map[string]any{"type": "string"},
			"key_vocab": map[string]any{"type": "array", "items": vocabItem},
		},
		"required":             []string{"french", "english", "key_vocab"},
		"additionalProperties": false,
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{"type": "array", "items": sentenceItem},
		},
		"required":             []string{"sentences"},
		"additionalProperties": false,
	}
}

func (t *translationService) Translate(ctx context.Context, text string) (*lesson.TranslationResult, error) {
	ctx = ctxutil.Default(ctx)

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", errs.ErrInvalidArgument)
	}

	obj, err := t.ai.GenerateJSON(ctx, translateSystem, text, "sentence_pairs", translateSchema())
	if err != nil {
		return nil, errs.NewTranslationServiceError("provider call failed", "", err)
	}

	result, err := parseTranslationPayload(obj)
	if err != nil {
		return nil, err
	}

	t.log.Debug("translated text", "sentences", len(result.Sentences))
	return result, nil
}

// parseTranslationPayload normalizes the provider payload into the canonical
// in-memory shape. Both key_vocab and keyVocab spellings are accepted here so
// no caller re-derives the duality downstream.
func parseTranslationPayload(obj map[string]any) (*lesson.TranslationResult, error) {
	rawSentences, ok := obj["sentences"].([]any)
	if !ok {
		return nil, errs.NewTranslationServiceError("missing sentences collection", rawPayload(obj), nil)
	}

	out := &lesson.TranslationResult{Sentences: make([]lesson.RawSentence, 0, len(rawSentences))}
	for _, item := range rawSentences {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errs.NewTranslationServiceError("sentence entry is not an object", rawPayload(obj), nil)
		}

		sent := lesson.RawSentence{
			French:  stringField(m, "french"),
			English: stringField(m, "english"),
		}

		vocabList, _ := m["key_vocab"].([]any)
		if vocabList == nil {
			vocabList, _ = m["keyVocab"].([]any)
		}
		for _, vItem := range vocabList {
			vm, ok := vItem.(map[string]any)
			if !ok {
				continue
			}
			sent.KeyVocab = append(sent.KeyVocab, lesson.RawVocab{
				French:  stringField(vm, "french"),
				English: stringField(vm, "english"),
			})
		}

		out.Sentences = append(out.Sentences, sent)
	}
	return out, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func rawPayload(obj map[string]any) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(data)
}
