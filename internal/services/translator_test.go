package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
	"github.com/yungbote/linguaflow-backend/internal/platform/openai"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeAIClient struct {
	text    string
	textErr error

	jsonObj map[string]any
	jsonErr error

	speechResp *openai.SpeechResponse
	speechErr  error
}

func (f *fakeAIClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	return f.text, f.textErr
}

func (f *fakeAIClient) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	return f.jsonObj, f.jsonErr
}

func (f *fakeAIClient) Speech(ctx context.Context, req openai.SpeechRequest) (*openai.SpeechResponse, error) {
	return f.speechResp, f.speechErr
}

func TestTranslateParsesSentences(t *testing.T) {
	ai := &fakeAIClient{jsonObj: map[string]any{
		"sentences": []any{
			map[string]any{
				"french":  "Bonjour le monde.",
				"english": "Hello world.",
				"key_vocab": []any{
					map[string]any{"french": "monde", "english": "world"},
				},
			},
			map[string]any{"french": "Merci.", "english": "Thanks.", "key_vocab": []any{}},
		},
	}}
	svc, err := NewTranslationService(newTestLogger(t), ai)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	result, err := svc.Translate(context.Background(), "Bonjour le monde. Merci.")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if len(result.Sentences) != 2 {
		t.Fatalf("sentences: want=2 got=%d", len(result.Sentences))
	}
	if result.Sentences[0].French != "Bonjour le monde." {
		t.Fatalf("french mismatch: %q", result.Sentences[0].French)
	}
	if len(result.Sentences[0].KeyVocab) != 1 || result.Sentences[0].KeyVocab[0].English != "world" {
		t.Fatalf("vocab mismatch: %+v", result.Sentences[0].KeyVocab)
	}
}

func TestTranslateAcceptsCamelCaseVocabKey(t *testing.T) {
	ai := &fakeAIClient{jsonObj: map[string]any{
		"sentences": []any{
			map[string]any{
				"french":  "Le chat dort.",
				"english": "The cat sleeps.",
				"keyVocab": []any{
					map[string]any{"french": "chat", "english": "cat"},
				},
			},
		},
	}}
	svc, _ := NewTranslationService(newTestLogger(t), ai)

	result, err := svc.Translate(context.Background(), "Le chat dort.")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if len(result.Sentences[0].KeyVocab) != 1 {
		t.Fatalf("camelCase vocab not read: %+v", result.Sentences[0])
	}
}

func TestTranslateMissingSentencesCollection(t *testing.T) {
	ai := &fakeAIClient{jsonObj: map[string]any{"phrases": []any{}}}
	svc, _ := NewTranslationService(newTestLogger(t), ai)

	_, err := svc.Translate(context.Background(), "Bonjour.")
	var tErr *errs.TranslationServiceError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TranslationServiceError, got %v", err)
	}
	if tErr.RawPayload == "" {
		t.Fatalf("expected raw payload for diagnostics")
	}
}

func TestTranslateProviderFailure(t *testing.T) {
	ai := &fakeAIClient{jsonErr: errors.New("connection refused")}
	svc, _ := NewTranslationService(newTestLogger(t), ai)

	_, err := svc.Translate(context.Background(), "Bonjour.")
	var tErr *errs.TranslationServiceError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TranslationServiceError, got %v", err)
	}
}

func TestTranslateEmptyTextRejected(t *testing.T) {
	svc, _ := NewTranslationService(newTestLogger(t), &fakeAIClient{})

	_, err := svc.Translate(context.Background(), "   ")
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
