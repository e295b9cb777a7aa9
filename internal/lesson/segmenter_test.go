package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeTranslator struct {
	result *TranslationResult
	err    error
}

func (f *fakeTranslator) Translate(ctx context.Context, text string) (*TranslationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestFilterSentencesDropsEmptySides(t *testing.T) {
	raw := []RawSentence{
		{French: "Bonjour.", English: "Hello."},
		{French: "  ", English: "dropped"},
		{French: "dropped", English: ""},
		{French: "Merci.", English: "Thanks."},
	}

	pairs := FilterSentences(raw)

	if len(pairs) != 2 {
		t.Fatalf("kept: want=2 got=%d", len(pairs))
	}
	if pairs[0].French != "Bonjour." || pairs[1].French != "Merci." {
		t.Fatalf("order not preserved: got %q then %q", pairs[0].French, pairs[1].French)
	}
}

func TestFilterSentencesTrimsFields(t *testing.T) {
	pairs := FilterSentences([]RawSentence{{French: "  Salut.  ", English: "\tHi.\n"}})
	if len(pairs) != 1 {
		t.Fatalf("kept: want=1 got=%d", len(pairs))
	}
	if pairs[0].French != "Salut." || pairs[0].English != "Hi." {
		t.Fatalf("fields not trimmed: %+v", pairs[0])
	}
}

func TestFilterSentencesVocabKeepsPreFilterIndex(t *testing.T) {
	raw := []RawSentence{{
		French:  "Le chat dort.",
		English: "The cat sleeps.",
		KeyVocab: []RawVocab{
			{French: "", English: "dropped"},
			{French: "chat", English: "cat"},
			{French: "dormir", English: ""},
			{French: "dort", English: "sleeps"},
		},
	}}

	pairs := FilterSentences(raw)

	if len(pairs) != 1 {
		t.Fatalf("kept: want=1 got=%d", len(pairs))
	}
	vocab := pairs[0].KeyVocab
	if len(vocab) != 2 {
		t.Fatalf("vocab kept: want=2 got=%d", len(vocab))
	}
	if vocab[0].Index != 1 || vocab[1].Index != 3 {
		t.Fatalf("pre-filter indices: want=[1 3] got=[%d %d]", vocab[0].Index, vocab[1].Index)
	}
}

func TestSegmentPropagatesTranslatorError(t *testing.T) {
	wantErr := errors.New("provider down")
	s := NewSentenceSegmenter(newTestLogger(t), &fakeTranslator{err: wantErr})

	_, err := s.Segment(context.Background(), "Bonjour.")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected translator error, got %v", err)
	}
}

func TestSegmentFiltersProviderOutput(t *testing.T) {
	s := NewSentenceSegmenter(newTestLogger(t), &fakeTranslator{
		result: &TranslationResult{Sentences: []RawSentence{
			{French: "Bonjour.", English: "Hello."},
			{French: "", English: ""},
		}},
	})

	pairs, err := s.Segment(context.Background(), "Bonjour.")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("kept: want=1 got=%d", len(pairs))
	}
}
