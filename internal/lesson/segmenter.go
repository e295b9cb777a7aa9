package lesson

import (
	"context"
	"strings"

	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

// SentenceSegmenter turns translation-provider output into validated sentence
// pairs. Pairs with an empty French or English side are dropped silently;
// surviving pairs keep their relative order. Vocabulary glosses are filtered
// the same way per entry, keeping the pre-filter index for id assignment.
type SentenceSegmenter struct {
	log        *logger.Logger
	translator Translator
}

func NewSentenceSegmenter(log *logger.Logger, translator Translator) *SentenceSegmenter {
	return &SentenceSegmenter{
		log:        log.With("service", "SentenceSegmenter"),
		translator: translator,
	}
}

func (s *SentenceSegmenter) Segment(ctx context.Context, rawText string) ([]SentencePair, error) {
	ctx = ctxutil.Default(ctx)

	result, err := s.translator.Translate(ctx, rawText)
	if err != nil {
		return nil, err
	}

	pairs := FilterSentences(result.Sentences)
	s.log.Debug("segmented text",
		"sentences", len(result.Sentences),
		"kept", len(pairs),
	)
	return pairs, nil
}

// FilterSentences applies the empty-side drop rule to raw provider sentences.
func FilterSentences(raw []RawSentence) []SentencePair {
	pairs := make([]SentencePair, 0, len(raw))
	for _, sent := range raw {
		fr := strings.TrimSpace(sent.French)
		en := strings.TrimSpace(sent.English)
		if fr == "" || en == "" {
			continue
		}

		var vocab []VocabPair
		for i, v := range sent.KeyVocab {
			vfr := strings.TrimSpace(v.French)
			ven := strings.TrimSpace(v.English)
			if vfr == "" || ven == "" {
				continue
			}
			vocab = append(vocab, VocabPair{Index: i, French: vfr, English: ven})
		}

		pairs = append(pairs, SentencePair{French: fr, English: en, KeyVocab: vocab})
	}
	return pairs
}
