package lesson

import (
	"context"

	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

// AudioAnnotator attaches narration audio to a segment: one synthesis call per
// French/English string, including every vocabulary entry. Duplicate text is
// resynthesized rather than cached.
// TODO: memoize (text, language) within a single build to skip duplicate
// synthesis calls for repeated vocab terms.
type AudioAnnotator struct {
	log    *logger.Logger
	speech Synthesizer
}

func NewAudioAnnotator(log *logger.Logger, speech Synthesizer) *AudioAnnotator {
	return &AudioAnnotator{
		log:    log.With("service", "AudioAnnotator"),
		speech: speech,
	}
}

// Annotate fills seg's audio fields in place. A synthesis failure aborts
// immediately; callers must discard the partially annotated segment.
func (a *AudioAnnotator) Annotate(ctx context.Context, seg *Segment) error {
	ctx = ctxutil.Default(ctx)

	audioFr, err := a.speech.Speak(ctx, seg.French, LangFrench)
	if err != nil {
		return err
	}
	audioEn, err := a.speech.Speak(ctx, seg.English, LangEnglish)
	if err != nil {
		return err
	}
	seg.AudioFr = audioFr
	seg.AudioEn = audioEn

	for i := range seg.KeyVocab {
		v := &seg.KeyVocab[i]
		if v.AudioFr, err = a.speech.Speak(ctx, v.French, LangFrench); err != nil {
			return err
		}
		if v.AudioEn, err = a.speech.Speak(ctx, v.English, LangEnglish); err != nil {
			return err
		}
	}
	return nil
}
