package lesson

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

// SegmentPipeline orchestrates segmentation and audio annotation into a full
// segment list. A failure on any segment aborts the whole build; no partial
// result is returned.
type SegmentPipeline struct {
	log       *logger.Logger
	segmenter *SentenceSegmenter
	annotator *AudioAnnotator

	// workers bounds concurrent annotation. 1 means strictly sequential.
	workers int
}

func NewSegmentPipeline(log *logger.Logger, segmenter *SentenceSegmenter, annotator *AudioAnnotator, workers int) *SegmentPipeline {
	if workers < 1 {
		workers = 1
	}
	return &SegmentPipeline{
		log:       log.With("service", "SegmentPipeline"),
		segmenter: segmenter,
		annotator: annotator,
		workers:   workers,
	}
}

// Build runs the full pipeline over raw French text.
func (p *SegmentPipeline) Build(ctx context.Context, rawText string) ([]Segment, error) {
	ctx = ctxutil.Default(ctx)

	pairs, err := p.segmenter.Segment(ctx, rawText)
	if err != nil {
		return nil, err
	}
	return p.BuildFromPairs(ctx, pairs)
}

// BuildFromPairs is the resume path: annotate a pre-translated sentence list.
// Segment ids are assigned by position in generation order; vocab ids keep the
// pre-filter index of each gloss within its sentence.
func (p *SegmentPipeline) BuildFromPairs(ctx context.Context, pairs []SentencePair) ([]Segment, error) {
	ctx = ctxutil.Default(ctx)

	segments := make([]Segment, len(pairs))
	for i, pair := range pairs {
		seg := Segment{
			ID:       i,
			French:   pair.French,
			English:  pair.English,
			KeyVocab: make([]VocabEntry, 0, len(pair.KeyVocab)),
		}
		for _, v := range pair.KeyVocab {
			seg.KeyVocab = append(seg.KeyVocab, VocabEntry{
				ID:      fmt.Sprintf("%d-%d", i, v.Index),
				French:  v.French,
				English: v.English,
			})
		}
		segments[i] = seg
	}

	if err := p.annotate(ctx, segments); err != nil {
		return nil, err
	}

	p.log.Info("built segments", "count", len(segments))
	return segments, nil
}

func (p *SegmentPipeline) annotate(ctx context.Context, segments []Segment) error {
	if p.workers <= 1 {
		for i := range segments {
			if err := p.annotator.Annotate(ctx, &segments[i]); err != nil {
				return err
			}
		}
		return nil
	}

	// Bounded concurrency; each goroutine writes only its own index so output
	// order is preserved, and the first failure cancels the rest.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range segments {
		i := i
		g.Go(func() error {
			return p.annotator.Annotate(gctx, &segments[i])
		})
	}
	return g.Wait()
}
