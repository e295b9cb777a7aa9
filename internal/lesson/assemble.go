package lesson

import (
	"bytes"
	"fmt"

	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
)

// Variant names a deterministic concatenation recipe over a segment list.
type Variant string

const (
	VariantFrenchOnly    Variant = "french-only"
	VariantFrenchEnglish Variant = "french-english"
	VariantFrenchVocab   Variant = "french-key-vocab"
)

// ParseVariant validates a variant string before any processing happens.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantFrenchOnly, VariantFrenchEnglish, VariantFrenchVocab:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unsupported variant %q", errs.ErrInvalidArgument, s)
	}
}

// Assemble concatenates segment audio per the variant recipe, in list order.
// Absent audio is skipped silently; a zero-length result is an error.
func Assemble(segments []Segment, variant Variant) ([]byte, error) {
	if _, err := ParseVariant(string(variant)); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	for _, seg := range segments {
		switch variant {
		case VariantFrenchOnly:
			out.Write(seg.AudioFr)
		case VariantFrenchEnglish:
			// French, English, then French again for reinforcement.
			out.Write(seg.AudioFr)
			out.Write(seg.AudioEn)
			out.Write(seg.AudioFr)
		case VariantFrenchVocab:
			out.Write(seg.AudioFr)
			for _, v := range seg.KeyVocab {
				out.Write(v.AudioFr)
				out.Write(v.AudioEn)
			}
			out.Write(seg.AudioFr)
		}
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: no audio to assemble for variant %q", errs.ErrEmptyResult, variant)
	}
	return out.Bytes(), nil
}
