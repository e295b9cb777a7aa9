package lesson

import "context"

// Language codes supported by the pipeline.
const (
	LangFrench  = "fr"
	LangEnglish = "en"
)

// VocabEntry is a glossed term within a segment, with its own bilingual audio.
// ID is "{segmentId}-{vocabIndex}" where vocabIndex is the entry's position in
// the provider's raw gloss list, so ids may skip numbers when earlier entries
// were dropped for emptiness.
type VocabEntry struct {
	ID      string `json:"id"`
	French  string `json:"french"`
	English string `json:"english"`
	AudioFr []byte `json:"audioFr,omitempty"`
	AudioEn []byte `json:"audioEn,omitempty"`
}

// Segment is one sentence-level translation unit with attached narration audio.
type Segment struct {
	ID       int          `json:"id"`
	French   string       `json:"french"`
	English  string       `json:"english"`
	AudioFr  []byte       `json:"audioFr,omitempty"`
	AudioEn  []byte       `json:"audioEn,omitempty"`
	KeyVocab []VocabEntry `json:"keyVocab"`
}

// VocabPair is a surviving gloss with its pre-filter position retained for
// id assignment.
type VocabPair struct {
	Index   int
	French  string
	English string
}

// SentencePair is one validated sentence unit produced by the segmenter,
// before audio annotation.
type SentencePair struct {
	French   string
	English  string
	KeyVocab []VocabPair
}

// RawSentence is the translation provider's per-sentence output, unfiltered.
type RawSentence struct {
	French   string
	English  string
	KeyVocab []RawVocab
}

type RawVocab struct {
	French  string
	English string
}

// TranslationResult is the full provider output for one text.
type TranslationResult struct {
	Sentences []RawSentence
}

// Translator splits and translates French text into sentence pairs with
// optional vocabulary glosses.
type Translator interface {
	Translate(ctx context.Context, text string) (*TranslationResult, error)
}

// Synthesizer renders a string of a given language into an audio byte stream.
type Synthesizer interface {
	Speak(ctx context.Context, text string, language string) ([]byte, error)
}
