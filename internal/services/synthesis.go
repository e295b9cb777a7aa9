package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/envutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
	"github.com/yungbote/linguaflow-backend/internal/platform/openai"
)

// SpeechService renders text of a given language into audio bytes.
// Implements lesson.Synthesizer.
type SpeechService interface {
	Speak(ctx context.Context, text string, language string) ([]byte, error)
}

type speechService struct {
	log *logger.Logger
	ai  openai.Client

	voiceFr string
	voiceEn string
}

func NewSpeechService(log *logger.Logger, ai openai.Client) (SpeechService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ai == nil {
		return nil, fmt.Errorf("openai client required")
	}
	return &speechService{
		log:     log.With("service", "SpeechService"),
		ai:      ai,
		voiceFr: envutil.Str("TTS_VOICE_FR", "shimmer"),
		voiceEn: envutil.Str("TTS_VOICE_EN", "alloy"),
	}, nil
}

func (s *speechService) Speak(ctx context.Context, text string, language string) ([]byte, error) {
	ctx = ctxutil.Default(ctx)

	voice := ""
	switch language {
	case lesson.LangFrench:
		voice = s.voiceFr
	case lesson.LangEnglish:
		voice = s.voiceEn
	default:
		return nil, fmt.Errorf("%w: unsupported language %q", errs.ErrInvalidArgument, language)
	}

	resp, err := s.ai.Speech(ctx, openai.SpeechRequest{Input: text, Voice: voice})
	if err != nil {
		return nil, &errs.SynthesisError{Text: text, Language: language, Err: err}
	}

	payload := classifySpeechPayload(resp)
	blob, err := payload.bytes()
	if err != nil {
		return nil, &errs.SynthesisError{Text: text, Language: language, Err: err}
	}
	if len(blob) == 0 {
		return nil, &errs.SynthesisError{Text: text, Language: language}
	}
	return blob, nil
}

// Providers deliver audio in one of four container shapes. The shape is
// decided exactly once here, as a tagged union, so the pipeline only ever
// sees bytes.
type speechPayloadKind int

const (
	payloadRawBytes speechPayloadKind = iota
	payloadChunkedBytes
	payloadInlineBase64
	payloadStreamFile
)

type speechPayload struct {
	kind speechPayloadKind

	raw       []byte
	chunks    [][]byte
	b64Chunks []string
	filePath  string
}

// jsonSpeechEnvelope covers the JSON container variants: inline base64
// chunks, a single base64 audio field, or a path to a file the adapter
// streamed the audio into.
type jsonSpeechEnvelope struct {
	Audio  string   `json:"audio"`
	Chunks []string `json:"chunks"`
	Data   []struct {
		B64 string `json:"b64_audio"`
	} `json:"data"`
	File string `json:"file"`
}

func classifySpeechPayload(resp *openai.SpeechResponse) *speechPayload {
	if resp == nil {
		return &speechPayload{kind: payloadRawBytes}
	}

	ct := strings.ToLower(resp.ContentType)
	if !strings.Contains(ct, "json") {
		return &speechPayload{kind: payloadRawBytes, raw: resp.Body}
	}

	var env jsonSpeechEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		// Mislabeled content type; fall back to treating the body as audio.
		return &speechPayload{kind: payloadRawBytes, raw: resp.Body}
	}

	switch {
	case env.File != "":
		return &speechPayload{kind: payloadStreamFile, filePath: env.File}
	case len(env.Chunks) > 0:
		return &speechPayload{kind: payloadInlineBase64, b64Chunks: env.Chunks}
	case len(env.Data) > 0:
		chunks := make([]string, 0, len(env.Data))
		for _, d := range env.Data {
			chunks = append(chunks, d.B64)
		}
		return &speechPayload{kind: payloadInlineBase64, b64Chunks: chunks}
	case env.Audio != "":
		return &speechPayload{kind: payloadInlineBase64, b64Chunks: []string{env.Audio}}
	default:
		return &speechPayload{kind: payloadRawBytes}
	}
}

func (p *speechPayload) bytes() ([]byte, error) {
	switch p.kind {
	case payloadRawBytes:
		return p.raw, nil
	case payloadChunkedBytes:
		var out []byte
		for _, c := range p.chunks {
			out = append(out, c...)
		}
		return out, nil
	case payloadInlineBase64:
		var out []byte
		for _, c := range p.b64Chunks {
			blob, err := base64.StdEncoding.DecodeString(c)
			if err != nil {
				return nil, fmt.Errorf("decode audio chunk: %w", err)
			}
			out = append(out, blob...)
		}
		return out, nil
	case payloadStreamFile:
		blob, err := os.ReadFile(p.filePath)
		if err != nil {
			return nil, fmt.Errorf("read streamed audio: %w", err)
		}
		return blob, nil
	default:
		return nil, fmt.Errorf("unknown speech payload kind %d", p.kind)
	}
}
