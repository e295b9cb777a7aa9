package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/platform/openai"
)

func newSpeech(t *testing.T, ai openai.Client) SpeechService {
	t.Helper()
	svc, err := NewSpeechService(newTestLogger(t), ai)
	if err != nil {
		t.Fatalf("init speech service: %v", err)
	}
	return svc
}

func TestSpeakRawBytes(t *testing.T) {
	ai := &fakeAIClient{speechResp: &openai.SpeechResponse{
		Body:        []byte("mp3-bytes"),
		ContentType: "audio/mpeg",
	}}

	blob, err := newSpeech(t, ai).Speak(context.Background(), "Bonjour.", lesson.LangFrench)
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if !bytes.Equal(blob, []byte("mp3-bytes")) {
		t.Fatalf("audio: want=%q got=%q", "mp3-bytes", blob)
	}
}

func TestSpeakInlineBase64Chunks(t *testing.T) {
	part1 := base64.StdEncoding.EncodeToString([]byte("first"))
	part2 := base64.StdEncoding.EncodeToString([]byte("second"))
	ai := &fakeAIClient{speechResp: &openai.SpeechResponse{
		Body:        []byte(`{"chunks": ["` + part1 + `", "` + part2 + `"]}`),
		ContentType: "application/json",
	}}

	blob, err := newSpeech(t, ai).Speak(context.Background(), "Bonjour.", lesson.LangFrench)
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if !bytes.Equal(blob, []byte("firstsecond")) {
		t.Fatalf("audio: want=%q got=%q", "firstsecond", blob)
	}
}

func TestSpeakSingleBase64AudioField(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte("whole"))
	ai := &fakeAIClient{speechResp: &openai.SpeechResponse{
		Body:        []byte(`{"audio": "` + audio + `"}`),
		ContentType: "application/json; charset=utf-8",
	}}

	blob, err := newSpeech(t, ai).Speak(context.Background(), "Bonjour.", lesson.LangEnglish)
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if !bytes.Equal(blob, []byte("whole")) {
		t.Fatalf("audio: want=%q got=%q", "whole", blob)
	}
}

func TestSpeakStreamedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.mp3")
	if err := os.WriteFile(path, []byte("streamed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ai := &fakeAIClient{speechResp: &openai.SpeechResponse{
		Body:        []byte(`{"file": "` + path + `"}`),
		ContentType: "application/json",
	}}

	blob, err := newSpeech(t, ai).Speak(context.Background(), "Bonjour.", lesson.LangFrench)
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if !bytes.Equal(blob, []byte("streamed")) {
		t.Fatalf("audio: want=%q got=%q", "streamed", blob)
	}
}

func TestSpeakEmptyPayloadFails(t *testing.T) {
	ai := &fakeAIClient{speechResp: &openai.SpeechResponse{
		Body:        []byte(`{}`),
		ContentType: "application/json",
	}}

	_, err := newSpeech(t, ai).Speak(context.Background(), "Bonjour.", lesson.LangFrench)
	var synthErr *errs.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
}

func TestSpeakProviderFailure(t *testing.T) {
	ai := &fakeAIClient{speechErr: errors.New("quota exhausted")}

	_, err := newSpeech(t, ai).Speak(context.Background(), "Bonjour.", lesson.LangFrench)
	var synthErr *errs.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
}

func TestSpeakUnsupportedLanguage(t *testing.T) {
	_, err := newSpeech(t, &fakeAIClient{}).Speak(context.Background(), "Hola.", "es")
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestChunkedBytesPayload(t *testing.T) {
	p := &speechPayload{
		kind:   payloadChunkedBytes,
		chunks: [][]byte{[]byte("ab"), []byte("cd")},
	}
	blob, err := p.bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if !bytes.Equal(blob, []byte("abcd")) {
		t.Fatalf("chunked: want=%q got=%q", "abcd", blob)
	}
}
