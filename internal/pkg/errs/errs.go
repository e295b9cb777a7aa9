package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyResult is returned when an assembly produces zero bytes.
	ErrEmptyResult = errors.New("empty result")
)

// UpstreamFetchError wraps a failure of the text-fetch collaborator.
type UpstreamFetchError struct {
	URL string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("upstream fetch %s: %v", e.URL, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// TranslationServiceError is returned when the translation collaborator is
// unreachable or returns a payload that cannot be parsed into sentence pairs.
// RawPayload keeps the offending payload (truncated) for diagnostics; it never
// contains credentials because provider auth travels in headers only.
type TranslationServiceError struct {
	Reason     string
	RawPayload string
	Err        error
}

const maxRawPayload = 2048

func (e *TranslationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation service: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("translation service: %s", e.Reason)
}

func (e *TranslationServiceError) Unwrap() error { return e.Err }

// NewTranslationServiceError truncates payload so oversized provider responses
// do not balloon logs or API error bodies.
func NewTranslationServiceError(reason string, payload string, err error) *TranslationServiceError {
	if len(payload) > maxRawPayload {
		payload = payload[:maxRawPayload] + "...(truncated)"
	}
	return &TranslationServiceError{Reason: reason, RawPayload: payload, Err: err}
}

// SynthesisError is returned when the speech collaborator cannot produce
// decodable audio bytes for a text/language pair.
type SynthesisError struct {
	Text     string
	Language string
	Err      error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech synthesis (%s): %v", e.Language, e.Err)
	}
	return fmt.Sprintf("speech synthesis (%s): empty audio", e.Language)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// StorageError wraps an I/O failure while writing or reading session state.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
