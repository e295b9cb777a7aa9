package lesson

import (
	"bytes"
	"errors"
	"testing"

	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
)

func TestAssembleFrenchEnglishRepeatsFrench(t *testing.T) {
	segments := []Segment{{
		ID:      0,
		French:  "Bonjour.",
		English: "Hello.",
		AudioFr: []byte("A"),
		AudioEn: []byte("B"),
	}}

	blob, err := Assemble(segments, VariantFrenchEnglish)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !bytes.Equal(blob, []byte("ABA")) {
		t.Fatalf("recipe: want=%q got=%q", "ABA", blob)
	}
}

func TestAssembleFrenchOnly(t *testing.T) {
	segments := []Segment{
		{AudioFr: []byte("one"), AudioEn: []byte("x")},
		{AudioFr: []byte("two"), AudioEn: []byte("y")},
	}

	blob, err := Assemble(segments, VariantFrenchOnly)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !bytes.Equal(blob, []byte("onetwo")) {
		t.Fatalf("recipe: want=%q got=%q", "onetwo", blob)
	}
}

func TestAssembleFrenchKeyVocab(t *testing.T) {
	segments := []Segment{{
		AudioFr: []byte("S"),
		KeyVocab: []VocabEntry{
			{AudioFr: []byte("v1f"), AudioEn: []byte("v1e")},
			{AudioFr: []byte("v2f"), AudioEn: []byte("v2e")},
		},
	}}

	blob, err := Assemble(segments, VariantFrenchVocab)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	want := "Sv1fv1ev2fv2eS"
	if !bytes.Equal(blob, []byte(want)) {
		t.Fatalf("recipe: want=%q got=%q", want, blob)
	}
}

func TestAssembleSkipsAbsentAudio(t *testing.T) {
	segments := []Segment{
		{AudioFr: nil},
		{AudioFr: []byte("only")},
	}

	blob, err := Assemble(segments, VariantFrenchOnly)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !bytes.Equal(blob, []byte("only")) {
		t.Fatalf("want=%q got=%q", "only", blob)
	}
}

func TestAssembleEmptyInputFails(t *testing.T) {
	_, err := Assemble(nil, VariantFrenchOnly)
	if !errors.Is(err, errs.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestAssembleAllAudioAbsentFails(t *testing.T) {
	_, err := Assemble([]Segment{{French: "Bonjour."}}, VariantFrenchOnly)
	if !errors.Is(err, errs.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestAssembleUnknownVariantFails(t *testing.T) {
	_, err := Assemble([]Segment{{AudioFr: []byte("A")}}, Variant("not-a-variant"))
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	for _, valid := range []string{"french-only", "french-english", "french-key-vocab"} {
		if _, err := ParseVariant(valid); err != nil {
			t.Fatalf("ParseVariant(%q): %v", valid, err)
		}
	}
	if _, err := ParseVariant("spanish-only"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAudioCodecRoundTrip(t *testing.T) {
	blob := []byte{0x00, 0xFF, 0x10, 0x42}
	decoded, err := DecodeAudio(EncodeAudio(blob))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, blob) {
		t.Fatalf("round trip: want=%v got=%v", blob, decoded)
	}

	if _, err := DecodeAudio("not base64!!"); err == nil {
		t.Fatalf("expected decode error for invalid input")
	}
}
