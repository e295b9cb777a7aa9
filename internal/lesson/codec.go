package lesson

import (
	"encoding/base64"
	"fmt"
)

// EncodeAudio renders an audio blob as standard base64 for transport.
func EncodeAudio(blob []byte) string {
	return base64.StdEncoding.EncodeToString(blob)
}

// DecodeAudio decodes a base64 audio payload back into bytes.
func DecodeAudio(encoded string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return blob, nil
}
