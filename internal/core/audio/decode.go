package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// DecodePCM16 turns base64-encoded PCM16LE mono bytes into normalized
// float32 samples in [-1, 1]. The sample buffer length is byteLength/2; an
// odd byte count means a truncated stream and fails the decode.
func DecodePCM16(b64 string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	return pcm16ToFloat(raw)
}

func pcm16ToFloat(raw []byte) ([]float32, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("truncated pcm16 stream: %d bytes", len(raw))
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples, nil
}
