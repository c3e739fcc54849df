package audio

import (
	"encoding/base64"
	"math"
	"testing"
)

func TestDecodePCM16_KnownValues(t *testing.T) {
	// int16 values 0, 32767, -32768
	raw := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}
	samples, err := DecodePCM16(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := []float64{0.0, 32767.0 / 32768.0, -1.0}
	if len(samples) != len(want) {
		t.Fatalf("sample count = %d, want %d", len(samples), len(want))
	}
	const tolerance = 1e-6
	for i, w := range want {
		if math.Abs(float64(samples[i])-w) > tolerance {
			t.Errorf("sample %d = %v, want %v", i, samples[i], w)
		}
	}
}

func TestDecodePCM16_LengthIsHalfByteCount(t *testing.T) {
	raw := make([]byte, 480)
	samples, err := DecodePCM16(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(samples) != 240 {
		t.Errorf("sample count = %d, want 240", len(samples))
	}
}

func TestDecodePCM16_RangeBounds(t *testing.T) {
	// every extreme int16 must land inside [-1, 1]
	raw := []byte{0xFF, 0x7F, 0x00, 0x80, 0x01, 0x80, 0xFE, 0x7F}
	samples, err := DecodePCM16(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for i, s := range samples {
		if s < -1 || s > 1 {
			t.Errorf("sample %d = %v, out of [-1, 1]", i, s)
		}
	}
}

func TestDecodePCM16_OddByteCount(t *testing.T) {
	if _, err := DecodePCM16(base64.StdEncoding.EncodeToString([]byte{0x00, 0x01, 0x02})); err == nil {
		t.Fatal("expected error for truncated stream")
	}
}

func TestDecodePCM16_BadBase64(t *testing.T) {
	if _, err := DecodePCM16("not-base64!!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}
