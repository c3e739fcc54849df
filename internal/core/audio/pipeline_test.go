package audio

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/apperror"
)

type stubOracle struct {
	oracle.Oracle

	b64 string
	err error
}

func (s *stubOracle) Synthesize(ctx context.Context, text string, voice oracle.Voice) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.b64, nil
}

type fakeDevice struct {
	mu      sync.Mutex
	played  [][]float32
	playErr error
}

func (d *fakeDevice) Play(samples []float32) error {
	if d.playErr != nil {
		return d.playErr
	}
	d.mu.Lock()
	d.played = append(d.played, samples)
	d.mu.Unlock()
	return nil
}

func TestSynthesizeAndPlay(t *testing.T) {
	raw := []byte{0x00, 0x00, 0xFF, 0x7F}
	o := &stubOracle{b64: base64.StdEncoding.EncodeToString(raw)}
	dev := &fakeDevice{}
	p := NewPipeline(o, dev)

	if err := p.SynthesizeAndPlay(context.Background(), "hola", oracle.VoiceAlloy); err != nil {
		t.Fatalf("playback failed: %v", err)
	}
	if len(dev.played) != 1 {
		t.Fatalf("streams played = %d, want 1", len(dev.played))
	}
	if len(dev.played[0]) != 2 {
		t.Errorf("samples = %d, want 2", len(dev.played[0]))
	}
}

func TestSynthesizeAndPlay_SynthesisFailure(t *testing.T) {
	p := NewPipeline(&stubOracle{err: errors.New("tts down")}, &fakeDevice{})
	err := p.SynthesizeAndPlay(context.Background(), "hola", oracle.VoiceAlloy)
	if !errors.Is(err, apperror.ErrAudioFailure) {
		t.Errorf("error = %v, want audio failure", err)
	}
}

func TestSynthesizeAndPlay_DecodeFailure(t *testing.T) {
	p := NewPipeline(&stubOracle{b64: "%%%not base64%%%"}, &fakeDevice{})
	err := p.SynthesizeAndPlay(context.Background(), "hola", oracle.VoiceAlloy)
	if !errors.Is(err, apperror.ErrAudioFailure) {
		t.Errorf("error = %v, want audio failure", err)
	}
}

func TestSynthesizeAndPlay_DeviceFailure(t *testing.T) {
	raw := []byte{0x00, 0x00}
	o := &stubOracle{b64: base64.StdEncoding.EncodeToString(raw)}
	p := NewPipeline(o, &fakeDevice{playErr: errors.New("no audio hardware")})
	err := p.SynthesizeAndPlay(context.Background(), "hola", oracle.VoiceAlloy)
	if !errors.Is(err, apperror.ErrAudioFailure) {
		t.Errorf("error = %v, want audio failure", err)
	}
}

func TestSynthesizeAndPlay_ConcurrentStreams(t *testing.T) {
	raw := []byte{0x01, 0x00, 0x02, 0x00}
	o := &stubOracle{b64: base64.StdEncoding.EncodeToString(raw)}
	dev := &fakeDevice{}
	p := NewPipeline(o, dev)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.SynthesizeAndPlay(context.Background(), "hola", oracle.VoiceNova); err != nil {
				t.Errorf("playback failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// no queuing: every request starts its own stream
	if len(dev.played) != 4 {
		t.Errorf("streams played = %d, want 4", len(dev.played))
	}
}
