package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Device schedules a float sample buffer on an audio output. Implementations
// must allow concurrent playback: a second call while one stream is playing
// starts a second stream.
type Device interface {
	Play(samples []float32) error
}

// OtoDevice plays through the platform audio output. The underlying context
// is process-wide: it is created lazily on first playback and reused for the
// process lifetime. On platforms without audio capability the construction
// error is memoized and every Play fails with it, without crashing.
type OtoDevice struct {
	sampleRate int

	once sync.Once
	ctx  *oto.Context
	err  error
}

func NewOtoDevice(sampleRate int) *OtoDevice {
	return &OtoDevice{sampleRate: sampleRate}
}

var _ Device = (*OtoDevice)(nil)

func (d *OtoDevice) context() (*oto.Context, error) {
	d.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   d.sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			d.err = err
			return
		}
		<-ready
		d.ctx = ctx
	})
	return d.ctx, d.err
}

func (d *OtoDevice) Play(samples []float32) error {
	ctx, err := d.context()
	if err != nil {
		return err
	}

	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}

	player := ctx.NewPlayer(bytes.NewReader(buf))
	player.Play()
	// keep the player alive until the stream drains, then release it
	go func() {
		for player.IsPlaying() {
			time.Sleep(50 * time.Millisecond)
		}
		_ = player.Close()
	}()
	return nil
}
