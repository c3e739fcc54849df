package audio

import (
	"context"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"
)

// Pipeline synthesizes speech for arbitrary text and schedules it on the
// output device. Samples are ephemeral and never cached. There is no
// queuing: concurrent requests play concurrently; one-at-a-time gating, if
// wanted, belongs to the caller.
type Pipeline struct {
	oracle oracle.Oracle
	device Device
}

func NewPipeline(o oracle.Oracle, d Device) *Pipeline {
	return &Pipeline{oracle: o, device: d}
}

// SynthesizeAndPlay requests speech for text, decodes it and starts
// playback. Every failure along the way (request, decode, device) comes back
// as the audio kind so callers can degrade silently instead of interrupting
// the learning flow.
func (p *Pipeline) SynthesizeAndPlay(ctx context.Context, text string, voice oracle.Voice) error {
	b64, err := p.oracle.Synthesize(ctx, text, voice)
	if err != nil {
		logger.Error(err, "%v: synthesis failed", config.ModuleAudio)
		return apperror.Wrap(apperror.KindAudio, status.AudioSynthesisFailed, err)
	}

	samples, err := DecodePCM16(b64)
	if err != nil {
		logger.Error(err, "%v: decode failed", config.ModuleAudio)
		return apperror.Wrap(apperror.KindAudio, status.AudioDecodeFailed, err)
	}

	if err := p.device.Play(samples); err != nil {
		logger.Error(err, "%v: playback failed", config.ModuleAudio)
		return apperror.Wrap(apperror.KindAudio, status.AudioDeviceFailed, err)
	}
	return nil
}
