package oracle

import (
	"context"
	"encoding/base64"
	"io"

	"ai-vocab-coach/config"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"

	openai "github.com/openai/openai-go/v3"
)

// Synthesize requests raw PCM speech for text and hands it back base64
// encoded, per the wire contract. PCM output is 16-bit signed little-endian
// mono at the pipeline sample rate.
func (c *Client) Synthesize(ctx context.Context, text string, voice Voice) (string, error) {
	if _, err := ParseVoice(string(voice)); err != nil {
		return "", apperror.Wrap(apperror.KindAudio, status.AudioUnknownVoice, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(c.ttsModel),
		Input:          sanitize(text),
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		logger.Error(err, "%v: speech synthesis failed", config.ModuleOracle)
		return "", apperror.FromContext(err, apperror.KindOracle, status.OracleTransportFailed)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Wrap(apperror.KindOracle, status.OracleTransportFailed, err)
	}
	if len(raw) == 0 {
		return "", malformed("synthesize: empty generation")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
