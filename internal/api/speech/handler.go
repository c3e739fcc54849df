package speech

import (
	"strings"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/core/audio"
	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// Handler plays synthesized speech for arbitrary text.
type Handler struct {
	pipeline *audio.Pipeline
}

func NewHandler(p *audio.Pipeline) *Handler {
	return &Handler{pipeline: p}
}

type speakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (h *Handler) HandleSpeak(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	var req speakRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleAudio, c, status.InvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperror.BadRequest(config.ModuleAudio, c, status.MissingParams, "text is required")
	}
	if req.Voice == "" {
		req.Voice = config.Cfg.Audio.DefaultVoice
	}
	voice, err := oracle.ParseVoice(req.Voice)
	if err != nil {
		return apperror.BadRequest(config.ModuleAudio, c, status.AudioUnknownVoice, err.Error())
	}

	if err := h.pipeline.SynthesizeAndPlay(c.Context(), req.Text, voice); err != nil {
		return apperror.FromFailure(config.ModuleAudio, c, err)
	}
	return apperror.Success(config.ModuleAudio, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "playback started",
		TrackingID: trackingID,
	})
}
