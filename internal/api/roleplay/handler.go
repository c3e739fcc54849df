package roleplay

import (
	"errors"
	"fmt"
	"strings"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/core/scenario"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// Handler exposes the single logical learner session over HTTP.
type Handler struct {
	session *scenario.Session
}

func NewHandler(s *scenario.Session) *Handler {
	return &Handler{session: s}
}

// gating and state errors are caller mistakes, not upstream failures
func (h *Handler) writeSessionError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scenario.ErrTurnPending):
		return apperror.WriteError(config.ModuleScenario, c, fiber.StatusConflict,
			fmt.Sprintf("AI-%d", status.ScenarioTurnPending), "", "a turn request is already in flight")
	case errors.Is(err, scenario.ErrRefreshPending):
		return apperror.WriteError(config.ModuleScenario, c, fiber.StatusConflict,
			fmt.Sprintf("AI-%d", status.ScenarioTurnPending), "", "a scenario refresh is already in flight")
	case errors.Is(err, scenario.ErrInvalidState):
		return apperror.BadRequest(config.ModuleScenario, c, status.ScenarioInvalidState, "operation not valid in current state")
	case errors.Is(err, scenario.ErrUnknownScenario):
		return apperror.BadRequest(config.ModuleScenario, c, status.ScenarioInvalidState, "unknown scenario id")
	default:
		return apperror.FromFailure(config.ModuleScenario, c, err)
	}
}

func (h *Handler) HandleRefresh(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	batch, err := h.session.RefreshScenarios(c.Context())
	if err != nil {
		return h.writeSessionError(c, err)
	}
	return apperror.Success(config.ModuleScenario, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "scenarios generated",
		TrackingID: trackingID,
		Data:       batch,
	})
}

type selectRequest struct {
	ID string `json:"id"`
}

func (h *Handler) HandleSelect(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	var req selectRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleScenario, c, status.InvalidRequestBody, "invalid request body")
	}
	if err := h.session.Select(req.ID); err != nil {
		return h.writeSessionError(c, err)
	}
	return apperror.Success(config.ModuleScenario, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "scenario selected",
		TrackingID: trackingID,
		Data:       h.session.History(),
	})
}

type turnRequest struct {
	Text string `json:"text"`
}

func (h *Handler) HandleTurn(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	var req turnRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleScenario, c, status.InvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperror.BadRequest(config.ModuleScenario, c, status.MissingParams, "text is required")
	}

	reply, err := h.session.Submit(c.Context(), req.Text)
	if err != nil {
		return h.writeSessionError(c, err)
	}
	return apperror.Success(config.ModuleScenario, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "counterpart replied",
		TrackingID: trackingID,
		Data: fiber.Map{
			"reply":   reply,
			"history": h.session.History(),
		},
	})
}

func (h *Handler) HandleEnd(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	report, err := h.session.End(c.Context())
	if err != nil {
		return h.writeSessionError(c, err)
	}
	return apperror.Success(config.ModuleScenario, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "session graded",
		TrackingID: trackingID,
		Data:       report,
	})
}

func (h *Handler) HandleLeave(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	h.session.Leave()
	return apperror.Success(config.ModuleScenario, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "returned to menu",
		TrackingID: trackingID,
	})
}

func (h *Handler) HandleState(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	return apperror.Success(config.ModuleScenario, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "session state",
		TrackingID: trackingID,
		Data: fiber.Map{
			"state":   h.session.State(),
			"menu":    h.session.Menu(),
			"history": h.session.History(),
			"report":  h.session.Report(),
		},
	})
}
