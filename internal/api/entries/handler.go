package entries

import (
	"errors"
	"fmt"
	"strings"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/core/notebook"
	"ai-vocab-coach/internal/core/resolver"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// Handler serves term resolution and the notebook's save/unsave/list surface.
type Handler struct {
	resolver *resolver.Resolver
	store    notebook.Store
}

func NewHandler(r *resolver.Resolver, store notebook.Store) *Handler {
	return &Handler{resolver: r, store: store}
}

type resolveRequest struct {
	Term       string `json:"term"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

func (h *Handler) HandleResolve(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	var req resolveRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleResolver, c, status.InvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Term) == "" || req.SourceLang == "" || req.TargetLang == "" {
		return apperror.BadRequest(config.ModuleResolver, c, status.MissingParams, "term, source_lang and target_lang are required")
	}

	entry, err := h.resolver.Resolve(c.Context(), req.Term, req.SourceLang, req.TargetLang)
	if err != nil {
		return apperror.FromFailure(config.ModuleResolver, c, err)
	}

	return apperror.Success(config.ModuleResolver, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "term resolved",
		TrackingID: trackingID,
		Data:       entry,
	})
}

func (h *Handler) HandleSave(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	var entry notebook.DictEntry
	if err := c.Bind().Body(&entry); err != nil {
		return apperror.BadRequest(config.ModuleNotebook, c, status.InvalidRequestBody, "invalid request body")
	}
	if entry.ID == "" || entry.SourceTerm == "" || entry.SourceLang == "" || entry.TargetLang == "" {
		return apperror.BadRequest(config.ModuleNotebook, c, status.MissingParams, "entry id, source_term and language pair are required")
	}

	if err := h.store.Save(c.Context(), entry); err != nil {
		if errors.Is(err, notebook.ErrDuplicate) {
			return apperror.BadRequest(config.ModuleNotebook, c, status.NotebookDuplicateEntry, err.Error())
		}
		errorCode := fmt.Sprintf("AI-%d", status.NotebookWriteFailed)
		return apperror.WriteError(config.ModuleNotebook, c, fiber.StatusInternalServerError, errorCode, "", err.Error())
	}
	return apperror.Success(config.ModuleNotebook, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "entry saved",
		TrackingID: trackingID,
		Data:       entry,
	})
}

func (h *Handler) HandleUnsave(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	id := c.Params("id")
	if err := h.store.Unsave(c.Context(), id); err != nil {
		return apperror.BadRequest(config.ModuleNotebook, c, status.NotebookUnknownEntry, err.Error())
	}
	return apperror.Success(config.ModuleNotebook, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "entry removed",
		TrackingID: trackingID,
	})
}

func (h *Handler) HandleList(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	list, err := h.store.List(c.Context())
	if err != nil {
		return apperror.InternalError(config.ModuleNotebook, c, err)
	}
	return apperror.Success(config.ModuleNotebook, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "notebook",
		TrackingID: trackingID,
		Data:       list,
	})
}

type backfillRequest struct {
	Term string `json:"term"`
}

// HandleBackfillImage attaches a mnemonic image to an entry saved without one.
func (h *Handler) HandleBackfillImage(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	id := c.Params("id")
	var req backfillRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleResolver, c, status.InvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Term) == "" {
		return apperror.BadRequest(config.ModuleResolver, c, status.MissingParams, "term is required")
	}

	ref, err := h.resolver.BackfillImage(c.Context(), id, req.Term)
	if err != nil {
		return apperror.FromFailure(config.ModuleResolver, c, err)
	}
	return apperror.Success(config.ModuleResolver, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "image attached",
		TrackingID: trackingID,
		Data:       fiber.Map{"image_ref": ref},
	})
}
