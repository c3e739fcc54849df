package apperror

import (
	"errors"
	"fmt"

	"ai-vocab-coach/config"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
	Kind      string `json:"kind,omitempty"`
}

type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, kind string, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_kind":    kind,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
		Kind:      kind,
	})
}

// Shorthands for common error responses
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	errorCode := fmt.Sprintf("AI-%d", code)
	return WriteError(module, c, fiber.StatusBadRequest, errorCode, "", message)
}

// InternalError writes a structured warning and returns a standardized JSON error
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	errorCode := fmt.Sprintf("AI-%d", status.ErrorCodeInternal)
	return WriteError(module, c, fiber.StatusInternalServerError, errorCode, "", err.Error())
}

// FromFailure maps a classified Failure onto an HTTP response. Unclassified
// errors fall through to a plain 500.
func FromFailure(module config.Module, c fiber.Ctx, err error) error {
	var f *Failure
	if !errors.As(err, &f) {
		return InternalError(module, c, err)
	}
	httpStatus := fiber.StatusBadGateway
	switch f.Kind {
	case KindTimeout:
		httpStatus = fiber.StatusGatewayTimeout
	case KindAudio, KindImage:
		// degraded features, not caller mistakes
		httpStatus = fiber.StatusServiceUnavailable
	}
	errorCode := fmt.Sprintf("AI-%d", f.Code)
	return WriteError(module, c, httpStatus, errorCode, string(f.Kind), f.Error())
}

// Success writes a standardized JSON success response
func Success(module config.Module, c fiber.Ctx, response FiberSuccessMessage) error {
	return c.Status(fiber.StatusOK).JSON(response)
}
