package speech

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers the speech route on the provided router.
func RegisterRoutes(r fiber.Router, h *Handler) {
	r.Post("/speech", h.HandleSpeak)
}
