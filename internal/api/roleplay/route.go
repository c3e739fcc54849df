package roleplay

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers roleplay session routes on the provided router.
func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/scenarios")

	grp.Get("/state", h.HandleState)
	grp.Post("/refresh", h.HandleRefresh)
	grp.Post("/select", h.HandleSelect)
	grp.Post("/turn", h.HandleTurn)
	grp.Post("/end", h.HandleEnd)
	grp.Post("/leave", h.HandleLeave)
}
