package entries

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers resolver and notebook routes on the provided router.
func RegisterRoutes(r fiber.Router, h *Handler) {
	r.Post("/entries/resolve", h.HandleResolve)

	grp := r.Group("/notebook")
	grp.Get("/", h.HandleList)
	grp.Post("/", h.HandleSave)
	grp.Delete("/:id", h.HandleUnsave)
	grp.Post("/:id/image", h.HandleBackfillImage)
}
