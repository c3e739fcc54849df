package healthcheck

import "github.com/gofiber/fiber/v3"

// HandleHealth reports process liveness.
func HandleHealth(c fiber.Ctx) error {
	return c.SendString("ok")
}
