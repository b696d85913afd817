package middlewares

import (
	"os"

	"vyaparkendra/helpers"

	"github.com/gofiber/fiber/v2"
)

// InternalOnly guards service-to-service endpoints with the shared
// X-Service-Token header. An empty configured token closes the endpoint
// entirely; otherwise a missing header would match the missing env var.
func InternalOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := os.Getenv("INTERNAL_SERVICE_TOKEN")
		if token == "" || c.Get("X-Service-Token") != token {
			return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "FORBIDDEN")
		}
		return c.Next()
	}
}
