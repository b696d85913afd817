package govt

import (
	"vyaparkendra/helpers"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
)

// ComplianceLogsHandler returns the latest audit trail for users in the
// government caller's own region.
func ComplianceLogsHandler(audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := audit.RecentByRegion(c.Locals("region").(string), 100)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_LOGS")
		}
		return helpers.JSONSuccess(c, "Compliance logs fetched", logs)
	}
}
