package system

import (
	"vyaparkendra/helpers"
	"vyaparkendra/models"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "VYAPARKENDRA",
			"status":  "Active",
		})
	}
}

// InternalMetricsHandler serves platform counters to sibling services.
// Guarded by the internal service-token middleware.
func InternalMetricsHandler(db *gorm.DB, ledger *services.LedgerStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var mitras int64
		if err := db.Model(&models.User{}).
			Where("role = ?", models.RoleMitra).
			Count(&mitras).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "METRICS_FAILED")
		}
		revenue, err := ledger.Sum(services.LedgerFilter{
			Types:         []string{models.EntryServiceDebit},
			CreditAccount: models.AccountPlatformRevenue,
		})
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "METRICS_FAILED")
		}
		return c.JSON(fiber.Map{
			"mitrasOnboarded": mitras,
			"totalRevenue":    revenue,
		})
	}
}
