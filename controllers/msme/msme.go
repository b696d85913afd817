package msme

import (
	"time"

	"vyaparkendra/helpers"
	"vyaparkendra/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListServicesHandler lists the catalog an MSME can order from: nationwide
// entries plus the ones scoped to its own region.
func ListServicesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		region := c.Locals("region").(string)
		var catalog []models.Service
		if err := db.Where("region = ? OR region = ''", region).
			Order("category, name").
			Find(&catalog).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_SERVICES")
		}
		return helpers.JSONSuccess(c, "Services fetched", catalog)
	}
}

// CreditScoreHandler returns the MSME's bureau score. The bureau pull is
// stubbed; a fixed score is returned until the partner API is wired.
func CreditScoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return helpers.JSONSuccess(c, "Credit score fetched", fiber.Map{
			"msme_id":      c.Locals("userID"),
			"credit_score": 720,
			"last_updated": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// OverviewHandler is the admin/investor cross-view of MSME adoption.
func OverviewHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var onboarded int64
		if err := db.Model(&models.User{}).
			Where("role = ?", models.RoleMSME).
			Count(&onboarded).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_OVERVIEW")
		}
		var scored int64
		if err := db.Model(&models.Loan{}).Count(&scored).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_OVERVIEW")
		}
		return helpers.JSONSuccess(c, "MSME overview fetched", fiber.Map{
			"msmeOnboarded":         onboarded,
			"creditScoresGenerated": scored,
		})
	}
}
