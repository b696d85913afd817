package admin

import (
	"vyaparkendra/helpers"
	"vyaparkendra/models"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AddServiceRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Region         string          `json:"region"`
	Price          decimal.Decimal `json:"price"`
	Commission     decimal.Decimal `json:"commission"`
	Description    string          `json:"description"`
	ProcessingTime string          `json:"processing_time"`
}

func AddServiceHandler(db *gorm.DB, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AddServiceRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Name == "" || req.Category == "" {
			return helpers.JSONError(c, "NAME_AND_CATEGORY_REQUIRED")
		}
		if req.Price.IsNegative() || req.Commission.IsNegative() {
			return helpers.JSONError(c, "PRICE_AND_COMMISSION_MUST_NOT_BE_NEGATIVE")
		}

		svc := models.Service{
			ID:             uuid.New().String(),
			Name:           req.Name,
			Category:       req.Category,
			Region:         req.Region,
			Price:          req.Price,
			Commission:     req.Commission,
			Description:    req.Description,
			ProcessingTime: req.ProcessingTime,
		}
		if err := db.Create(&svc).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_ADD_SERVICE")
		}

		audit.Record(c.Locals("userID").(string), c.Locals("role").(string), "added service "+svc.Name, c.IP())
		return helpers.JSONSuccess(c, "Service added", fiber.Map{"service_id": svc.ID})
	}
}

func ListServicesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var catalog []models.Service
		if err := db.Order("category, name").Find(&catalog).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_SERVICES")
		}
		return helpers.JSONSuccess(c, "Services fetched", catalog)
	}
}

func ApproveMitraHandler(db *gorm.DB, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mitraID := c.Params("id")
		res := db.Model(&models.User{}).
			Where("id = ? AND role = ?", mitraID, models.RoleMitra).
			Update("kyc_status", models.KycApproved)
		if res.Error != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "APPROVAL_FAILED")
		}
		if res.RowsAffected == 0 {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "MITRA_NOT_FOUND")
		}

		audit.Record(c.Locals("userID").(string), c.Locals("role").(string), "approved mitra "+mitraID, c.IP())
		return helpers.JSONSuccess(c, "Mitra approved", nil)
	}
}

type AddNBFCRequest struct {
	Name           string          `json:"name"`
	APIEndpoint    string          `json:"api_endpoint"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func AddNBFCHandler(db *gorm.DB, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AddNBFCRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Name == "" || req.APIEndpoint == "" {
			return helpers.JSONError(c, "NAME_AND_ENDPOINT_REQUIRED")
		}

		partner := models.NBFCPartner{
			ID:             uuid.New().String(),
			Name:           req.Name,
			APIEndpoint:    req.APIEndpoint,
			CommissionRate: req.CommissionRate,
			Connector:      "webhook",
			IsActive:       true,
		}
		if err := db.Create(&partner).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_ADD_PARTNER")
		}

		audit.Record(c.Locals("userID").(string), c.Locals("role").(string), "added NBFC "+partner.Name, c.IP())
		return helpers.JSONSuccess(c, "NBFC partner added", fiber.Map{"nbfc_id": partner.ID})
	}
}

func ListAuditLogsHandler(audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := audit.Recent(100)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_LOGS")
		}
		return helpers.JSONSuccess(c, "Audit logs fetched", logs)
	}
}
