package dashboard

import (
	"vyaparkendra/helpers"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
)

// Handlers wires the per-role dashboard endpoints to the aggregator.
type Handlers struct {
	Dashboards  *services.DashboardService
	Wallets     *services.WalletService
	Fulfillment *services.FulfillmentService
	Audit       *services.AuditTrail
}

func (h *Handlers) Admin(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Admin(c.Context())
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}

func (h *Handlers) Franchise(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Franchise(c.Context(), c.Locals("region").(string))
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}

func (h *Handlers) Investor(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Investor(c.Context())
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}

func (h *Handlers) Mitra(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Mitra(c.Context(), h.Wallets, h.Fulfillment, c.Locals("userID").(string))
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}

func (h *Handlers) CA(c *fiber.Ctx) error {
	stats, err := h.Dashboards.CA(c.Context())
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}

func (h *Handlers) Compliance(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Compliance(c.Context(), h.Audit)
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}

func (h *Handlers) Govt(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Govt(c.Context(), c.Locals("region").(string))
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DASHBOARD_FAILED")
	}
	return c.JSON(stats)
}
