package mitra

import (
	"errors"

	"vyaparkendra/helpers"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func GetWalletHandler(wallets *services.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		balance, err := wallets.Balance(c.Context(), c.Locals("userID").(string))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_BALANCE")
		}
		return helpers.JSONSuccess(c, "Wallet fetched", fiber.Map{
			"balance": balance,
		})
	}
}

type RechargeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func RechargeHandler(wallets *services.WalletService, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RechargeRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}

		mitraID := c.Locals("userID").(string)
		newBalance, err := wallets.Recharge(c.Context(), mitraID, req.Amount)
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return helpers.JSONError(c, "AMOUNT_MUST_BE_POSITIVE")
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
		case err != nil:
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "RECHARGE_FAILED")
		}

		audit.Record(mitraID, c.Locals("role").(string), "wallet recharge "+req.Amount.String(), c.IP())
		return helpers.JSONSuccess(c, "Recharge successful", fiber.Map{
			"balance": newBalance,
		})
	}
}
