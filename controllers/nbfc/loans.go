package nbfc

import (
	"errors"

	"vyaparkendra/helpers"
	"vyaparkendra/models"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
)

func ListSubmittedLoansHandler(loans *services.LoanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := loans.ListSubmitted()
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_LOANS")
		}
		return helpers.JSONSuccess(c, "Submitted loans fetched", result)
	}
}

type UpdateLoanStatusRequest struct {
	Status string `json:"status"`
}

func UpdateLoanStatusHandler(loans *services.LoanService, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdateLoanStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		switch req.Status {
		case models.LoanStatusApproved, models.LoanStatusRejected, models.LoanStatusDisbursed:
		default:
			return helpers.JSONError(c, "INVALID_STATUS")
		}

		loanID := c.Params("id")
		err := loans.UpdateStatus(loanID, req.Status)
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "LOAN_NOT_FOUND")
		case errors.Is(err, services.ErrInvalidState):
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, "INVALID_STATUS_TRANSITION")
		case err != nil:
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "UPDATE_FAILED")
		}

		audit.Record(c.Locals("userID").(string), c.Locals("role").(string), "updated loan "+loanID+" to "+req.Status, c.IP())
		return helpers.JSONSuccess(c, "Loan "+req.Status, nil)
	}
}
