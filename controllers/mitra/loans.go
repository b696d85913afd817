package mitra

import (
	"errors"

	"vyaparkendra/helpers"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type LoanRequestBody struct {
	NBFCPartnerID string          `json:"nbfc_partner_id"`
	Applicant     string          `json:"applicant"`
	Phone         string          `json:"phone"`
	GSTIN         string          `json:"gstin"`
	Amount        decimal.Decimal `json:"amount"`
	Purpose       string          `json:"purpose"`
	TenureMonths  int             `json:"tenure_months"`
	Income        decimal.Decimal `json:"income"`
}

func ApplyLoanHandler(loans *services.LoanService, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoanRequestBody
		if err := c.BodyParser(&body); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if body.Applicant == "" || body.NBFCPartnerID == "" {
			return helpers.JSONError(c, "APPLICANT_AND_PARTNER_REQUIRED")
		}

		mitraID := c.Locals("userID").(string)
		loan, err := loans.Apply(c.Context(), services.LoanInput{
			MitraID:       mitraID,
			NBFCPartnerID: body.NBFCPartnerID,
			Applicant:     body.Applicant,
			Phone:         body.Phone,
			GSTIN:         body.GSTIN,
			Amount:        body.Amount,
			Purpose:       body.Purpose,
			TenureMonths:  body.TenureMonths,
			Income:        body.Income,
		})
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return helpers.JSONError(c, "AMOUNT_MUST_BE_POSITIVE")
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "NBFC_PARTNER_NOT_FOUND")
		case err != nil:
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "LOAN_APPLICATION_FAILED")
		}

		audit.Record(mitraID, c.Locals("role").(string), "applied for loan "+loan.ID, c.IP())
		return helpers.JSONSuccess(c, "Loan application submitted", fiber.Map{
			"loan_id":      loan.ID,
			"credit_score": loan.CreditScore,
			"status":       loan.Status,
		})
	}
}

func ListLoansHandler(loans *services.LoanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := loans.ListByMitra(c.Locals("userID").(string))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_LOANS")
		}
		return helpers.JSONSuccess(c, "Loans fetched", result)
	}
}
