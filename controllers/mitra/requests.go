package mitra

import (
	"errors"

	"vyaparkendra/helpers"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
)

type CreateRequestBody struct {
	ServiceID    string `json:"service_id"`
	CitizenName  string `json:"citizen_name"`
	CitizenPhone string `json:"citizen_phone"`
	IDNumber     string `json:"id_number"`
	Notes        string `json:"notes"`
}

func CreateRequestHandler(fulfillment *services.FulfillmentService, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequestBody
		if err := c.BodyParser(&body); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if body.ServiceID == "" || body.CitizenName == "" {
			return helpers.JSONError(c, "SERVICE_ID_AND_CITIZEN_NAME_REQUIRED")
		}

		mitraID := c.Locals("userID").(string)
		req, err := fulfillment.CreateServiceRequest(c.Context(), services.CreateRequestInput{
			MitraID:      mitraID,
			ServiceID:    body.ServiceID,
			CitizenName:  body.CitizenName,
			CitizenPhone: body.CitizenPhone,
			IDNumber:     body.IDNumber,
			Notes:        body.Notes,
		})
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "SERVICE_NOT_FOUND")
		case errors.Is(err, services.ErrInsufficientFunds):
			return helpers.JSONErrorStatus(c, fiber.StatusPaymentRequired, "INSUFFICIENT_WALLET_BALANCE")
		case err != nil:
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "REQUEST_CREATION_FAILED")
		}

		audit.Record(mitraID, c.Locals("role").(string), "created request "+req.ID, c.IP())
		return helpers.JSONSuccess(c, "Service request created", fiber.Map{
			"request_id": req.ID,
			"price":      req.Price,
			"status":     req.Status,
		})
	}
}

func ListRequestsHandler(fulfillment *services.FulfillmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requests, err := fulfillment.RequestsByMitra(c.Locals("userID").(string))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_REQUESTS")
		}
		return helpers.JSONSuccess(c, "Requests fetched", requests)
	}
}

func CompleteRequestHandler(fulfillment *services.FulfillmentService, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Params("id")
		mitraID := c.Locals("userID").(string)

		err := fulfillment.CompleteRequest(c.Context(), requestID, mitraID)
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "REQUEST_NOT_FOUND")
		case errors.Is(err, services.ErrInvalidState):
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, "REQUEST_ALREADY_COMPLETED")
		case err != nil:
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "COMPLETION_FAILED")
		}

		audit.Record(mitraID, c.Locals("role").(string), "completed request "+requestID, c.IP())
		return helpers.JSONSuccess(c, "Request completed", nil)
	}
}
