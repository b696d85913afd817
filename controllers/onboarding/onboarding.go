package onboarding

import (
	"encoding/json"
	"errors"
	"time"

	"vyaparkendra/helpers"
	"vyaparkendra/models"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type document struct {
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func loadOrCreate(db *gorm.DB, userID string) (*models.OnboardingProfile, error) {
	var profile models.OnboardingProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.OnboardingProfile{
			ID:        uuid.New().String(),
			UserID:    userID,
			Documents: []byte("[]"),
			Status:    models.OnboardingInProgress,
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func StatusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := loadOrCreate(db, c.Locals("userID").(string))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_STATUS")
		}
		return helpers.JSONSuccess(c, "Onboarding status fetched", profile)
	}
}

func CompleteTrainingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := loadOrCreate(db, c.Locals("userID").(string))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_TRAINING")
		}
		if err := db.Model(profile).Update("training_done", true).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_TRAINING")
		}
		return helpers.JSONSuccess(c, "Training marked complete", nil)
	}
}

type UploadRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func UploadHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UploadRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Name == "" || req.Kind == "" {
			return helpers.JSONError(c, "NAME_AND_KIND_REQUIRED")
		}

		profile, err := loadOrCreate(db, c.Locals("userID").(string))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "UPLOAD_FAILED")
		}

		var docs []document
		if len(profile.Documents) > 0 {
			if err := json.Unmarshal(profile.Documents, &docs); err != nil {
				docs = nil
			}
		}
		docs = append(docs, document{Name: req.Name, Kind: req.Kind, UploadedAt: time.Now().UTC()})
		raw, err := json.Marshal(docs)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "UPLOAD_FAILED")
		}
		if err := db.Model(profile).Update("documents", raw).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "UPLOAD_FAILED")
		}
		return helpers.JSONSuccess(c, "Document recorded", fiber.Map{"documents": len(docs)})
	}
}

func FinalSubmitHandler(db *gorm.DB, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(string)
		profile, err := loadOrCreate(db, userID)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "SUBMIT_FAILED")
		}
		if profile.Status == models.OnboardingSubmitted {
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, "ALREADY_SUBMITTED")
		}

		var docs []document
		_ = json.Unmarshal(profile.Documents, &docs)
		if !profile.TrainingDone || len(docs) == 0 {
			return helpers.JSONError(c, "TRAINING_AND_DOCUMENTS_REQUIRED")
		}

		if err := db.Model(profile).Update("status", models.OnboardingSubmitted).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "SUBMIT_FAILED")
		}
		audit.Record(userID, c.Locals("role").(string), "submitted onboarding", c.IP())
		return helpers.JSONSuccess(c, "Onboarding submitted for review", nil)
	}
}
