package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"vyaparkendra/helpers"
	"vyaparkendra/models"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validRoles = map[string]bool{
	models.RoleAdmin:      true,
	models.RoleMitra:      true,
	models.RoleMSME:       true,
	models.RoleFranchise:  true,
	models.RoleCA:         true,
	models.RoleCompliance: true,
	models.RoleInvestor:   true,
	models.RoleNBFC:       true,
	models.RoleGovt:       true,
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Region   string `json:"region"`
}

func RegisterHandler(db *gorm.DB, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
			return helpers.JSONError(c, "NAME_EMAIL_AND_PASSWORD_REQUIRED")
		}
		if !validRoles[req.Role] {
			return helpers.JSONError(c, "INVALID_ROLE")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "REGISTRATION_FAILED")
		}

		user := models.User{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Email:     req.Email,
			Password:  string(hashed),
			Role:      req.Role,
			Region:    strings.TrimSpace(req.Region),
			KycStatus: models.KycPending,
		}
		if err := db.Create(&user).Error; err != nil {
			return helpers.JSONError(c, "EMAIL_ALREADY_REGISTERED")
		}

		audit.Record(user.ID, user.Role, "user registered", c.IP())
		return helpers.JSONSuccess(c, "Registration successful", fiber.Map{
			"user_id": user.ID,
		})
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func LoginHandler(db *gorm.DB, audit *services.AuditTrail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONError(c, "INVALID_CREDENTIALS")
		} else if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "LOGIN_FAILED")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			return helpers.JSONError(c, "INVALID_CREDENTIALS")
		}

		claims := jwt.MapClaims{
			"user_id": user.ID,
			"role":    user.Role,
			"region":  user.Region,
			"name":    user.Name,
			"exp":     time.Now().Add(12 * time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "LOGIN_FAILED")
		}

		audit.Record(user.ID, user.Role, "user login", c.IP())
		return helpers.JSONSuccess(c, "Login successful", fiber.Map{
			"access_token": token,
			"role":         user.Role,
			"region":       user.Region,
			"name":         user.Name,
		})
	}
}
