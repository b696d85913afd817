package middlewares

import (
	"fmt"
	"os"
	"strings"

	"vyaparkendra/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RequireRoles verifies the bearer token and, when roles are given, that
// the caller holds one of them. The user id, role and region claims are
// stashed in Locals for the handlers.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "MISSING_TOKEN")
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}
		role, _ := claims["role"].(string)
		userID, _ := claims["user_id"].(string)
		region, _ := claims["region"].(string)
		if userID == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if r == role {
					allowed = true
					break
				}
			}
			if !allowed {
				return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "FORBIDDEN")
			}
		}

		c.Locals("userID", userID)
		c.Locals("role", role)
		c.Locals("region", region)
		return c.Next()
	}
}
