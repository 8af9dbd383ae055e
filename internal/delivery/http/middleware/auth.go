package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
)

// ManagerIDKey is the locals key the manager's ID is stored under after
// successful authentication.
const ManagerIDKey = "manager_id"

// Auth verifies the Bearer token on manager routes and stores the manager ID
// in locals. Tokens are HS256 with a "manager_id" claim.
func Auth(cfg config.AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		managerID, ok := claims[ManagerIDKey].(string)
		if !ok || managerID == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(ManagerIDKey, managerID)
		return c.Next()
	}
}

// GenerateToken issues a manager token. Used by provisioning tooling and
// tests.
func GenerateToken(secret, managerID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		ManagerIDKey: managerID,
		"exp":        time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
