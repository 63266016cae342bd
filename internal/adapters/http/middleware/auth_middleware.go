package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"hr-selfservice/internal/config"
	"hr-selfservice/internal/pkg/jwt"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CronSecretHeader carries the shared secret of external schedulers
const CronSecretHeader = "X-Cron-Secret"

// AuthMiddleware requires a valid admin access token
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(jwt.RoleAdmin)
}

// AdminOrCronSecret lets schedulers in with the configured cron secret and
// requires an admin access token from everyone else. A wrong secret falls
// through to the token check.
func AdminOrCronSecret(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := cfg.Reminder.CronSecret
		if provided := c.Get(CronSecretHeader); secret != "" && provided != "" {
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1 {
				return c.Next()
			}
		}

		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}
		if claims.Role != jwt.RoleAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		setClaims(c, claims)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals("adminID", claims.AdminID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)
}
