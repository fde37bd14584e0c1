package middleware

import (
	"strings"

	"staynest-hostels/internal/config"
	"staynest-hostels/internal/pkg/jwt"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireRole creates authentication middleware for one user surface.
// The token is read from the surface's cookie first, then from the
// Authorization header. A valid token carrying a different role is
// rejected: the surfaces do not share sessions.
func RequireRole(cfg *config.Config, role string) fiber.Handler {
	cookieName := jwt.CookieForRole(role)

	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(cookieName)

		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		if claims.Role != role {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// AdminAuth guards admin routes. The DisableAdminAuth bypass comes in
// through the config (dev mode only, see config.loadAuthConfig); it is
// decided here at construction time, not read from the environment
// inside request handling.
func AdminAuth(cfg *config.Config) fiber.Handler {
	if cfg.Auth.DisableAdminAuth {
		return func(c *fiber.Ctx) error {
			c.Locals("userID", uint(0))
			c.Locals("email", "dev-bypass")
			c.Locals("role", "ADMIN")
			return c.Next()
		}
	}
	return RequireRole(cfg, "ADMIN")
}

// VendorAuth guards vendor back-office routes
func VendorAuth(cfg *config.Config) fiber.Handler {
	return RequireRole(cfg, "VENDOR")
}

// StudentAuth guards student portal routes
func StudentAuth(cfg *config.Config) fiber.Handler {
	return RequireRole(cfg, "STUDENT")
}

// UserID extracts the authenticated user id from locals
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
