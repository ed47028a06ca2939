package handlers

import (
	"strings"

	"storefront/internal/config"
	applog "storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or not two parts.
func bearerToken(c *fiber.Ctx) string {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// RequireToken enforces a valid session token: 401 when missing, 403 when
// invalid or expired.
func RequireToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return jsonError(c, fiber.StatusUnauthorized, "Access token required")
		}
		claims, err := auth.Authenticate(raw)
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return jsonError(c, fiber.StatusForbidden, "Invalid token")
		}
		c.Locals("claims", claims)
		c.Locals("user_id", claims.ID)
		return c.Next()
	}
}

// RequireAdmin must run after RequireToken; the token's email has to be on
// the ADMIN_EMAILS allow-list.
func RequireAdmin(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := claimsOf(c)
		if claims == nil || !cfg.IsAdmin(claims.Email) {
			applog.Security(c, "access.denied.admin", nil)
			return jsonError(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

func claimsOf(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals("claims").(*services.Claims)
	return claims
}
