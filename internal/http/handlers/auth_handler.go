package handlers

import (
	"errors"
	"strings"

	"storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type googleSignInRequest struct {
	IDToken string `json:"id_token"`
}

// POST /auth/google
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req googleSignInRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		log.Security(c, "auth.google.fail", map[string]any{"reason": "missing_id_token"})
		return jsonError(c, fiber.StatusUnauthorized, "Authentication failed")
	}

	u, tok, err := h.Auth.GoogleSignIn(c.UserContext(), req.IDToken)
	if err != nil {
		if errors.Is(err, services.ErrAuthFailed) {
			log.Security(c, "auth.google.fail", map[string]any{"reason": err.Error()})
		} else {
			log.Error(c, "auth.google.error", err, nil)
		}
		return jsonError(c, fiber.StatusUnauthorized, "Authentication failed")
	}

	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.google.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"success": true, "user": u, "jwt": tok})
}

// GET /auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	claims := claimsOf(c)
	if claims == nil {
		return jsonError(c, fiber.StatusUnauthorized, "Access token required")
	}
	u, err := h.Auth.CurrentUser(c.UserContext(), claims)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return jsonError(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		log.Error(c, "auth.verify.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}
