package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Checkout *services.CheckoutService
}

type checkoutRequest struct {
	Cart           []services.CartLine `json:"cart"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentDetails map[string]any      `json:"paymentDetails"`
}

// POST /checkout
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	claims := claimsOf(c)
	if claims == nil {
		return jsonError(c, fiber.StatusUnauthorized, "Access token required")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid cart")
	}
	for _, line := range req.Cart {
		if !validate.Qty(line.Quantity) {
			applog.Security(c, "validation.fail", map[string]any{"field": "quantity", "value": line.Quantity})
			return jsonError(c, fiber.StatusBadRequest, "Invalid cart")
		}
	}

	rc, err := h.Checkout.Checkout(c.UserContext(), services.CheckoutRequest{
		UserID:         claims.ID,
		Cart:           req.Cart,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	var declined *services.PaymentDeclinedError
	switch {
	case errors.As(err, &declined):
		applog.Info(c, "checkout.declined", map[string]any{"message": declined.Message})
		return jsonError(c, fiber.StatusBadRequest, declined.Message)
	case errors.Is(err, services.ErrInvalidCart):
		applog.Security(c, "validation.fail", map[string]any{"field": "cart", "reason": err.Error()})
		return jsonError(c, fiber.StatusBadRequest, "Invalid cart")
	case err != nil:
		applog.Error(c, "checkout.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error during checkout")
	}

	applog.Audit(c, "checkout.place", map[string]any{
		"order_id": rc.OrderID, "total": rc.Total, "txn": rc.TransactionID, "items": len(req.Cart),
	})
	return c.JSON(fiber.Map{"success": true, "orderId": rc.OrderID, "message": "Order placed successfully"})
}

// GET /orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	claims := claimsOf(c)
	if claims == nil {
		return jsonError(c, fiber.StatusUnauthorized, "Access token required")
	}
	orders, err := h.Checkout.History(c.UserContext(), claims.ID)
	if err != nil {
		applog.Error(c, "orders.history.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"success": true, "orders": orders})
}
