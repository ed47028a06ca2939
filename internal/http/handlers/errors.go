package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
)

const (
	msgServerError = "Something went wrong. Please try again."
	msgNotFound    = "Page not found"
)

// ErrorHandler is the app-wide fiber error handler. It keeps the status of a
// *fiber.Error, logs the underlying error and shows only a friendly message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c.Status(code), "server.error", err, nil)

	msg := msgServerError
	if code == fiber.StatusNotFound {
		msg = msgNotFound
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
