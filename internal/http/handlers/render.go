package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if uid, ok := c.Locals("user_id").(int64); ok && uid > 0 {
		data["UserID"] = uid
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

// notFound renders the friendly 404 page, falling back to plain text when no
// view engine is configured.
func notFound(c *fiber.Ctx, msg string) error {
	if err := c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg}); err != nil {
		return c.Status(fiber.StatusNotFound).SendString(msg)
	}
	return nil
}

// jsonError is the error body shape of every API endpoint.
func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}
