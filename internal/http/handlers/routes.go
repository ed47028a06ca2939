package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Register mounts every route on app. Rate limits and the other global
// middlewares are installed by the caller.
func Register(app *fiber.App, d *Deps, signInLimit fiber.Handler) {
	requireToken := RequireToken(d.Auth)

	app.Get("/", d.CatalogHandler.Home)
	app.Get("/catalog/:type", d.CatalogHandler.Page)

	auth := app.Group("/auth")
	if signInLimit != nil {
		auth.Post("/google", signInLimit, d.AuthHandler.GoogleSignIn)
	} else {
		auth.Post("/google", d.AuthHandler.GoogleSignIn)
	}
	auth.Get("/verify", requireToken, d.AuthHandler.Verify)

	app.Post("/checkout", requireToken, d.OrderHandler.Place)
	app.Get("/orders", requireToken, d.OrderHandler.History)

	api := app.Group("/api/v1")
	api.Get("/catalogs/:type", d.CatalogHandler.View)
	requireAdmin := RequireAdmin(d.Config)
	api.Post("/catalogs/:type/products", requireToken, requireAdmin, d.AdminHandler.Add)
	api.Patch("/catalogs/:type/products/:id", requireToken, requireAdmin, d.AdminHandler.Update)
	api.Delete("/catalogs/:type/products/:id", requireToken, requireAdmin, d.AdminHandler.Delete)
	api.Post("/catalogs/:type/products/:id/duplicate", requireToken, requireAdmin, d.AdminHandler.Duplicate)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})
}
