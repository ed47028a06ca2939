package handlers

import (
	"errors"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the catalog mutations. Routes sit behind RequireToken
// and RequireAdmin.
type AdminHandler struct {
	Catalog *catalog.Service
}

// params reads :type and, when needID, :id. On failure the 404 has already
// been written and ok is false.
func (h *AdminHandler) params(c *fiber.Ctx, needID bool) (kind domain.CatalogType, id string, ok bool) {
	kind, ok = validate.Catalog(c.Params("type"))
	if !ok {
		_ = jsonError(c, fiber.StatusNotFound, "Catalog not found")
		return "", "", false
	}
	if !needID {
		return kind, "", true
	}
	id, ok = validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		_ = jsonError(c, fiber.StatusNotFound, "Product not found")
		return "", "", false
	}
	return kind, id, true
}

func (h *AdminHandler) fail(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	if errors.Is(err, catalog.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	applog.Error(c, action, err, fields)
	return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// POST /api/v1/catalogs/:type/products
func (h *AdminHandler) Add(c *fiber.Ctx) error {
	kind, _, ok := h.params(c, false)
	if !ok {
		return nil
	}
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid product")
	}
	if msg := validate.Product(&p); msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "product", "reason": msg})
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	added, err := h.Catalog.Add(kind, p)
	if err != nil {
		return h.fail(c, "catalog.product.add.fail", err, nil)
	}
	applog.Audit(c, "catalog.product.add", map[string]any{"product": added.ID, "title": added.Title})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": added})
}

// PATCH /api/v1/catalogs/:type/products/:id
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	kind, id, ok := h.params(c, true)
	if !ok {
		return nil
	}
	var patch domain.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid product")
	}
	if msg := validate.Patch(&patch); msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "product", "reason": msg})
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	updated, err := h.Catalog.Update(kind, id, patch)
	if err != nil {
		return h.fail(c, "catalog.product.update.fail", err, map[string]any{"product": id})
	}
	applog.Audit(c, "catalog.product.update", map[string]any{"product": id})
	return c.JSON(fiber.Map{"success": true, "product": updated})
}

// DELETE /api/v1/catalogs/:type/products/:id
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	kind, id, ok := h.params(c, true)
	if !ok {
		return nil
	}
	if err := h.Catalog.Delete(kind, id); err != nil {
		return h.fail(c, "catalog.product.delete.fail", err, map[string]any{"product": id})
	}
	applog.Audit(c, "catalog.product.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"success": true})
}

// POST /api/v1/catalogs/:type/products/:id/duplicate
func (h *AdminHandler) Duplicate(c *fiber.Ctx) error {
	kind, id, ok := h.params(c, true)
	if !ok {
		return nil
	}
	cp, err := h.Catalog.Duplicate(kind, id)
	if err != nil {
		return h.fail(c, "catalog.product.duplicate.fail", err, map[string]any{"product": id})
	}
	applog.Audit(c, "catalog.product.duplicate", map[string]any{"product": id, "copy": cp.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": cp})
}
