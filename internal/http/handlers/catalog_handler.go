package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/storefront"
	"storefront/internal/validate"
)

type CatalogHandler struct {
	Catalog   *catalog.Service
	Pipeline  storefront.Pipeline
	ReelDelay int64 // milliseconds, handed to the page script
}

type navLink struct {
	Type   domain.CatalogType
	Title  string
	Active bool
}

// query reads category, q and page from the request.
func query(c *fiber.Ctx) (storefront.Query, bool) {
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return storefront.Query{}, false
	}
	return storefront.Query{
		Category: category,
		Search:   validate.Q(c.Query("q")),
		Page:     validate.Page(c.Query("page")),
	}, true
}

func (h *CatalogHandler) view(c *fiber.Ctx) (storefront.View, int, error) {
	kind, ok := validate.Catalog(c.Params("type"))
	if !ok {
		return storefront.View{}, fiber.StatusNotFound, nil
	}
	q, ok := query(c)
	if !ok {
		return storefront.View{}, fiber.StatusBadRequest, nil
	}
	products, err := h.Catalog.Load(kind)
	if err != nil {
		return storefront.View{}, fiber.StatusInternalServerError, err
	}
	return h.Pipeline.Build(kind, products, q), fiber.StatusOK, nil
}

// GET /
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	return c.Redirect("/catalog/"+string(domain.AmazonDeals), fiber.StatusFound)
}

// GET /catalog/:type
func (h *CatalogHandler) Page(c *fiber.Ctx) error {
	v, status, err := h.view(c)
	switch {
	case err != nil:
		log.Error(c, "catalog.load.error", err, nil)
		return c.Status(status).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	case status == fiber.StatusNotFound:
		return notFound(c, "Catalog not found")
	case status != fiber.StatusOK:
		return c.Status(status).Render("notfound", fiber.Map{"Message": "Invalid filter"})
	}

	nav := make([]navLink, 0, len(domain.CatalogTypes))
	for _, t := range domain.CatalogTypes {
		nav = append(nav, navLink{Type: t, Title: t.Title(), Active: t == v.Catalog})
	}
	return render(c, "storefront", fiber.Map{
		"View":        v,
		"Nav":         nav,
		"Placeholder": storefront.PlaceholderImage,
		"ReelDelayMs": h.ReelDelay,
	})
}

// GET /api/v1/catalogs/:type
func (h *CatalogHandler) View(c *fiber.Ctx) error {
	v, status, err := h.view(c)
	switch {
	case err != nil:
		log.Error(c, "catalog.load.error", err, nil)
		return jsonError(c, status, "Internal server error")
	case status == fiber.StatusNotFound:
		return jsonError(c, status, "Catalog not found")
	case status != fiber.StatusOK:
		return jsonError(c, status, "Invalid filter")
	}
	return c.JSON(v)
}
