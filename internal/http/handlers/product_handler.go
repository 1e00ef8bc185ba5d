package handlers

import (
	"medimart/internal/domain"
	applog "medimart/internal/log"
	"medimart/internal/services"
	"medimart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview serves POST /api/products/slug/:slug/reviews (logged-in users).
func (h *ProductHandler) AddReview(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if req.Rating < 0 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rating must be between 0 and 5"})
	}

	if err := h.Catalog.AddReview(slug, u.Name, req.Rating, req.Comment); err != nil {
		return fail(c, "product.review.error", err)
	}
	applog.Audit(c, "product.review", map[string]any{"slug": slug, "rating": req.Rating})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// Get serves GET /api/products/:id, the stock-revalidation lookup the
// cart page polls before quantity changes.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "product.get.error", err)
	}
	return c.JSON(p)
}

// BySlug serves GET /api/products/slug/:slug with reviews included.
func (h *ProductHandler) BySlug(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	p, reviews, err := h.Catalog.ProductDetail(slug)
	if err != nil {
		return fail(c, "product.detail.error", err)
	}
	return c.JSON(fiber.Map{"product": p, "reviews": reviews})
}
