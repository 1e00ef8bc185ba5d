package handlers

import (
	applog "medimart/internal/log"
	"medimart/internal/services"
	"medimart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	Cart *services.CartService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

type cartUpdateReq struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

// Update serves POST /api/cart: set a line to an exact quantity, or add
// one unit when quantity is omitted. Stock is always re-read from the
// catalog; an over-stock request leaves the cart unchanged.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req cartUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	productID, ok := validate.ProductID(req.ProductID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}

	var err error
	if req.Quantity == "" {
		err = h.Cart.Add(sid, productID)
	} else {
		err = h.Cart.SetQuantity(sid, productID, validate.Qty(req.Quantity))
	}
	if err != nil {
		return fail(c, "cart.update.error", err)
	}

	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view.error", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view.error", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req cartUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	productID, ok := validate.ProductID(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		return fail(c, "cart.remove.error", err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view.error", err)
	}
	return c.JSON(cv)
}
