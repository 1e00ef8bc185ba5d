package handlers

import (
	applog "medimart/internal/log"
	"medimart/internal/repos"
	"medimart/internal/services"
	"medimart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

type placeOrderReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Place serves POST /api/orders: checkout of the session cart.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req placeOrderReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid name"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid email"})
	}

	orderID, err := h.Order.Place(sid, services.Contact{Name: name, Email: email})
	if err != nil {
		return fail(c, "order.place.error", err)
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": orderID})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders, err := h.Repo.ListBySession(sid)
	if err != nil {
		return fail(c, "order.history.error", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	id := c.Params("id")
	o, items, err := h.Repo.Get(id)
	if err != nil {
		return fail(c, "order.view.error", err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}
