package handlers

import (
	applog "medimart/internal/log"
	"medimart/internal/repos"
	"medimart/internal/search"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
	Users  *repos.UserRepo
}

// Summary serves GET /api/admin/summary: the counts and per-month sales
// buckets behind the dashboard chart.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	ordersCount, ordersPrice, err := h.Orders.Totals()
	if err != nil {
		return fail(c, "admin.summary.error", err)
	}
	productsCount, err := h.Prods.Count(search.Filter{})
	if err != nil {
		return fail(c, "admin.summary.error", err)
	}
	usersCount, err := h.Users.Count()
	if err != nil {
		return fail(c, "admin.summary.error", err)
	}
	sales, err := h.Orders.SalesByMonth()
	if err != nil {
		return fail(c, "admin.summary.error", err)
	}

	return c.JSON(fiber.Map{
		"ordersCount":   ordersCount,
		"ordersPrice":   ordersPrice,
		"productsCount": productsCount,
		"usersCount":    usersCount,
		"salesData":     sales,
	})
}

func (h *AdminHandler) OrdersList(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		return fail(c, "admin.orders.list.error", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

var orderStatuses = map[string]bool{
	"PLACED": true, "SHIPPED": true, "DELIVERED": true, "CANCELED": true,
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || id == "" || !orderStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing id or bad status"})
	}
	if err := h.Orders.UpdateStatus(id, req.Status); err != nil {
		return fail(c, "admin.orders.update.error", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}
