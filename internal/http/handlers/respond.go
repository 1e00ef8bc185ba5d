package handlers

import (
	"database/sql"
	"errors"

	"medimart/internal/domain"
	applog "medimart/internal/log"

	"github.com/gofiber/fiber/v2"
)

// fail maps a domain error onto the HTTP surface. Validation and stock
// rejections are expected conditions and keep their message; anything
// else is logged and hidden behind a generic body.
func fail(c *fiber.Ctx, action string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, domain.ErrStockInsufficient):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "catalog unavailable, try again"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}
