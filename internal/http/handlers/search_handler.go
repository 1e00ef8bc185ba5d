package handlers

import (
	"strings"

	applog "medimart/internal/log"
	"medimart/internal/search"
	"medimart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Search handles GET /api/search. All parameters are optional; absent or
// "all" dimensions add no constraint.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	params := search.Params{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Price:    c.Query("price"),
		Rating:   c.Query("rating"),
		Sort:     c.Query("sort"),
		Page:     c.Query("page"),
		PageSize: c.Query("pageSize"),
	}

	var (
		res services.SearchResult
		err error
	)
	if frag := strings.TrimSpace(c.Query("composition")); frag != "" {
		res, err = h.Catalog.SearchByComposition(params, frag)
	} else {
		res, err = h.Catalog.Search(params)
	}
	if err != nil {
		return fail(c, "search.error", err)
	}

	applog.Info(c, "search.ok", map[string]any{"count": res.CountProducts, "page": res.Page})
	return c.JSON(res)
}
