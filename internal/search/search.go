// Package search turns raw storefront query parameters into a catalog
// query plan: a SQL filter conjunction, a sort order and a page window.
// It performs no I/O; the repos layer executes plans against the catalog.
package search

import (
	"strconv"
	"strings"

	"medimart/internal/domain"
)

// DefaultPageSize matches the storefront grid.
const DefaultPageSize = 2

// Any is the sentinel meaning "no constraint" for a filter dimension.
const Any = "all"

// Params carries the raw, optional query parameters as received from the
// presentation layer. Empty string means the dimension is absent.
type Params struct {
	Query    string
	Category string
	Brand    string
	Price    string // "min-max", inclusive bounds
	Rating   string // minimum rating, inclusive
	Sort     string
	Page     string
	PageSize string
}

// Filter holds the normalized filter dimensions. A zero-value field
// contributes no constraint; every active dimension is ANDed in.
type Filter struct {
	Query     string // case-insensitive substring on name
	Category  string
	Brand     string
	MinPrice  float64
	MaxPrice  float64
	HasPrice  bool
	MinRating int
	HasRating bool
}

type Sort int

const (
	SortDefault Sort = iota // recency fallback: id descending
	SortFeatured
	SortLowestPrice
	SortHighestPrice
	SortTopRated
	SortNewest
)

// Plan is a fully normalized search request, ready to execute.
type Plan struct {
	Filter   Filter
	Sort     Sort
	Page     int
	PageSize int
}

// Parse normalizes raw parameters into a Plan. Malformed price or rating
// tokens yield a domain.ValidationError before any catalog access; absent
// dimensions and the "all" sentinel contribute no constraint.
func Parse(p Params) (Plan, error) {
	plan := Plan{
		Sort:     parseSort(p.Sort),
		Page:     parsePositive(p.Page, 1),
		PageSize: parsePositive(p.PageSize, DefaultPageSize),
	}

	if q := strings.TrimSpace(p.Query); q != "" && q != Any {
		plan.Filter.Query = q
	}
	if c := strings.TrimSpace(p.Category); c != "" && c != Any {
		plan.Filter.Category = c
	}
	if b := strings.TrimSpace(p.Brand); b != "" && b != Any {
		plan.Filter.Brand = b
	}

	if r := strings.TrimSpace(p.Rating); r != "" && r != Any {
		n, err := strconv.Atoi(r)
		if err != nil {
			return Plan{}, domain.Invalid("rating", "must be a whole number")
		}
		if n < 0 || n > 5 {
			return Plan{}, domain.Invalid("rating", "must be between 0 and 5")
		}
		plan.Filter.MinRating = n
		plan.Filter.HasRating = true
	}

	if pr := strings.TrimSpace(p.Price); pr != "" && pr != Any {
		lo, hi, err := parsePriceRange(pr)
		if err != nil {
			return Plan{}, err
		}
		plan.Filter.MinPrice = lo
		plan.Filter.MaxPrice = hi
		plan.Filter.HasPrice = true
	}

	return plan, nil
}

// parsePriceRange splits a "min-max" token into inclusive numeric bounds.
func parsePriceRange(tok string) (float64, float64, error) {
	lo, hi, ok := strings.Cut(tok, "-")
	if !ok {
		return 0, 0, domain.Invalid("price", `expected "min-max"`)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, domain.Invalid("price", "lower bound is not a number")
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return 0, 0, domain.Invalid("price", "upper bound is not a number")
	}
	if min < 0 || max < min {
		return 0, 0, domain.Invalid("price", "bounds out of order")
	}
	return min, max, nil
}

func parseSort(s string) Sort {
	switch strings.TrimSpace(s) {
	case "featured":
		return SortFeatured
	case "lowest":
		return SortLowestPrice
	case "highest":
		return SortHighestPrice
	case "toprated":
		return SortTopRated
	case "newest":
		return SortNewest
	default:
		return SortDefault
	}
}

// parsePositive is forgiving on purpose: paging input never fails a
// request, it falls back to the default.
func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Where renders the conjunction of all active dimensions as a SQL
// fragment with placeholder args. Dimensions are independent, so the
// emission order here is only cosmetic. An empty conjunction matches all.
func (f Filter) Where() (string, []any) {
	where := `1=1`
	args := []any{}
	if f.Query != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Query)+"%")
	}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Brand != "" {
		where += ` AND brand = ?`
		args = append(args, f.Brand)
	}
	if f.HasPrice {
		where += ` AND price >= ? AND price <= ?`
		args = append(args, f.MinPrice, f.MaxPrice)
	}
	if f.HasRating {
		where += ` AND rating >= ?`
		args = append(args, f.MinRating)
	}
	return where, args
}

// OrderBy renders the sort order. Every order carries an id tiebreak so
// paging over equal keys stays deterministic.
func (s Sort) OrderBy() string {
	switch s {
	case SortFeatured:
		return `is_featured DESC, id DESC`
	case SortLowestPrice:
		return `price ASC, id DESC`
	case SortHighestPrice:
		return `price DESC, id DESC`
	case SortTopRated:
		return `rating DESC, id DESC`
	case SortNewest:
		return `datetime(created_at) DESC, id DESC`
	default:
		return `id DESC`
	}
}

// Offset is the number of rows to skip for the requested page.
func (p Plan) Offset() int {
	return p.PageSize * (p.Page - 1)
}

// PageCount is ceil(count/pageSize); zero matches mean zero pages.
func PageCount(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
