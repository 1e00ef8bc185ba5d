package repos

import (
	"fmt"

	"medimart/internal/domain"
	"medimart/internal/search"

	"github.com/jmoiron/sqlx"
)

// ProductRepo is the catalog: distinct-value listing, predicate filtering
// with sort/skip/limit, and counting. Search never joins reviews.
type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, slug, category, brand, price, rating, num_reviews,
  count_in_stock, is_featured, COALESCE(image,'') AS image,
  COALESCE(description,'') AS description, created_at`

// distinctFields whitelists the columns Distinct may touch; field names
// reach this repo from query parameters only indirectly, but the
// whitelist keeps them out of SQL entirely.
var distinctFields = map[string]bool{"category": true, "brand": true}

func (r *ProductRepo) Distinct(field string) ([]string, error) {
	if !distinctFields[field] {
		return nil, fmt.Errorf("distinct: unsupported field %q", field)
	}
	var out []string
	err := r.db.Select(&out, `SELECT DISTINCT `+field+` FROM products ORDER BY `+field)
	return out, err
}

func (r *ProductRepo) Count(f search.Filter) (int, error) {
	where, args := f.Where()
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE `+where, args...)
	return n, err
}

// Find returns the page slice for a plan. A page past the last match
// yields an empty slice, not an error.
func (r *ProductRepo) Find(p search.Plan) ([]domain.Product, error) {
	where, args := p.Filter.Where()
	q := `SELECT` + productCols + `
	  FROM products
	  WHERE ` + where + `
	  ORDER BY ` + p.Sort.OrderBy() + `
	  LIMIT ? OFFSET ?`
	args = append(args, p.PageSize, p.Offset())

	out := []domain.Product{}
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) GetBySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE slug = ?`, slug)
	return p, err
}

// Stock reads the authoritative stock count. Cart mutations call this
// instead of trusting anything cached client-side.
func (r *ProductRepo) Stock(id int64) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT count_in_stock FROM products WHERE id = ?`, id)
	return qty, err
}

// DecrementStock atomically subtracts "by" units if enough stock exists.
func (r *ProductRepo) DecrementStock(id int64, by int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET count_in_stock = count_in_stock - ?
		WHERE id = ? AND count_in_stock >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrStockInsufficient, id)
	}
	return nil
}
