package repos

import (
	"fmt"

	"medimart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderSummary struct {
	ID            string  `db:"id" json:"id"`
	CustomerName  string  `db:"customer_name" json:"customerName"`
	CustomerEmail string  `db:"customer_email" json:"customerEmail"`
	Total         float64 `db:"total" json:"total"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

type OrderItemRow struct {
	Name     string  `db:"name" json:"name"`
	Qty      int     `db:"qty" json:"qty"`
	Price    float64 `db:"price" json:"price"`
	Subtotal float64 `db:"subtotal" json:"subtotal"`
}

// MonthlySales feeds the admin dashboard chart: one bucket per calendar
// month with the summed order totals.
type MonthlySales struct {
	Month string  `db:"month" json:"month"` // YYYY/MM
	Total float64 `db:"total" json:"totalSales"`
}

// Place writes the order, its lines and the stock decrements in a single
// transaction. A line that cannot be decremented rolls everything back,
// so a failed checkout never leaves stock half-taken.
func (r *OrderRepo) Place(orderID, sessionID, name, email string, total float64, items []CartItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		res, err := tx.Exec(`
		  UPDATE products SET count_in_stock = count_in_stock - ?
		  WHERE id = ? AND count_in_stock >= ?
		`, it.Qty, it.ProductID, it.Qty)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("%w: %q (need %d)", domain.ErrStockInsufficient, it.Name, it.Qty)
		}
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, session_id, customer_name, customer_email, total, status, created_at)
	  VALUES(?, ?, ?, ?, ?, 'PLACED', CURRENT_TIMESTAMP)
	`, orderID, sessionID, name, email, total); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, orderID, it.ProductID, it.Name, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (OrderSummary, []OrderItemRow, error) {
	var o OrderSummary
	if err := r.db.Get(&o, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return OrderSummary{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT name, qty, price, (qty * price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderSummary{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListBySession(sessionID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

// Totals returns the order count and the grand total across all orders.
func (r *OrderRepo) Totals() (int, float64, error) {
	var row struct {
		N   int     `db:"n"`
		Sum float64 `db:"sum"`
	}
	err := r.db.Get(&row, `SELECT COUNT(*) AS n, COALESCE(SUM(total),0) AS sum FROM orders`)
	return row.N, row.Sum, err
}

func (r *OrderRepo) SalesByMonth() ([]MonthlySales, error) {
	out := []MonthlySales{}
	err := r.db.Select(&out, `
		SELECT strftime('%Y/%m', created_at) AS month, SUM(total) AS total
		FROM orders
		GROUP BY month
		ORDER BY month
	`)
	return out, err
}
