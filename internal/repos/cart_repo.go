package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID  int64   `db:"product_id" json:"productId"`
	Name       string  `db:"name" json:"name"`
	Slug       string  `db:"slug" json:"slug"`
	Image      string  `db:"image" json:"image"`
	Qty        int     `db:"qty" json:"qty"`
	PriceAtAdd float64 `db:"price_at_add" json:"price"`
	Subtotal   float64 `db:"subtotal" json:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if _, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339)); err != nil {
		return "", err
	}
	return sessionID, nil
}

// ItemQty returns the current quantity of a line, or 0 if absent.
func (r *CartRepo) ItemQty(cartID string, productID int64) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
	  SELECT COALESCE(SUM(qty),0) FROM cart_items
	  WHERE cart_id = ? AND product_id = ?
	`, cartID, productID)
	return qty, err
}

// SetItem replaces a line's quantity in place. created_at is only set on
// first insert, so the cart keeps its original item order.
func (r *CartRepo) SetItem(cartID string, productID int64, qty int, price float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,price_at_add,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, price)
	return err
}

func (r *CartRepo) RemoveItem(cartID string, productID int64) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

// View lists the cart in the order items were first added.
func (r *CartRepo) View(cartID string) ([]CartItemRow, float64, error) {
	rows := []CartItemRow{}
	if err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, p.slug, COALESCE(p.image,'') AS image,
	         ci.qty, ci.price_at_add, (ci.qty*ci.price_at_add) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at, ci.product_id
	`, cartID); err != nil {
		return nil, 0, err
	}
	total := 0.0
	for _, it := range rows {
		total += it.Subtotal
	}
	return rows, total, nil
}

type CartItem struct {
	ProductID int64   `db:"product_id"`
	Name      string  `db:"name"`
	Qty       int     `db:"qty"`
	Price     float64 `db:"price"`
}

func (r *CartRepo) Items(cartID string) ([]CartItem, error) {
	var out []CartItem
	err := r.db.Select(&out, `
	  SELECT ci.product_id, p.name, ci.qty, ci.price_at_add AS price
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at, ci.product_id
	`, cartID)
	return out, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
