package services

import (
	"errors"
	"fmt"

	"medimart/internal/domain"
	"medimart/internal/repos"

	"github.com/google/uuid"
)

type Contact struct {
	Name  string
	Email string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders}
}

// Place turns the session's cart into an order: every line is re-checked
// against live stock, stock is decremented, totals are computed
// server-side and the cart is cleared. Payment is out of scope.
func (s *OrderService) Place(sessionID string, contact Contact) (string, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", catalogErr(err)
	}

	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", catalogErr(err)
	}
	if len(items) == 0 {
		return "", errors.New("cart empty")
	}

	// pre-check stock before touching anything; the repo re-checks each
	// line inside the placement transaction, so a drain between here and
	// there still rolls back cleanly
	for _, it := range items {
		qty, err := s.Prods.Stock(it.ProductID)
		if err != nil {
			return "", catalogErr(err)
		}
		if qty < it.Qty {
			return "", fmt.Errorf("%w: %q (need %d, have %d)",
				domain.ErrStockInsufficient, it.Name, it.Qty, qty)
		}
	}

	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}

	orderID := uuid.NewString()
	if err := s.Orders.Place(orderID, sessionID, contact.Name, contact.Email, total, items); err != nil {
		if errors.Is(err, domain.ErrStockInsufficient) {
			return "", err
		}
		return "", catalogErr(err)
	}
	_ = s.Carts.Clear(cartID)
	return orderID, nil
}
