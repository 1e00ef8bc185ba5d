package services

import (
	"fmt"

	"medimart/internal/domain"
	"medimart/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// SetQuantity replaces a line's quantity after revalidating against the
// authoritative stock count. On rejection the cart is left untouched.
func (s *CartService) SetQuantity(sessionID string, productID int64, qty int) error {
	if qty < 1 {
		return domain.Invalid("quantity", "must be at least 1")
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return catalogErr(err)
	}
	if p.CountInStock < qty {
		return fmt.Errorf("%w: %q has %d left", domain.ErrStockInsufficient, p.Name, p.CountInStock)
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return catalogErr(err)
	}
	return s.Carts.SetItem(cartID, productID, qty, p.Price)
}

// Add puts one more unit of a product in the cart, going through the
// same stock revalidation as any quantity change.
func (s *CartService) Add(sessionID string, productID int64) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return catalogErr(err)
	}
	have, err := s.Carts.ItemQty(cartID, productID)
	if err != nil {
		return catalogErr(err)
	}
	return s.SetQuantity(sessionID, productID, have+1)
}

func (s *CartService) Remove(sessionID string, productID int64) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return catalogErr(err)
	}
	return s.Carts.RemoveItem(cartID, productID)
}

type CartView struct {
	Items []repos.CartItemRow `json:"items"`
	Total float64             `json:"total"`
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, catalogErr(err)
	}
	items, total, err := s.Carts.View(cartID)
	if err != nil {
		return CartView{}, catalogErr(err)
	}
	return CartView{Items: items, Total: total}, nil
}
