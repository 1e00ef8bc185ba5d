package services_test

import (
	"errors"
	"testing"

	"medimart/internal/domain"
	"medimart/internal/repos"
	"medimart/internal/services"
)

func TestOrderFlow_CartToOrder(t *testing.T) {
	db := memdbAll(t)

	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo)

	sid := "order-session"
	if err := cartSvc.SetQuantity(sid, 1, 2); err != nil { // paracetamol, 25 each
		t.Fatal(err)
	}

	oid, err := orderSvc.Place(sid, services.Contact{Name: "Tester", Email: "t@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if oid == "" {
		t.Fatal("no order id")
	}

	// stock decremented from 10 to 8
	qty, err := prodRepo.Stock(1)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 8 {
		t.Fatalf("want qty=8, got %d", qty)
	}

	// cart cleared
	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be cleared: %+v", cv.Items)
	}

	// order recorded with the server-side total
	o, items, err := orderRepo.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 50 || len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("bad order: %+v items=%+v", o, items)
	}

	// totals and monthly buckets feed the admin summary
	n, sum, err := orderRepo.Totals()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || sum != 50 {
		t.Fatalf("want 1 order totaling 50, got n=%d sum=%v", n, sum)
	}
	sales, err := orderRepo.SalesByMonth()
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 || sales[0].Total != 50 {
		t.Fatalf("bad sales buckets: %+v", sales)
	}
}

func TestOrderPlace_EmptyCart(t *testing.T) {
	db := memdbAll(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewOrderRepo(db))

	if _, err := orderSvc.Place("empty-session", services.Contact{Name: "N", Email: "n@e.com"}); err == nil {
		t.Fatal("placing an empty cart must fail")
	}
}

func TestOrderPlace_ShortLineRollsBackEverything(t *testing.T) {
	db := memdbAll(t)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	// First line is in stock, second is not (amoxicillin, stock 0).
	items := []repos.CartItem{
		{ProductID: 1, Name: "Paracetamol 500mg", Qty: 2, Price: 25},
		{ProductID: 3, Name: "Amoxicillin 250mg", Qty: 1, Price: 120},
	}
	err := orderRepo.Place("order-short", "sess-short", "N", "n@e.com", 170, items)
	if !errors.Is(err, domain.ErrStockInsufficient) {
		t.Fatalf("want ErrStockInsufficient, got %v", err)
	}

	// The first line's decrement was rolled back with everything else.
	qty, err := prodRepo.Stock(1)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 10 {
		t.Fatalf("stock must be untouched after rollback, got %d", qty)
	}
	n, _, err := orderRepo.Totals()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order row may survive the rollback, got %d", n)
	}
}

func TestOrderPlace_StockCheckedAtCheckout(t *testing.T) {
	db := memdbAll(t)
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, repos.NewOrderRepo(db))

	sid := "late-stock-session"
	if err := cartSvc.SetQuantity(sid, 2, 2); err != nil { // ibuprofen, stock 2
		t.Fatal(err)
	}

	// stock drains between add-to-cart and checkout
	if err := prodRepo.DecrementStock(2, 1); err != nil {
		t.Fatal(err)
	}

	_, err := orderSvc.Place(sid, services.Contact{Name: "N", Email: "n@e.com"})
	if !errors.Is(err, domain.ErrStockInsufficient) {
		t.Fatalf("want ErrStockInsufficient, got %v", err)
	}

	// nothing was decremented by the failed checkout
	qty, _ := prodRepo.Stock(2)
	if qty != 1 {
		t.Fatalf("failed checkout must not touch stock, got %d", qty)
	}
}
