package handlers

import (
	"medimart/internal/repos"
	"medimart/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	SearchHandler  *SearchHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, reviewRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo)

	return &Deps{
		SearchHandler:  &SearchHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc, Repo: orderRepo},
		AdminHandler:   &AdminHandler{Orders: orderRepo, Prods: prodRepo, Users: userRepo},
	}
}
