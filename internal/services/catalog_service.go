package services

import (
	"database/sql"
	"errors"
	"fmt"

	"medimart/internal/domain"
	"medimart/internal/repos"
	"medimart/internal/search"
)

// CatalogService executes search plans against the product catalog and
// assembles the result envelope the storefront consumes.
type CatalogService struct {
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(prods *repos.ProductRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Prods: prods, Reviews: reviews}
}

type SearchResult struct {
	Products      []domain.Product `json:"products"`
	CountProducts int              `json:"countProducts"`
	Page          int              `json:"page"`
	Pages         int              `json:"pages"`
	Categories    []string         `json:"categories"`
	Brands        []string         `json:"brands"`
}

// Search runs the full pipeline: normalize parameters, list the distinct
// filter options from the whole catalog, count matches, fetch the page
// slice. Validation failures surface before any catalog access.
func (s *CatalogService) Search(p search.Params) (SearchResult, error) {
	plan, err := search.Parse(p)
	if err != nil {
		return SearchResult{}, err
	}
	return s.execute(plan)
}

func (s *CatalogService) execute(plan search.Plan) (SearchResult, error) {
	// Filter options always reflect the entire catalog, not the current
	// result set.
	categories, err := s.Prods.Distinct("category")
	if err != nil {
		return SearchResult{}, catalogErr(err)
	}
	brands, err := s.Prods.Distinct("brand")
	if err != nil {
		return SearchResult{}, catalogErr(err)
	}

	count, err := s.Prods.Count(plan.Filter)
	if err != nil {
		return SearchResult{}, catalogErr(err)
	}
	products, err := s.Prods.Find(plan)
	if err != nil {
		return SearchResult{}, catalogErr(err)
	}

	return SearchResult{
		Products:      products,
		CountProducts: count,
		Page:          plan.Page,
		Pages:         search.PageCount(count, plan.PageSize),
		Categories:    categories,
		Brands:        brands,
	}, nil
}

// SearchByComposition implements search-by-composition: the current page
// is filtered by a slug fragment, the matching names become the text
// query of a fresh search. No slug match means an empty result, never a
// fallback to match-all.
func (s *CatalogService) SearchByComposition(p search.Params, fragment string) (SearchResult, error) {
	current, err := s.Search(p)
	if err != nil {
		return SearchResult{}, err
	}
	composed := search.ComposeSlugQuery(current.Products, fragment)
	if composed == "" {
		current.Products = []domain.Product{}
		current.CountProducts = 0
		current.Pages = 0
		return current, nil
	}
	p.Query = composed
	p.Page = ""
	return s.Search(p)
}

// ProductDetail returns a product by slug with its reviews attached.
func (s *CatalogService) ProductDetail(slug string) (domain.Product, []domain.Review, error) {
	p, err := s.Prods.GetBySlug(slug)
	if err != nil {
		return domain.Product{}, nil, catalogErr(err)
	}
	reviews, err := s.Reviews.ListByProduct(p.ID)
	if err != nil {
		return domain.Product{}, nil, catalogErr(err)
	}
	return p, reviews, nil
}

// AddReview records a review against the product behind a slug; the
// product's denormalized rating and review count follow along.
func (s *CatalogService) AddReview(slug, author string, rating int, comment string) error {
	p, err := s.Prods.GetBySlug(slug)
	if err != nil {
		return catalogErr(err)
	}
	if err := s.Reviews.Add(p.ID, author, rating, comment); err != nil {
		return catalogErr(err)
	}
	return nil
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, catalogErr(err)
	}
	return p, nil
}

// catalogErr maps storage errors onto the domain taxonomy: missing rows
// are ErrNotFound, anything else means the catalog is unreachable.
func catalogErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
}
