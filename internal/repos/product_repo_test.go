package repos_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"medimart/internal/domain"
	"medimart/internal/repos"
	"medimart/internal/search"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE products(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE,
	  category TEXT NOT NULL, brand TEXT NOT NULL,
	  price NUMERIC NOT NULL, rating INTEGER NOT NULL DEFAULT 0,
	  num_reviews INTEGER NOT NULL DEFAULT 0,
	  count_in_stock INTEGER NOT NULL DEFAULT 0,
	  is_featured INTEGER NOT NULL DEFAULT 0,
	  image TEXT, description TEXT,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	INSERT INTO products(name,slug,category,brand,price,rating,count_in_stock,is_featured) VALUES
	  ('Aspirin 75mg',      'aspirin-75mg',      'Pain Relief', 'Bayer',  10, 3, 5, 0),
	  ('Paracetamol 500mg', 'paracetamol-500mg', 'Pain Relief', 'Cipla',  50, 4, 8, 1),
	  ('Cetirizine 10mg',   'cetirizine-10mg',   'Allergy',     'Cipla',  75, 4, 0, 0),
	  ('Amoxicillin 250mg', 'amoxicillin-250mg', 'Antibiotics', 'Abbott', 120, 5, 3, 0),
	  ('Vitamin D3 60k',    'vitamin-d3-60k',    'Vitamins',    'Abbott', 300, 4, 9, 1);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func mustParse(t *testing.T, p search.Params) search.Plan {
	t.Helper()
	plan, err := search.Parse(p)
	if err != nil {
		t.Fatal(err)
	}
	return plan
}

func TestProductRepo_Distinct(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))

	cats, err := r.Distinct("category")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Allergy", "Antibiotics", "Pain Relief", "Vitamins"}
	if len(cats) != len(want) {
		t.Fatalf("want %v, got %v", want, cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("want %v, got %v", want, cats)
		}
	}

	brands, err := r.Distinct("brand")
	if err != nil {
		t.Fatal(err)
	}
	if len(brands) != 3 {
		t.Fatalf("want 3 brands, got %v", brands)
	}

	if _, err := r.Distinct("price; DROP TABLE products"); err == nil {
		t.Fatal("unlisted distinct field must be rejected")
	}
}

// Prices [10,50,75,120,300], price=1-50, pageSize=2,
// page=1 returns both matches, countProducts=2, pages=1.
func TestProductRepo_PriceRangeExample(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))
	plan := mustParse(t, search.Params{Price: "1-50", Sort: "lowest"})

	count, err := r.Count(plan.Filter)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("want countProducts=2, got %d", count)
	}
	if pages := search.PageCount(count, plan.PageSize); pages != 1 {
		t.Fatalf("want pages=1, got %d", pages)
	}

	got, err := r.Find(plan)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Price != 10 || got[1].Price != 50 {
		t.Fatalf("want prices [10 50], got %+v", got)
	}
	for _, p := range got {
		if p.Price < 1 || p.Price > 50 {
			t.Fatalf("price %v outside inclusive range", p.Price)
		}
	}
}

func TestProductRepo_FindSortsAndPaging(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))

	// default sort: id descending (newest insert first)
	got, err := r.Find(mustParse(t, search.Params{PageSize: "5"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 || got[0].Slug != "vitamin-d3-60k" || got[4].Slug != "aspirin-75mg" {
		t.Fatalf("default order wrong: %+v", got)
	}

	// highest: non-increasing prices within the page
	got, err = r.Find(mustParse(t, search.Params{Sort: "highest", PageSize: "5"}))
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Price > got[i-1].Price {
			t.Fatalf("highest sort not monotone: %+v", got)
		}
	}

	// featured first
	got, err = r.Find(mustParse(t, search.Params{Sort: "featured", PageSize: "2"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0].IsFeatured || !got[1].IsFeatured {
		t.Fatalf("featured sort wrong: %+v", got)
	}

	// page 2 of pageSize 2, default order: ids 3,2
	got, err = r.Find(mustParse(t, search.Params{Page: "2"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Slug != "cetirizine-10mg" || got[1].Slug != "paracetamol-500mg" {
		t.Fatalf("page 2 wrong: %+v", got)
	}

	// a page past the end is empty, not an error
	got, err = r.Find(mustParse(t, search.Params{Page: "99"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty page, got %+v", got)
	}
}

func TestProductRepo_CategoryFilterMatchesOnly(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))
	plan := mustParse(t, search.Params{Category: "Pain Relief", PageSize: "10"})

	got, err := r.Find(plan)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 hits, got %+v", got)
	}
	for _, p := range got {
		if p.Category != "Pain Relief" {
			t.Fatalf("category filter leaked: %+v", p)
		}
	}
}

func TestProductRepo_QuerySubstringCaseInsensitive(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))

	got, err := r.Find(mustParse(t, search.Params{Query: "PARACET", PageSize: "10"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Slug != "paracetamol-500mg" {
		t.Fatalf("substring match wrong: %+v", got)
	}
}

func TestProductRepo_StockDecrement(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))

	qty, err := r.Stock(1)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 5 {
		t.Fatalf("want 5, got %d", qty)
	}

	if err := r.DecrementStock(1, 2); err != nil {
		t.Fatal(err)
	}
	qty, _ = r.Stock(1)
	if qty != 3 {
		t.Fatalf("want 3 after decrement, got %d", qty)
	}

	err = r.DecrementStock(1, 10)
	if !errors.Is(err, domain.ErrStockInsufficient) {
		t.Fatalf("want ErrStockInsufficient, got %v", err)
	}
	qty, _ = r.Stock(1)
	if qty != 3 {
		t.Fatalf("failed decrement must not change stock, got %d", qty)
	}
}
