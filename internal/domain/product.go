package domain

type Product struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Slug         string  `db:"slug" json:"slug"`
	Category     string  `db:"category" json:"category"`
	Brand        string  `db:"brand" json:"brand"`
	Price        float64 `db:"price" json:"price"`
	Rating       int     `db:"rating" json:"rating"` // 0..5
	NumReviews   int     `db:"num_reviews" json:"numReviews"`
	CountInStock int     `db:"count_in_stock" json:"countInStock"`
	IsFeatured   bool    `db:"is_featured" json:"isFeatured"`
	Image        string  `db:"image" json:"image"`
	Description  string  `db:"description" json:"description"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
}

// Review rows live in their own table so product listings never carry
// review payloads; they are only joined on the product detail page.
type Review struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"productId"`
	Author    string `db:"author" json:"author"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
