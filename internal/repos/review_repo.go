package repos

import (
	"medimart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ListByProduct(productID int64) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, author, rating, COALESCE(comment,'') AS comment, created_at
	  FROM reviews
	  WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC, id DESC
	`, productID)
	return out, err
}

// Add inserts a review and refreshes the product's denormalized rating
// (rounded average) and review count in the same transaction.
func (r *ReviewRepo) Add(productID int64, author string, rating int, comment string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO reviews(product_id, author, rating, comment, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, productID, author, rating, comment); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  UPDATE products SET
	    num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = ?),
	    rating = (SELECT CAST(ROUND(AVG(rating)) AS INTEGER) FROM reviews WHERE product_id = ?)
	  WHERE id = ?
	`, productID, productID, productID); err != nil {
		return err
	}
	return tx.Commit()
}
