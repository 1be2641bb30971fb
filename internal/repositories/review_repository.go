package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	LikeProduct(ctx context.Context, productID, userID uuid.UUID) error
	UnlikeProduct(ctx context.Context, productID, userID uuid.UUID) error
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (id, product_id, user_id, description, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, review.ID, review.ProductID, review.UserID, review.Description, review.Rating).
		Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// UpdateReview rewrites the author's existing review of the product;
// sql.ErrNoRows means they have not reviewed it yet.
func (r *reviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE reviews
		SET description = $1, rating = $2, updated_at = NOW()
		WHERE product_id = $3 AND user_id = $4
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, review.Description, review.Rating, review.ProductID, review.UserID).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// LikeProduct inserts the like; the raw error surfaces so the caller can
// tell a duplicate like (product_likes_pkey) from a missing product.
func (r *reviewRepository) LikeProduct(ctx context.Context, productID, userID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_likes (product_id, user_id, created_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := r.DB.ExecContext(dbCtx, query, productID, userID); err != nil {
		return err
	}

	return nil
}

// UnlikeProduct removes the like; sql.ErrNoRows means it was never there.
func (r *reviewRepository) UnlikeProduct(ctx context.Context, productID, userID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM product_likes
		WHERE product_id = $1 AND user_id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, productID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to unlike product: %w", err)
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
