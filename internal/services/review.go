package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *models.ReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, req *models.ReviewRequest) (*models.Review, error)
	LikeProduct(ctx context.Context, productID, userID uuid.UUID) error
	UnlikeProduct(ctx context.Context, productID, userID uuid.UUID) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	sanitizer *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *models.ReviewRequest) (*models.Review, error) {

	review := &models.Review{
		ID:          uuid.New(),
		ProductID:   req.ProductID,
		UserID:      userID,
		Description: s.sanitizer.Sanitize(req.Description),
		Rating:      req.Rating,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {

		switch {
		case repository.IsUniqueViolation(err, "reviews_product_user_key"):
			return nil, errors.DuplicateEntryError("You have already reviewed this product")
		case repository.IsForeignKeyViolation(err):
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID uuid.UUID, req *models.ReviewRequest) (*models.Review, error) {

	review := &models.Review{
		ProductID:   req.ProductID,
		UserID:      userID,
		Description: s.sanitizer.Sanitize(req.Description),
		Rating:      req.Rating,
	}

	if err := s.repo.UpdateReview(ctx, review); err != nil {
		return nil, errors.NotFoundError("Review not found").WithError(err)
	}

	return review, nil
}

func (s *reviewService) LikeProduct(ctx context.Context, productID, userID uuid.UUID) error {

	if err := s.repo.LikeProduct(ctx, productID, userID); err != nil {

		switch {
		case repository.IsUniqueViolation(err, "product_likes_pkey"):
			return errors.DuplicateEntryError("You have already liked this product")
		case repository.IsForeignKeyViolation(err):
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to like product").WithError(err)
	}

	return nil
}

func (s *reviewService) UnlikeProduct(ctx context.Context, productID, userID uuid.UUID) error {

	if err := s.repo.UnlikeProduct(ctx, productID, userID); err != nil {

		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Product is not liked").WithError(err)
		}

		return errors.DatabaseError("Failed to unlike product").WithError(err)
	}

	return nil
}
