package service_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	service "github.com/hungryup/hungryup-backend/internal/services"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Markup Is Sanitized", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("CreateReview", ctx, mock.AnythingOfType("*models.Review")).Return(nil).Once()

		req := &models.ReviewRequest{
			ProductID:   productID,
			Description: `Great pizza!<script>alert("x")</script>`,
			Rating:      5,
		}

		// Act
		review, err := svc.CreateReview(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Great pizza!", review.Description)
		assert.Equal(t, userID, review.UserID)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - Already Reviewed", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("CreateReview", ctx, mock.AnythingOfType("*models.Review")).
			Return(&pq.Error{Code: "23505", Constraint: "reviews_product_user_key"}).Once()

		// Act
		_, err := svc.CreateReview(ctx, userID, &models.ReviewRequest{ProductID: productID, Description: "again", Rating: 4})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		assert.Equal(t, "You have already reviewed this product", appErr.Message)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("CreateReview", ctx, mock.AnythingOfType("*models.Review")).
			Return(&pq.Error{Code: "23503"}).Once()

		// Act
		_, err := svc.CreateReview(ctx, userID, &models.ReviewRequest{ProductID: productID, Description: "nice", Rating: 3})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestLikeProduct(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("LikeProduct", ctx, productID, userID).Return(nil).Once()

		// Act
		err := svc.LikeProduct(ctx, productID, userID)

		// Assert
		require.NoError(t, err)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - Already Liked", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("LikeProduct", ctx, productID, userID).
			Return(&pq.Error{Code: "23505", Constraint: "product_likes_pkey"}).Once()

		// Act
		err := svc.LikeProduct(ctx, productID, userID)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		assert.Equal(t, "You have already liked this product", appErr.Message)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("LikeProduct", ctx, productID, userID).
			Return(&pq.Error{Code: "23503"}).Once()

		// Act
		err := svc.LikeProduct(ctx, productID, userID)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUnlikeProduct(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("UnlikeProduct", ctx, productID, userID).Return(nil).Once()

		// Act
		err := svc.UnlikeProduct(ctx, productID, userID)

		// Assert
		require.NoError(t, err)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - Never Liked", func(t *testing.T) {
		// Arrange
		reviewRepo := repository.NewMockReviewRepository()
		svc := service.NewReviewService(reviewRepo)

		reviewRepo.On("UnlikeProduct", ctx, productID, userID).Return(sql.ErrNoRows).Once()

		// Act
		err := svc.UnlikeProduct(ctx, productID, userID)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Product is not liked", appErr.Message)
	})
}
