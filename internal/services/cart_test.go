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
	"github.com/stretchr/testify/require"
)

func TestGetCart(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Total Reflects Quantities", func(t *testing.T) {
		// Arrange
		cartRepo := repository.NewMockCartRepository()
		svc := service.NewCartService(cartRepo)

		cartRepo.On("GetCartByUserID", ctx, userID).Return(cartWithItems(userID), nil).Once()

		// Act
		cart, err := svc.GetCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(2*1200+500), cart.TotalPrice)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		cartRepo := repository.NewMockCartRepository()
		svc := service.NewCartService(cartRepo)

		cartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := svc.GetCart(ctx, userID)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpsertCartItem(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Returns Refreshed Cart", func(t *testing.T) {
		// Arrange
		cartRepo := repository.NewMockCartRepository()
		svc := service.NewCartService(cartRepo)

		cart := cartWithItems(userID)
		req := &models.UpsertItemRequest{ProductID: cart.Items[0].ProductID, Quantity: 5}

		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Twice()
		cartRepo.On("UpsertItem", ctx, cart.ID, req.ProductID, int64(5)).Return(nil).Once()

		// Act
		got, err := svc.UpsertItem(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, cart.ID, got.ID)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		cartRepo := repository.NewMockCartRepository()
		svc := service.NewCartService(cartRepo)

		cart := cartWithItems(userID)
		req := &models.UpsertItemRequest{ProductID: uuid.New(), Quantity: 1}

		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		cartRepo.On("UpsertItem", ctx, cart.ID, req.ProductID, int64(1)).
			Return(&pq.Error{Code: "23503"}).Once()

		// Act
		_, err := svc.UpsertItem(ctx, userID, req)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Product not found", appErr.Message)
	})
}

func TestDeleteCartItem(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		// Arrange
		cartRepo := repository.NewMockCartRepository()
		svc := service.NewCartService(cartRepo)

		cart := cartWithItems(userID)
		itemID := uuid.New()

		cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		cartRepo.On("DeleteItem", ctx, cart.ID, itemID).Return(sql.ErrNoRows).Once()

		// Act
		_, err := svc.DeleteItem(ctx, userID, itemID)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Cart item not found", appErr.Message)
	})
}
