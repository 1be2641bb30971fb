package service_test

import (
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	service "github.com/hungryup/hungryup-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		first := &models.Product{ID: uuid.New(), Name: "Margherita", Price: 1200}
		second := &models.Product{ID: uuid.New(), Name: "Pepperoni", Price: 1500}

		productRepo.On("ListProducts", ctx, mock.AnythingOfType("models.ProductFilter")).
			Return([]*models.Product{first, second}, true, nil).Once()

		// Act
		page, err := svc.ListProducts(ctx, models.ProductFilter{})

		// Assert
		require.NoError(t, err)
		require.Len(t, page.Edges, 2)
		assert.Equal(t, first.ID, page.Edges[0].Cursor)
		assert.Equal(t, second.ID, page.PageInfo.EndCursor)
		assert.True(t, page.PageInfo.HasNextPage)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - Page Size Is Capped", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		productRepo.On("ListProducts", ctx, mock.MatchedBy(func(f models.ProductFilter) bool {
			return f.Take == 50
		})).Return([]*models.Product{{ID: uuid.New()}}, false, nil).Once()

		// Act
		_, err := svc.ListProducts(ctx, models.ProductFilter{Take: 500})

		// Assert
		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Empty Catalog", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		productRepo.On("ListProducts", ctx, mock.AnythingOfType("models.ProductFilter")).
			Return([]*models.Product{}, false, nil).Once()

		// Act
		_, err := svc.ListProducts(ctx, models.ProductFilter{})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "No products found", appErr.Message)
	})
}

func TestListCategories(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		productRepo.On("ListCategories", ctx).
			Return([]models.Category{{ID: uuid.New(), Name: "Pizza", Slug: "pizza"}}, nil).Once()

		// Act
		categories, err := svc.ListCategories(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("Failure - No Categories", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		productRepo.On("ListCategories", ctx).Return([]models.Category{}, nil).Once()

		// Act
		_, err := svc.ListCategories(ctx)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "No categories found", appErr.Message)
	})
}

func TestListTags(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		productRepo.On("ListTags", ctx, "pizza").
			Return([]models.Tag{{ID: uuid.New(), Name: "Spicy", Slug: "spicy"}}, nil).Once()

		// Act
		tags, err := svc.ListTags(ctx, "pizza")

		// Assert
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("Failure - No Tags", func(t *testing.T) {
		// Arrange
		productRepo := repository.NewMockProductRepository()
		svc := service.NewCatalogService(productRepo)

		productRepo.On("ListTags", ctx, "pizza").Return([]models.Tag{}, nil).Once()

		// Act
		_, err := svc.ListTags(ctx, "pizza")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "No tags found", appErr.Message)
	})
}
