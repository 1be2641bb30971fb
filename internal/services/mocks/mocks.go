// Package mocks provides testify mocks for the service interfaces, used by
// the handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/models"
	stripeClient "github.com/hungryup/hungryup-backend/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserAuth, error) {
	args := m.Called(ctx, req)

	if auth, ok := args.Get(0).(*models.UserAuth); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) UpsertItem(ctx context.Context, userID uuid.UUID, req *models.UpsertItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error) {
	args := m.Called(ctx, filter)

	if page, ok := args.Get(0).(*models.ProductPage); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)

	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	if categories, ok := args.Get(0).([]models.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) ListTags(ctx context.Context, categorySlug string) ([]models.Tag, error) {
	args := m.Called(ctx, categorySlug)

	if tags, ok := args.Get(0).([]models.Tag); ok {
		return tags, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) BestRatedProducts(ctx context.Context, categorySlug string) ([]*models.Product, error) {
	args := m.Called(ctx, categorySlug)

	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, productID)

	if reviews, ok := args.Get(0).([]models.Review); ok {
		return reviews, args.Error(1)
	}

	return nil, args.Error(1)
}

type ReviewService struct {
	mock.Mock
}

func (m *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *models.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, userID, req)

	if review, ok := args.Get(0).(*models.Review); ok {
		return review, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReviewService) UpdateReview(ctx context.Context, userID uuid.UUID, req *models.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, userID, req)

	if review, ok := args.Get(0).(*models.Review); ok {
		return review, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReviewService) LikeProduct(ctx context.Context, productID, userID uuid.UUID) error {
	args := m.Called(ctx, productID, userID)

	return args.Error(0)
}

func (m *ReviewService) UnlikeProduct(ctx context.Context, productID, userID uuid.UUID) error {
	args := m.Called(ctx, productID, userID)

	return args.Error(0)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, userID, req)

	if resp, ok := args.Get(0).(*models.CheckoutResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) ProcessWebhook(ctx context.Context, event stripeClient.Event) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	args := m.Called(ctx, req)

	if resp, ok := args.Get(0).(*models.NotificationResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}
