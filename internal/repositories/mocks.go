package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the repository interfaces, used by the
// service tests.

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, bool, error) {
	args := m.Called(ctx, filter)

	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Bool(1), args.Error(2)
	}

	return nil, args.Bool(1), args.Error(2)
}

func (m *MockProductRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)

	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	if categories, ok := args.Get(0).([]models.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListTags(ctx context.Context, categorySlug string) ([]models.Tag, error) {
	args := m.Called(ctx, categorySlug)

	if tags, ok := args.Get(0).([]models.Tag); ok {
		return tags, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) BestRatedProducts(ctx context.Context, categorySlug string) ([]*models.Product, error) {
	args := m.Called(ctx, categorySlug)

	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, productID)

	if reviews, ok := args.Get(0).([]models.Review); ok {
		return reviews, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

func (m *MockCartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, cartID, productID, quantity)

	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	args := m.Called(ctx, cartID, itemID)

	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)

	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpsertCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockOrderRepository) CompleteOrder(ctx context.Context, completion *models.PaymentCompletion) (uuid.UUID, bool, error) {
	args := m.Called(ctx, completion)

	if id, ok := args.Get(0).(uuid.UUID); ok {
		return id, args.Bool(1), args.Error(2)
	}

	return uuid.Nil, args.Bool(1), args.Error(2)
}

type MockReviewRepository struct {
	mock.Mock
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *MockReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *MockReviewRepository) LikeProduct(ctx context.Context, productID, userID uuid.UUID) error {
	args := m.Called(ctx, productID, userID)

	return args.Error(0)
}

func (m *MockReviewRepository) UnlikeProduct(ctx context.Context, productID, userID uuid.UUID) error {
	args := m.Called(ctx, productID, userID)

	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMessage string) error {
	args := m.Called(ctx, id, status, errorMessage)

	return args.Error(0)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func NewMockRateLimitRepository() *MockRateLimitRepository {
	return &MockRateLimitRepository{}
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
