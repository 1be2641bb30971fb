package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/pricing"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpsertItem(ctx context.Context, userID uuid.UUID, req *models.UpsertItemRequest) (*models.Cart, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	cart.TotalPrice = cartTotal(cart)

	return cart, nil
}

// UpsertItem sets the quantity for (cart, product). A second call with the
// same product overwrites rather than adds.
func (s *cartService) UpsertItem(ctx context.Context, userID uuid.UUID, req *models.UpsertItemRequest) (*models.Cart, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if err := s.repo.UpsertItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {

		if repository.IsForeignKeyViolation(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, errors.NotFoundError("Cart item not found").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func cartTotal(cart *models.Cart) int64 {

	lineItems := make([]pricing.LineItem, 0, len(cart.Items))

	for _, item := range cart.Items {

		if item.Product == nil {
			continue
		}

		lineItems = append(lineItems, pricing.LineItem{UnitPrice: item.Product.Price, Quantity: item.Quantity})
	}

	return pricing.ComputeTotal(lineItems)
}
