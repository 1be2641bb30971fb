package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

type CatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error)
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context, categorySlug string) ([]models.Tag, error)
	BestRatedProducts(ctx context.Context, categorySlug string) ([]*models.Product, error)
	GetProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
}

type catalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error) {

	if filter.Take <= 0 {
		filter.Take = defaultPageSize
	}

	if filter.Take > maxPageSize {
		filter.Take = maxPageSize
	}

	products, hasNext, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	if len(products) == 0 {
		return nil, errors.NotFoundError("No products found")
	}

	page := &models.ProductPage{
		Edges:    make([]models.ProductEdge, 0, len(products)),
		PageInfo: models.PageInfo{HasNextPage: hasNext},
	}

	for _, product := range products {
		page.Edges = append(page.Edges, models.ProductEdge{Node: product, Cursor: product.ID})
	}

	if len(products) > 0 {
		page.PageInfo.EndCursor = products[len(products)-1].ID
	}

	return page, nil
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {

	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list categories").WithError(err)
	}

	if len(categories) == 0 {
		return nil, errors.NotFoundError("No categories found")
	}

	return categories, nil
}

func (s *catalogService) ListTags(ctx context.Context, categorySlug string) ([]models.Tag, error) {

	tags, err := s.repo.ListTags(ctx, categorySlug)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tags").WithError(err)
	}

	if len(tags) == 0 {
		return nil, errors.NotFoundError("No tags found")
	}

	return tags, nil
}

func (s *catalogService) BestRatedProducts(ctx context.Context, categorySlug string) ([]*models.Product, error) {

	products, err := s.repo.BestRatedProducts(ctx, categorySlug)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list best rated products").WithError(err)
	}

	return products, nil
}

func (s *catalogService) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {

	reviews, err := s.repo.ListProductReviews(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list product reviews").WithError(err)
	}

	return reviews, nil
}
