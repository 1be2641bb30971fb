package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/utils"
	"github.com/lib/pq"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, bool, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context, categorySlug string) ([]models.Tag, error)
	BestRatedProducts(ctx context.Context, categorySlug string) ([]*models.Product, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productAggregates = `
	LEFT JOIN (
		SELECT product_id, AVG(rating) AS average_rating
		FROM reviews
		GROUP BY product_id
	) r ON r.product_id = p.id
	LEFT JOIN (
		SELECT product_id, COUNT(*) AS likes_count, ARRAY_AGG(user_id::text) AS liked_by
		FROM product_likes
		GROUP BY product_id
	) l ON l.product_id = p.id
`

// ListProducts pages the catalog with a keyset cursor on product id. One
// extra row beyond the requested page size is fetched to decide whether a
// next page exists.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.category_id, p.name, p.slug, p.description, p.price, p.image, p.created_at, p.updated_at,
		       COALESCE(r.average_rating, 0), COALESCE(l.likes_count, 0), COALESCE(l.liked_by, '{}')
		FROM products p
		JOIN categories c ON c.id = p.category_id
	` + productAggregates + `
		WHERE p.name ILIKE '%' || $1 || '%'
		  AND c.slug LIKE '%' || $2 || '%'
		  AND ($3 = '' OR EXISTS (
			SELECT 1
			FROM product_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.product_id = p.id AND t.slug LIKE '%' || $3 || '%'
		  ))
		  AND ($4::uuid IS NULL OR p.id > $4)
		ORDER BY p.id ASC
		LIMIT $5
	`

	var cursor any
	if filter.Cursor != nil {
		cursor = *filter.Cursor
	}

	rows, err := r.DB.QueryContext(dbCtx, query, filter.Keyword, filter.Category, filter.Tag, cursor, filter.Take+1)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, false, err
	}

	hasNext := len(products) > filter.Take
	if hasNext {
		products = products[:filter.Take]
	}

	return products, hasNext, nil
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}
	category := &models.Category{}

	var likedBy pq.StringArray

	query := `
		SELECT p.id, p.category_id, p.name, p.slug, p.description, p.price, p.image, p.created_at, p.updated_at,
		       COALESCE(r.average_rating, 0), COALESCE(l.likes_count, 0), COALESCE(l.liked_by, '{}'),
		       c.id, c.name, c.slug
		FROM products p
		JOIN categories c ON c.id = p.category_id
	` + productAggregates + `
		WHERE p.slug = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, slug).
		Scan(&product.ID, &product.CategoryID, &product.Name, &product.Slug, &product.Description, &product.Price, &product.Image,
			&product.CreatedAt, &product.UpdatedAt, &product.AverageRating, &product.LikesCount, &likedBy,
			&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, err
	}

	product.Category = category

	if product.LikedBy, err = parseUUIDs(likedBy); err != nil {
		return nil, err
	}

	tags, err := r.tagsByProduct(dbCtx, product.ID)
	if err != nil {
		return nil, err
	}

	product.Tags = tags

	reviews, err := r.reviewsByProduct(dbCtx, product.ID)
	if err != nil {
		return nil, err
	}

	product.Reviews = reviews

	return product, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, slug FROM categories ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {

		var category models.Category

		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// ListTags returns all tags, or only the tags attached to products of the
// given category when categorySlug is non-empty.
func (r *productRepository) ListTags(ctx context.Context, categorySlug string) ([]models.Tag, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT t.id, t.name, t.slug
		FROM tags t
		WHERE $1 = '' OR EXISTS (
			SELECT 1
			FROM product_tags pt
			JOIN products p ON p.id = pt.product_id
			JOIN categories c ON c.id = p.category_id
			WHERE pt.tag_id = t.id AND c.slug = $1
		)
		ORDER BY t.name ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	defer rows.Close()

	var tags []models.Tag

	for rows.Next() {

		var tag models.Tag

		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}

		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// BestRatedProducts returns the top ten products of a category with an
// average rating of at least 3, ranked by rating then like count.
func (r *productRepository) BestRatedProducts(ctx context.Context, categorySlug string) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.category_id, p.name, p.slug, p.description, p.price, p.image, p.created_at, p.updated_at,
		       COALESCE(r.average_rating, 0), COALESCE(l.likes_count, 0), COALESCE(l.liked_by, '{}')
		FROM products p
		JOIN categories c ON c.id = p.category_id
	` + productAggregates + `
		WHERE c.slug = $1 AND COALESCE(r.average_rating, 0) >= 3
		ORDER BY r.average_rating DESC, l.likes_count DESC
		LIMIT 10
	`

	rows, err := r.DB.QueryContext(dbCtx, query, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to query best rated products: %w", err)
	}

	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.reviewsByProduct(dbCtx, productID)
}

func (r *productRepository) tagsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Tag, error) {

	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN product_tags pt ON pt.tag_id = t.id
		WHERE pt.product_id = $1
		ORDER BY t.name ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product tags: %w", err)
	}

	defer rows.Close()

	var tags []models.Tag

	for rows.Next() {

		var tag models.Tag

		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}

		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *productRepository) reviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {

	query := `
		SELECT rv.id, rv.product_id, rv.user_id, rv.description, rv.rating, rv.created_at, rv.updated_at,
		       u.id, u.name, u.avatar
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	defer rows.Close()

	var reviews []models.Review

	for rows.Next() {

		var review models.Review
		user := &models.User{}

		err := rows.Scan(&review.ID, &review.ProductID, &review.UserID, &review.Description, &review.Rating,
			&review.CreatedAt, &review.UpdatedAt, &user.ID, &user.Name, &user.Avatar)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		review.User = user
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func scanProducts(rows *sql.Rows) ([]*models.Product, error) {

	var products []*models.Product

	for rows.Next() {

		product := &models.Product{}

		var likedBy pq.StringArray

		err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Slug, &product.Description,
			&product.Price, &product.Image, &product.CreatedAt, &product.UpdatedAt,
			&product.AverageRating, &product.LikesCount, &likedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		if product.LikedBy, err = parseUUIDs(likedBy); err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {

	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))

	for _, s := range raw {

		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse liker id: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
