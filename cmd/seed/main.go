// Command seed populates the catalog with fake but plausible data for local
// development. Safe to run repeatedly; existing slugs are skipped.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/config"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

const (
	productsPerCategory = 12
	reviewsPerProduct   = 3
	seedUsers           = 20
)

var categories = []string{"Pizza", "Burgers", "Sushi", "Desserts", "Drinks"}

var tags = []string{"spicy", "vegan", "gluten-free", "bestseller", "new"}

func main() {

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("error accessing the database", slog.Any("error", err))
		os.Exit(1)
	}
	defer repos.Close()

	ctx := context.Background()

	if err := repos.EnsureSchema(ctx); err != nil {
		slog.Error("error applying database schema", slog.Any("error", err))
		os.Exit(1)
	}

	faker := gofakeit.New(0)

	if err := seed(ctx, repos, faker); err != nil {
		slog.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("seeding complete")
}

func seed(ctx context.Context, repos *repository.Repositories, faker *gofakeit.Faker) error {

	categoryIDs := make([]uuid.UUID, 0, len(categories))

	for _, name := range categories {

		id := uuid.New()

		err := repos.DB.QueryRowContext(ctx, `
			INSERT INTO categories (id, name, slug)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, id, name, slugify(name)).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}

		categoryIDs = append(categoryIDs, id)
	}

	tagIDs := make([]uuid.UUID, 0, len(tags))

	for _, name := range tags {

		id := uuid.New()

		err := repos.DB.QueryRowContext(ctx, `
			INSERT INTO tags (id, name, slug)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, id, name, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed tag %q: %w", name, err)
		}

		tagIDs = append(tagIDs, id)
	}

	userIDs, err := seedUsersAndCarts(ctx, repos, faker)
	if err != nil {
		return err
	}

	// Product names repeat across fake data; the seen set keeps slugs
	// unique within this run, and ON CONFLICT skips ones from earlier runs.
	seenSlugs := make(map[string]bool)

	var productIDs []uuid.UUID

	for _, categoryID := range categoryIDs {

		for range productsPerCategory {

			name := faker.ProductName()
			slug := slugify(name)

			for seenSlugs[slug] {
				name = faker.ProductName()
				slug = slugify(name)
			}

			seenSlugs[slug] = true

			productID := uuid.New()
			price := int64(faker.Number(500, 25000))

			err := repos.DB.QueryRowContext(ctx, `
				INSERT INTO products (id, category_id, name, slug, description, price, image)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (slug) DO UPDATE SET price = EXCLUDED.price
				RETURNING id
			`, productID, categoryID, name, slug, faker.Sentence(12), price, faker.ImageURL(640, 480)).Scan(&productID)
			if err != nil {
				return fmt.Errorf("failed to seed product %q: %w", name, err)
			}

			productIDs = append(productIDs, productID)

			for _, tagID := range pick(faker, tagIDs, 2) {

				_, err := repos.DB.ExecContext(ctx, `
					INSERT INTO product_tags (product_id, tag_id)
					VALUES ($1, $2)
					ON CONFLICT DO NOTHING
				`, productID, tagID)
				if err != nil {
					return fmt.Errorf("failed to tag product: %w", err)
				}
			}
		}
	}

	return seedReviewsAndLikes(ctx, repos, faker, productIDs, userIDs)
}

func seedUsersAndCarts(ctx context.Context, repos *repository.Repositories, faker *gofakeit.Faker) ([]uuid.UUID, error) {

	// One shared password keeps local login simple.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, seedUsers)

	for i := range seedUsers {

		userID := uuid.New()
		email := fmt.Sprintf("user%02d@hungryup.dev", i)
		phone := fmt.Sprintf("+155500000%02d", i)

		err := repos.DB.QueryRowContext(ctx, `
			INSERT INTO users (id, email, phone_number, name, avatar, password)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, userID, email, phone, faker.Name(), "default.jpg", string(hashed)).Scan(&userID)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %q: %w", email, err)
		}

		_, err = repos.DB.ExecContext(ctx, `
			INSERT INTO carts (id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO NOTHING
		`, uuid.New(), userID)
		if err != nil {
			return nil, fmt.Errorf("failed to seed cart: %w", err)
		}

		userIDs = append(userIDs, userID)
	}

	return userIDs, nil
}

func seedReviewsAndLikes(ctx context.Context, repos *repository.Repositories, faker *gofakeit.Faker, productIDs, userIDs []uuid.UUID) error {

	for _, productID := range productIDs {

		for _, userID := range pick(faker, userIDs, reviewsPerProduct) {

			_, err := repos.DB.ExecContext(ctx, `
				INSERT INTO reviews (id, product_id, user_id, description, rating)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (product_id, user_id) DO NOTHING
			`, uuid.New(), productID, userID, faker.Sentence(10), faker.Number(1, 5))
			if err != nil {
				return fmt.Errorf("failed to seed review: %w", err)
			}
		}

		for _, userID := range pick(faker, userIDs, faker.Number(0, 8)) {

			_, err := repos.DB.ExecContext(ctx, `
				INSERT INTO product_likes (product_id, user_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, productID, userID)
			if err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
		}
	}

	return nil
}

// pick returns n distinct random elements of ids.
func pick(faker *gofakeit.Faker, ids []uuid.UUID, n int) []uuid.UUID {

	if n >= len(ids) {
		return ids
	}

	shuffled := make([]uuid.UUID, len(ids))
	copy(shuffled, ids)

	faker.ShuffleAnySlice(shuffled)

	return shuffled[:n]
}

func slugify(name string) string {

	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)

	return strings.Trim(slug, "-")
}
