package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo)

	return repo, mock
}

func TestGetCartByUserID(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	userID := uuid.New()
	cartID := uuid.New()
	now := time.Now()

	t.Run("Success - Cart With Items", func(t *testing.T) {
		// Arrange
		itemID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
				AddRow(cartID, userID, now, now))

		mock.ExpectQuery(`SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity`).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "cart_id", "product_id", "quantity", "created_at", "updated_at",
				"p.id", "p.category_id", "p.name", "p.slug", "p.description", "p.price", "p.image",
			}).AddRow(itemID, cartID, productID, 2, now, now,
				productID, uuid.New(), "Margherita", "margherita", "Classic pizza", int64(1200), "pizza.jpg"))

		// Act
		cart, err := repo.GetCartByUserID(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, cartID, cart.ID)
		assert.Equal(t, int64(2), cart.Items[0].Quantity)
		require.NotNil(t, cart.Items[0].Product)
		assert.Equal(t, int64(1200), cart.Items[0].Product.Price)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		// Act
		cart, err := repo.GetCartByUserID(ctx, userID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertItem(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs(sqlmock.AnyArg(), cartID, productID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpsertItem(ctx, cartID, productID, 3)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("connection reset")
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs(sqlmock.AnyArg(), cartID, productID, int64(1)).
			WillReturnError(dbErr)

		// Act
		err := repo.UpsertItem(ctx, cartID, productID, 1)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteItem(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()
	itemID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`DELETE FROM cart_items WHERE id = \$1 AND cart_id = \$2`).
			WithArgs(itemID, cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.DeleteItem(ctx, cartID, itemID)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`DELETE FROM cart_items WHERE id = \$1 AND cart_id = \$2`).
			WithArgs(itemID, cartID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.DeleteItem(ctx, cartID, itemID)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
