package repository_test

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewRepoTest(t *testing.T) (repository.ReviewRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewReviewRepo(db)
	require.NotNil(t, repo)

	return repo, mock
}

func TestLikeProductRepo(t *testing.T) {
	repo, mock := setupReviewRepoTest(t)
	ctx := t.Context()

	productID := uuid.New()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`INSERT INTO product_likes`).
			WithArgs(productID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.LikeProduct(ctx, productID, userID)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Like Surfaces The Conflict", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`INSERT INTO product_likes`).
			WithArgs(productID, userID).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "product_likes_pkey"})

		// Act
		err := repo.LikeProduct(ctx, productID, userID)

		// Assert
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err, "product_likes_pkey"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnlikeProductRepo(t *testing.T) {
	repo, mock := setupReviewRepoTest(t)
	ctx := t.Context()

	productID := uuid.New()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`DELETE FROM product_likes`).
			WithArgs(productID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UnlikeProduct(ctx, productID, userID)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Never Liked", func(t *testing.T) {
		// Arrange: zero rows deleted must not pass for success.
		mock.ExpectExec(`DELETE FROM product_likes`).
			WithArgs(productID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UnlikeProduct(ctx, productID, userID)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
