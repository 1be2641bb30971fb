package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/hungryup/hungryup-backend/internal/config"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchAnyArgs ignores the timestamp arguments of the sliding-window
// commands; the window edges move with the wall clock.
func matchAnyArgs(expected, actual []interface{}) error {
	return nil
}

func setupRateLimitTest(t *testing.T) (repository.RateLimitRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	cfg := &config.Config{
		RateConfig: config.RateConfig{
			MaxAttempts: 5,
			WindowSize:  15 * time.Minute,
		},
	}

	return repository.NewRateLimitRepo(client, cfg), mock
}

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()

	username := "ada@example.com"
	key := "login_attempts:" + username

	t.Run("Success - Attempt Allowed", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimitTest(t)

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(matchAnyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(2)
		mock.ExpectExpire(key, 15*time.Minute).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, username)

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit Exceeded", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimitTest(t)

		oldest := time.Now().Add(-5 * time.Minute).Unix()

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(matchAnyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, 15*time.Minute).SetVal(true)
		mock.CustomMatch(matchAnyArgs).
			ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(oldest), Member: oldest}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, username)

		// Assert: the oldest attempt falls out of the window after ten more
		// minutes.
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.InDelta(t, (10 * time.Minute).Seconds(), float64(retryAfter), 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Unavailable", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimitTest(t)

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").
			SetErr(errors.New("connection refused"))

		// Act
		allowed, _, _, err := repo.CheckLoginRateLimit(ctx, username)

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
	})
}
