package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTKey = "test-secret"

func mintToken(t *testing.T, key string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)

	return token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)

	return body.Error
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	authMiddleware := middleware.NewAuthMiddleware([]byte(testJWTKey))

	nextCalled := false

	var seenClaims *models.Claims

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		seenClaims, _ = r.Context().Value(middleware.UserContextKey).(*models.Claims)
		w.WriteHeader(http.StatusOK)
	})

	handler := authMiddleware.Authenticate(next)

	t.Run("Failure - Missing Header", func(t *testing.T) {
		// Arrange
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header is required", decodeError(t, rec).Message)
		assert.False(t, nextCalled)
	})

	t.Run("Failure - Malformed Header", func(t *testing.T) {
		// Arrange
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set("Authorization", "Token abc123")
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid authorization format", decodeError(t, rec).Message)
		assert.False(t, nextCalled)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		// Arrange
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, testJWTKey, userID, -time.Minute))
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert: an expired token is reported as expired, not merely invalid.
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token expired", decodeError(t, rec).Message)
		assert.False(t, nextCalled)
	})

	t.Run("Failure - Wrong Signing Key", func(t *testing.T) {
		// Arrange
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "another-secret", userID, time.Hour))
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeError(t, rec).Message)
		assert.False(t, nextCalled)
	})

	t.Run("Success - Claims In Context", func(t *testing.T) {
		// Arrange
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, testJWTKey, userID, time.Hour))
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, nextCalled)
		require.NotNil(t, seenClaims)
		assert.Equal(t, userID, seenClaims.UserID)
	})
}
