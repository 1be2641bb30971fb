package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/api/handlers"
	appErrors "github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/services/mocks"
	"github.com/hungryup/hungryup-backend/internal/testutils"
	"github.com/hungryup/hungryup-backend/internal/utils/response"
	stripeClient "github.com/hungryup/hungryup-backend/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

type mockStripeClient struct {
	mock.Mock
}

func (m *mockStripeClient) CreateCheckoutSession(input *stripeClient.SessionInput) (*stripe.CheckoutSession, error) {
	args := m.Called(input)

	if session, ok := args.Get(0).(*stripe.CheckoutSession); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStripeClient) VerifyWebhookSignature(payload []byte, signature string) (stripeClient.Event, error) {
	args := m.Called(payload, signature)

	return args.Get(0).(stripeClient.Event), args.Error(1)
}

func setupOrderHandlerTest() (*handlers.OrderHandler, *mocks.OrderService, *mockStripeClient) {
	orderService := new(mocks.OrderService)
	stripeMock := new(mockStripeClient)

	return handlers.NewOrderHandler(orderService, stripeMock), orderService, stripeMock
}

func TestCheckoutHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Empty Body Checks Out The Cart", func(t *testing.T) {
		// Arrange
		handler, orderService, _ := setupOrderHandlerTest()

		orderID := uuid.New()
		orderService.On("Checkout", mock.Anything, userID, &models.CheckoutRequest{}).
			Return(&models.CheckoutResponse{
				OrderID:   orderID,
				SessionID: "cs_test_1",
				URL:       "https://pay.example/cs_test_1",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", nil, userID, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var body response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.True(t, body.Success)
		orderService.AssertExpectations(t)
	})

	t.Run("Failure - No Authentication", func(t *testing.T) {
		// Arrange
		handler, orderService, _ := setupOrderHandlerTest()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		orderService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWebhookHandler(t *testing.T) {

	t.Run("Failure - Bad Signature Is Rejected", func(t *testing.T) {
		// Arrange
		handler, orderService, stripeMock := setupOrderHandlerTest()

		payload := `{"id":"evt_1"}`
		stripeMock.On("VerifyWebhookSignature", []byte(payload), "t=bad").
			Return(stripeClient.Event{}, errors.New("signature mismatch")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "t=bad")
		rec := httptest.NewRecorder()

		// Act
		handler.Webhook().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.NotNil(t, body.Error)
		assert.Equal(t, "Invalid webhook signature", body.Error.Message)
		orderService.AssertNotCalled(t, "ProcessWebhook", mock.Anything, mock.Anything)
	})

	t.Run("Success - Verified Event Is Acknowledged", func(t *testing.T) {
		// Arrange
		handler, orderService, stripeMock := setupOrderHandlerTest()

		payload := `{"id":"evt_2"}`
		event := stripeClient.Event{ID: "evt_2", Type: "checkout.session.completed"}

		stripeMock.On("VerifyWebhookSignature", []byte(payload), "t=good").Return(event, nil).Once()
		orderService.On("ProcessWebhook", mock.Anything, event).Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "t=good")
		rec := httptest.NewRecorder()

		// Act
		handler.Webhook().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"received":true}}`, rec.Body.String())
		orderService.AssertExpectations(t)
	})

	t.Run("Failure - Processing Failure Is Not Acknowledged", func(t *testing.T) {
		// Arrange: a 2xx would stop Stripe from redelivering, losing the
		// payment; a 5xx makes it retry the idempotent completion.
		handler, orderService, stripeMock := setupOrderHandlerTest()

		payload := `{"id":"evt_3"}`
		event := stripeClient.Event{ID: "evt_3", Type: "checkout.session.completed"}

		stripeMock.On("VerifyWebhookSignature", []byte(payload), "t=good").Return(event, nil).Once()
		orderService.On("ProcessWebhook", mock.Anything, event).
			Return(appErrors.DatabaseError("Failed to complete order")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "t=good")
		rec := httptest.NewRecorder()

		// Act
		handler.Webhook().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.False(t, body.Success)
		orderService.AssertExpectations(t)
	})
}
