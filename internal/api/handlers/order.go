package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	service "github.com/hungryup/hungryup-backend/internal/services"
	"github.com/hungryup/hungryup-backend/internal/utils"
	"github.com/hungryup/hungryup-backend/internal/utils/response"
	stripeClient "github.com/hungryup/hungryup-backend/pkg/stripe"
)

// Stripe caps webhook payloads; anything larger is not a legitimate event.
const maxWebhookBody = 65536

type OrderHandler struct {
	orderService service.OrderService
	stripe       stripeClient.Client
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, stripe stripeClient.Client) *OrderHandler {
	return &OrderHandler{orderService: orderService, stripe: stripe, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Start or resume checkout
//	@Description	Creates an order from the cart and returns a hosted payment URL. With order_id set, resumes payment for a pending order, reusing the existing session while it is unexpired.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	false	"Optional pending order to resume"
//	@Success		200			{object}	models.CheckoutResponse	"Hosted checkout session"
//	@Failure		400			{object}	response.ErrorResponse	"Empty cart or order already paid"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse	"Order belongs to another user"
//	@Failure		404			{object}	response.ErrorResponse	"Order not found"
//	@Failure		500			{object}	response.ErrorResponse	"Payment provider error"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CheckoutRequest

		// The body is optional; an empty request checks out the cart.
		if r.Body != nil && r.ContentLength != 0 {
			if !utils.ParseAndValidate(r, w, &req, h.validator) {
				logger.Warn("Invalid checkout input")

				return
			}
		}

		result, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout session ready", slog.String("orderId", result.OrderID.String()))
		response.Success(w, http.StatusOK, result)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Returns the authenticated user's order with items, session, payment, shipment, and receipt.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Order belongs to another user"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.UserID, orderID)
		if err != nil {
			logger.Warn("Order lookup failed", slog.String("orderId", orderID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// Webhook godoc
//	@Summary		Payment provider webhook
//	@Description	Receives signed Stripe events. A bad signature is rejected with 400. Ignored and duplicate events are acknowledged with 200; a failure while applying a payment completion returns 5xx so Stripe redelivers.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]bool			"Acknowledged"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid payload or signature"
//	@Failure		500	{object}	response.ErrorResponse	"Processing failed, retry expected"
//	@Router			/payments/webhook [post]
func (h *OrderHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			logger.Error("Failed to read webhook body", slog.Any("error", err))
			response.Error(w, errors.BadRequestError("Unable to read request body"))

			return
		}

		event, err := h.stripe.VerifyWebhookSignature(payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			logger.Warn("Webhook signature verification failed", slog.Any("error", err))
			response.Error(w, errors.BadRequestError("Invalid webhook signature"))

			return
		}

		if err := h.orderService.ProcessWebhook(r.Context(), event); err != nil {
			// Non-2xx makes Stripe redeliver; the completion transition is
			// idempotent, so the retry is safe.
			logger.Error("Webhook processing failed", slog.String("eventId", event.ID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
