package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/pricing"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	stripeClient "github.com/hungryup/hungryup-backend/pkg/stripe"
	"github.com/stripe/stripe-go/v81"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ProcessWebhook(ctx context.Context, event stripeClient.Event) error
}

type orderService struct {
	repo          repository.OrderRepository
	cartRepo      repository.CartRepository
	userRepo      repository.UserRepository
	stripe        stripeClient.Client
	notifications NotificationService
}

func NewOrderService(repo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, stripe stripeClient.Client, notifications NotificationService) OrderService {
	return &orderService{
		repo:          repo,
		cartRepo:      cartRepo,
		userRepo:      userRepo,
		stripe:        stripe,
		notifications: notifications,
	}
}

// Checkout either resumes payment for an existing pending order or turns the
// caller's cart into a new one. An unexpired hosted session is returned as
// is; an expired one is re-minted from the stored price snapshots, never
// from current catalog prices.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	if req.OrderID != nil {
		return s.resumeCheckout(ctx, userID, *req.OrderID)
	}

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, errors.EmptyCartError("Cannot checkout an empty cart")
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.OrderStatusPending,
	}

	lineItems := make([]pricing.LineItem, 0, len(cart.Items))

	for _, cartItem := range cart.Items {

		if cartItem.Product == nil {
			return nil, errors.InternalError("Cart item is missing its product")
		}

		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			UnitPrice: cartItem.Product.Price,
			Product:   cartItem.Product,
		})

		lineItems = append(lineItems, pricing.LineItem{UnitPrice: cartItem.Product.Price, Quantity: cartItem.Quantity})
	}

	order.AmountSubtotal = pricing.ComputeTotal(lineItems)
	order.AmountTotal = order.AmountSubtotal

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	return s.mintSession(ctx, userID, order)
}

func (s *orderService) resumeCheckout(ctx context.Context, userID, orderID uuid.UUID) (*models.CheckoutResponse, error) {

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.UserID != userID {
		return nil, errors.ForbiddenError("Order belongs to another user")
	}

	if order.Status == models.OrderStatusPaid {
		return nil, errors.BadRequestError("Order has already been paid")
	}

	if order.CheckoutSession != nil && order.CheckoutSession.ExpiresAt.After(time.Now()) {
		return &models.CheckoutResponse{
			OrderID:   order.ID,
			SessionID: order.CheckoutSession.SessionID,
			URL:       order.CheckoutSession.URL,
			ExpiresAt: order.CheckoutSession.ExpiresAt,
		}, nil
	}

	return s.mintSession(ctx, userID, order)
}

func (s *orderService) mintSession(ctx context.Context, userID uuid.UUID, order *models.Order) (*models.CheckoutResponse, error) {

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	input := &stripeClient.SessionInput{
		OrderID:       order.ID.String(),
		CustomerEmail: user.Email,
	}

	for _, item := range order.Items {

		name := "Item"
		image := ""

		if item.Product != nil {
			name = item.Product.Name
			image = item.Product.Image
		}

		input.Items = append(input.Items, stripeClient.LineItem{
			Name:       name,
			Image:      image,
			UnitAmount: item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}

	session, err := s.stripe.CreateCheckoutSession(input)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to create checkout session").WithError(err)
	}

	checkoutSession := &models.CheckoutSession{
		OrderID:   order.ID,
		SessionID: session.ID,
		URL:       session.URL,
		ExpiresAt: time.Unix(session.ExpiresAt, 0),
	}

	if err := s.repo.UpsertCheckoutSession(ctx, checkoutSession); err != nil {
		return nil, errors.DatabaseError("Failed to store checkout session").WithError(err)
	}

	return &models.CheckoutResponse{
		OrderID:   order.ID,
		SessionID: checkoutSession.SessionID,
		URL:       checkoutSession.URL,
		ExpiresAt: checkoutSession.ExpiresAt,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.UserID != userID {
		return nil, errors.ForbiddenError("Order belongs to another user")
	}

	return order, nil
}

// ProcessWebhook applies a verified provider event. Payment completions run
// through an idempotent transition, so redelivered events are no-ops.
func (s *orderService) ProcessWebhook(ctx context.Context, event stripeClient.Event) error {

	logger := middleware.LoggerFromContext(ctx)

	switch event.Type {

	case "checkout.session.completed", "checkout.session.async_payment_succeeded":

		var session stripe.CheckoutSession

		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return errors.BadRequestError("Malformed checkout session payload").WithError(err)
		}

		if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
			// Delayed payment method; fulfillment waits for
			// async_payment_succeeded.
			logger.Info("checkout completed with payment pending", slog.String("session_id", session.ID))

			return nil
		}

		return s.completeOrder(ctx, &session)

	case "checkout.session.expired":
		logger.Info("checkout session expired", slog.String("event_id", event.ID))

	case "checkout.session.async_payment_failed":
		logger.Warn("async payment failed", slog.String("event_id", event.ID))

	default:
		logger.Debug("ignoring webhook event", slog.String("type", string(event.Type)))
	}

	return nil
}

func (s *orderService) completeOrder(ctx context.Context, session *stripe.CheckoutSession) error {

	logger := middleware.LoggerFromContext(ctx)

	completion := completionFromSession(session)

	orderID, applied, err := s.repo.CompleteOrder(ctx, completion)
	if err != nil {
		return errors.DatabaseError("Failed to complete order").WithError(err)
	}

	if !applied {
		logger.Info("duplicate payment completion ignored", slog.String("order_id", orderID.String()))

		return nil
	}

	logger.Info("order paid", slog.String("order_id", orderID.String()))

	// Receipt email is best effort; the order is already paid.
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {

		emailReq := &models.EmailNotificationRequest{
			To:      session.CustomerDetails.Email,
			Subject: "Your order is confirmed",
			Content: fmt.Sprintf("Thanks for your purchase! Order %s has been paid and is being prepared.", orderID),
			Metadata: map[string]any{
				"order_id": orderID.String(),
			},
		}

		if _, err := s.notifications.SendEmail(ctx, emailReq); err != nil {
			logger.Error("failed to send receipt email", slog.String("order_id", orderID.String()), slog.Any("error", err))
		}
	}

	return nil
}

func completionFromSession(session *stripe.CheckoutSession) *models.PaymentCompletion {

	completion := &models.PaymentCompletion{
		SessionID:      session.ID,
		AmountSubtotal: session.AmountSubtotal,
		AmountTotal:    session.AmountTotal,
		PaymentStatus:  models.PaymentStatus(session.PaymentStatus),
		PaymentMethod:  "card",
	}

	if len(session.PaymentMethodTypes) > 0 {
		completion.PaymentMethod = session.PaymentMethodTypes[0]
	}

	if session.CustomerDetails != nil {
		completion.CustomerName = session.CustomerDetails.Name
		completion.CustomerPhone = session.CustomerDetails.Phone
	}

	if session.ShippingDetails != nil {

		if session.ShippingDetails.Name != "" {
			completion.CustomerName = session.ShippingDetails.Name
		}

		if addr := session.ShippingDetails.Address; addr != nil {
			completion.Address = addr.Line1
			completion.Detail = addr.Line2
			completion.City = addr.City
			completion.State = addr.State
			completion.ZipCode = addr.PostalCode
			completion.Country = addr.Country
		}
	}

	if session.ShippingCost != nil {
		completion.DeliverCost = session.ShippingCost.AmountTotal
	}

	return completion
}
