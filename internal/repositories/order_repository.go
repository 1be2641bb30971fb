package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/models"
	"github.com/hungryup/hungryup-backend/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpsertCheckoutSession(ctx context.Context, session *models.CheckoutSession) error
	CompleteOrder(ctx context.Context, completion *models.PaymentCompletion) (uuid.UUID, bool, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder inserts the order and its item snapshots in one transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, user_id, status, amount_subtotal, amount_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query, order.ID, order.UserID, order.Status, order.AmountSubtotal, order.AmountTotal).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	for i := range order.Items {

		item := &order.Items[i]

		if _, err := tx.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT user_id, status, amount_subtotal, amount_total, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&order.UserID, &order.Status, &order.AmountSubtotal, &order.AmountTotal, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(dbCtx, order); err != nil {
		return nil, err
	}

	if err := r.loadAttachments(dbCtx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *models.Order) error {

	query := `
		SELECT oi.id, oi.product_id, oi.quantity, oi.unit_price, oi.created_at,
		       p.id, p.category_id, p.name, p.slug, p.description, p.price, p.image
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {

		var item models.OrderItem
		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt,
			&product.ID, &product.CategoryID, &product.Name, &product.Slug, &product.Description, &product.Price, &product.Image)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = order.ID
		item.Product = product
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

func (r *orderRepository) loadAttachments(ctx context.Context, order *models.Order) error {

	session := &models.CheckoutSession{}

	sessionQuery := `
		SELECT id, order_id, session_id, url, expires_at, created_at, updated_at
		FROM checkout_sessions
		WHERE order_id = $1
	`

	err := r.DB.QueryRowContext(ctx, sessionQuery, order.ID).
		Scan(&session.ID, &session.OrderID, &session.SessionID, &session.URL, &session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt)
	switch {
	case err == nil:
		order.CheckoutSession = session
	case err != sql.ErrNoRows:
		return fmt.Errorf("failed to query checkout session: %w", err)
	}

	payment := &models.Payment{}

	paymentQuery := `
		SELECT id, order_id, amount, method, status, created_at
		FROM payments
		WHERE order_id = $1
	`

	err = r.DB.QueryRowContext(ctx, paymentQuery, order.ID).
		Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.Status, &payment.CreatedAt)
	switch {
	case err == nil:
		order.Payment = payment
	case err != sql.ErrNoRows:
		return fmt.Errorf("failed to query payment: %w", err)
	}

	shipment := &models.Shipment{}

	shipmentQuery := `
		SELECT id, order_id, name, phone, address, detail, city, state, zip_code, country, deliver_cost, created_at
		FROM shipments
		WHERE order_id = $1
	`

	err = r.DB.QueryRowContext(ctx, shipmentQuery, order.ID).
		Scan(&shipment.ID, &shipment.OrderID, &shipment.Name, &shipment.Phone, &shipment.Address, &shipment.Detail,
			&shipment.City, &shipment.State, &shipment.ZipCode, &shipment.Country, &shipment.DeliverCost, &shipment.CreatedAt)
	switch {
	case err == nil:
		order.Shipment = shipment
	case err != sql.ErrNoRows:
		return fmt.Errorf("failed to query shipment: %w", err)
	}

	receipt := &models.Receipt{}

	receiptQuery := `
		SELECT id, order_id, created_at
		FROM receipts
		WHERE order_id = $1
	`

	err = r.DB.QueryRowContext(ctx, receiptQuery, order.ID).
		Scan(&receipt.ID, &receipt.OrderID, &receipt.CreatedAt)
	switch {
	case err == nil:
		order.Receipt = receipt
	case err != sql.ErrNoRows:
		return fmt.Errorf("failed to query receipt: %w", err)
	}

	return nil
}

// UpsertCheckoutSession creates the session row at checkout initiation or
// overwrites it in place when an expired session is re-minted.
func (r *orderRepository) UpsertCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO checkout_sessions (id, order_id, session_id, url, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (order_id)
		DO UPDATE SET session_id = EXCLUDED.session_id, url = EXCLUDED.url, expires_at = EXCLUDED.expires_at, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(dbCtx, query, uuid.New(), session.OrderID, session.SessionID, session.URL, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to upsert checkout session: %w", err)
	}

	return nil
}

// CompleteOrder applies a "checkout completed" notification: the
// pending -> paid transition is a conditional update, and the payment,
// shipment, receipt inserts plus the cart clear ride in the same
// transaction. A duplicate delivery (order already paid) commits nothing
// and returns applied=false.
func (r *orderRepository) CompleteOrder(ctx context.Context, completion *models.PaymentCompletion) (uuid.UUID, bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID, userID uuid.UUID

	lookupQuery := `
		SELECT o.id, o.user_id
		FROM orders o
		JOIN checkout_sessions cs ON cs.order_id = o.id
		WHERE cs.session_id = $1
	`

	if err := tx.QueryRowContext(dbCtx, lookupQuery, completion.SessionID).Scan(&orderID, &userID); err != nil {
		return uuid.Nil, false, err
	}

	updateQuery := `
		UPDATE orders
		SET status = $1, amount_subtotal = $2, amount_total = $3, updated_at = NOW()
		WHERE id = $4 AND status <> $1
	`

	result, err := tx.ExecContext(dbCtx, updateQuery, models.OrderStatusPaid, completion.AmountSubtotal, completion.AmountTotal, orderID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to update order status: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		// Duplicate delivery: the order is already paid.
		return orderID, false, nil
	}

	paymentQuery := `
		INSERT INTO payments (id, order_id, amount, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	if _, err := tx.ExecContext(dbCtx, paymentQuery, uuid.New(), orderID, completion.AmountTotal, completion.PaymentMethod, completion.PaymentStatus); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to insert payment: %w", err)
	}

	shipmentQuery := `
		INSERT INTO shipments (id, order_id, name, phone, address, detail, city, state, zip_code, country, deliver_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`

	_, err = tx.ExecContext(dbCtx, shipmentQuery, uuid.New(), orderID,
		completion.CustomerName, completion.CustomerPhone, completion.Address, completion.Detail,
		completion.City, completion.State, completion.ZipCode, completion.Country, completion.DeliverCost)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to insert shipment: %w", err)
	}

	receiptQuery := `
		INSERT INTO receipts (id, order_id, created_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := tx.ExecContext(dbCtx, receiptQuery, uuid.New(), orderID); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to insert receipt: %w", err)
	}

	clearQuery := `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)
	`

	if _, err := tx.ExecContext(dbCtx, clearQuery, userID); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to commit completion: %w", err)
	}

	return orderID, true, nil
}
