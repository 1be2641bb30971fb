package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusNoCharge PaymentStatus = "no_payment_required"
)

// OrderItem captures the unit price at order-creation time; the product
// price is never re-read afterwards.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	Status          OrderStatus      `json:"status"`
	AmountSubtotal  int64            `json:"amount_subtotal"`
	AmountTotal     int64            `json:"amount_total"`
	Items           []OrderItem      `json:"order_items"`
	CheckoutSession *CheckoutSession `json:"checkout_session,omitempty"`
	Payment         *Payment         `json:"payment,omitempty"`
	Shipment        *Shipment        `json:"shipment,omitempty"`
	Receipt         *Receipt         `json:"receipt,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CheckoutSession is the handle to the hosted payment flow. One row per
// order; re-minting after expiry updates the row in place.
type CheckoutSession struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	SessionID string    `json:"session_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Payment struct {
	ID        uuid.UUID     `json:"id"`
	OrderID   uuid.UUID     `json:"order_id"`
	Amount    int64         `json:"amount"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type Shipment struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Detail      string    `json:"detail,omitempty"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	Country     string    `json:"country"`
	DeliverCost int64     `json:"deliver_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

type Receipt struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CheckoutRequest struct {
	OrderID *uuid.UUID `json:"order_id,omitempty"`
}

type CheckoutResponse struct {
	OrderID   uuid.UUID `json:"order_id"`
	SessionID string    `json:"session_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PaymentCompletion is the projection of a provider "checkout completed"
// notification that the order lifecycle needs.
type PaymentCompletion struct {
	SessionID      string
	AmountSubtotal int64
	AmountTotal    int64
	PaymentStatus  PaymentStatus
	PaymentMethod  string
	CustomerName   string
	CustomerPhone  string
	Address        string
	Detail         string
	City           string
	State          string
	ZipCode        string
	Country        string
	DeliverCost    int64
}
