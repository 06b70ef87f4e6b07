package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions encodes the order state machine. Paid never regresses
// to pending and the terminal states have no outgoing edges.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

type OrderItem struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     uuid.UUID  `json:"order_id"`
	ProductID   uuid.UUID  `json:"product_id"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	Name        string     `json:"name"`
	VariantName string     `json:"variant_name,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          *uuid.UUID  `json:"user_id,omitempty"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone,omitempty"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingMethod  string      `json:"shipping_method"`
	ShippingCost    float64     `json:"shipping_cost"`
	ShippingAddress *Address    `json:"shipping_address,omitempty"`
	CouponID        *uuid.UUID  `json:"coupon_id,omitempty"`
	DiscountAmount  float64     `json:"discount_amount"`
	StripeSessionID string      `json:"stripe_session_id,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

// CheckoutLine is a client-submitted cart line. Only product/variant identity
// and quantity are trusted; price and naming are resolved server-side.
type CheckoutLine struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

type CheckoutRequest struct {
	Email           string         `json:"email" validate:"required,email"`
	Name            string         `json:"name" validate:"required"`
	Phone           string         `json:"phone,omitempty"`
	UserID          *uuid.UUID     `json:"user_id,omitempty"`
	Items           []CheckoutLine `json:"items" validate:"required,min=1,dive"`
	ShippingMethod  string         `json:"shipping_method" validate:"required,oneof=standard express"`
	ShippingAddress *Address       `json:"shipping_address,omitempty" validate:"omitempty"`
	CouponCode      string         `json:"coupon_code,omitempty"`
}

type CheckoutResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	CheckoutURL string    `json:"checkout_url"`
}
