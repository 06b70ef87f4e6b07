package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID            uuid.UUID    `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	MinAmount     *float64     `json:"min_amount,omitempty"`
	MaxUses       *int         `json:"max_uses,omitempty"`
	CurrentUses   int          `json:"current_uses"`
	IsActive      bool         `json:"is_active"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// CouponSummary is the subset of coupon fields exposed to the storefront
// once a code has validated.
type CouponSummary struct {
	ID            uuid.UUID    `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
}

type ValidateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type CouponValidationResult struct {
	Valid  bool           `json:"valid"`
	Coupon *CouponSummary `json:"coupon,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type CreateCouponRequest struct {
	Code          string       `json:"code" validate:"required,min=3,max=32"`
	DiscountType  DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue float64      `json:"discount_value" validate:"required,gt=0"`
	MinAmount     *float64     `json:"min_amount,omitempty" validate:"omitempty,gt=0"`
	MaxUses       *int         `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	IsActive      bool         `json:"is_active"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

type UpdateCouponRequest struct {
	DiscountType  *DiscountType `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue *float64      `json:"discount_value,omitempty" validate:"omitempty,gt=0"`
	MinAmount     *float64      `json:"min_amount,omitempty" validate:"omitempty,gt=0"`
	MaxUses       *int          `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	IsActive      *bool         `json:"is_active,omitempty"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
}

// NormalizeCouponCode maps user input onto the stored form of a code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
