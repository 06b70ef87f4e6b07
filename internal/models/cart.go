package models

import (
	"github.com/google/uuid"
)

// CartItem is a single line in a customer's cart. Identity is the
// (ProductID, VariantID) pair; the variant is nil for base products.
type CartItem struct {
	ProductID   uuid.UUID  `json:"product_id" validate:"required"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	Name        string     `json:"name"`
	VariantName string     `json:"variant_name,omitempty"`
	UnitPrice   float64    `json:"unit_price" validate:"gte=0"`
	Quantity    int        `json:"quantity" validate:"required,min=1"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// SameKey reports whether two items refer to the same product/variant pair.
func (c CartItem) SameKey(productID uuid.UUID, variantID *uuid.UUID) bool {
	if c.ProductID != productID {
		return false
	}

	if c.VariantID == nil || variantID == nil {
		return c.VariantID == nil && variantID == nil
	}

	return *c.VariantID == *variantID
}
