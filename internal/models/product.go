package models

import (
	"time"

	"github.com/google/uuid"
)

// Variant is a specific configuration of a base product, e.g. a size or a
// filament colour, with its own optional price override and stock.
type Variant struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Price         *float64  `json:"price,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	Variants      []Variant `json:"variants,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UnitPrice resolves the effective price for a variant of the product,
// falling back to the base price when the variant has no override.
func (p *Product) UnitPrice(variantID *uuid.UUID) (float64, bool) {
	if variantID == nil {
		return p.Price, true
	}

	for _, v := range p.Variants {
		if v.ID == *variantID {
			if v.Price != nil {
				return *v.Price, true
			}

			return p.Price, true
		}
	}

	return 0, false
}

// AvailableStock returns the purchasable stock for a variant, or the base
// stock when no variant is addressed.
func (p *Product) AvailableStock(variantID *uuid.UUID) (int, bool) {
	if variantID == nil {
		return p.StockQuantity, true
	}

	for _, v := range p.Variants {
		if v.ID == *variantID {
			return v.StockQuantity, true
		}
	}

	return 0, false
}

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Description   string  `json:"description,omitempty" validate:"max=5000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	ImageURL      string  `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive      bool    `json:"is_active"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	ImageURL      *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive      *bool    `json:"is_active,omitempty"`
}
