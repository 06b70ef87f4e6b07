// Package cart implements the storefront's cart math as pure functions over
// an ordered slice of line items. The cart itself lives in the customer's
// browser; the server re-runs the same reductions over server-priced lines
// during checkout so totals are never trusted from the client.
package cart

import (
	"github.com/forgeprints/storefront/internal/models"
	"github.com/google/uuid"
)

// AddItem merges newItem into items. An existing line with the same
// (product, variant) key has its quantity incremented; otherwise the item is
// appended. The input slice is never mutated.
func AddItem(items []models.CartItem, newItem models.CartItem) []models.CartItem {

	result := make([]models.CartItem, len(items))
	copy(result, items)

	for i := range result {
		if result[i].SameKey(newItem.ProductID, newItem.VariantID) {
			result[i].Quantity += newItem.Quantity

			return result
		}
	}

	return append(result, newItem)
}

// RemoveItem returns items without the line matching the given key.
func RemoveItem(items []models.CartItem, productID uuid.UUID, variantID *uuid.UUID) []models.CartItem {

	result := make([]models.CartItem, 0, len(items))

	for _, item := range items {
		if item.SameKey(productID, variantID) {
			continue
		}

		result = append(result, item)
	}

	return result
}

// UpdateQuantity replaces the quantity of the matching line. A quantity of
// zero or less removes the line instead.
func UpdateQuantity(items []models.CartItem, productID uuid.UUID, variantID *uuid.UUID, quantity int) []models.CartItem {

	if quantity <= 0 {
		return RemoveItem(items, productID, variantID)
	}

	result := make([]models.CartItem, len(items))
	copy(result, items)

	for i := range result {
		if result[i].SameKey(productID, variantID) {
			result[i].Quantity = quantity

			break
		}
	}

	return result
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(items []models.CartItem) float64 {

	var total float64

	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	return total
}

// TotalItems sums the quantities of all lines.
func TotalItems(items []models.CartItem) int {

	var count int

	for _, item := range items {
		count += item.Quantity
	}

	return count
}
