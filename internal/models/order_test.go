package models_test

import (
	"testing"

	"github.com/forgeprints/storefront/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to paid", models.OrderStatusPending, models.OrderStatusPaid, true},
		{"pending to cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"pending to shipped skips payment", models.OrderStatusPending, models.OrderStatusShipped, false},
		{"paid to shipped", models.OrderStatusPaid, models.OrderStatusShipped, true},
		{"paid to cancelled", models.OrderStatusPaid, models.OrderStatusCancelled, true},
		{"paid never regresses to pending", models.OrderStatusPaid, models.OrderStatusPending, false},
		{"paid to paid is not a transition", models.OrderStatusPaid, models.OrderStatusPaid, false},
		{"shipped to delivered", models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{"shipped cannot be cancelled", models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{"delivered is terminal", models.OrderStatusDelivered, models.OrderStatusShipped, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusPending, false},
		{"unknown status has no edges", models.OrderStatus("refunded"), models.OrderStatusPaid, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
