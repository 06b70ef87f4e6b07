package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/forgeprints/storefront/internal/models"
	"github.com/forgeprints/storefront/internal/utils"
	"github.com/google/uuid"
)

// ErrCouponExhausted is returned when the guarded use-count increment inside
// the order transaction finds the coupon already at its max uses.
var ErrCouponExhausted = errors.New("coupon has reached its maximum uses")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, stripeSessionID string) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder persists the order, its items and, when a coupon is attached,
// the guarded coupon use-count increment as one transaction. The increment
// refuses to push current_uses past max_uses, so two concurrent checkouts
// cannot oversell a usage-limited coupon.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var shippingAddress []byte

	if order.ShippingAddress != nil {
		data, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping address: %w", err)
		}

		shippingAddress = data
	}

	return WithTransaction(dbCtx, r.DB, func(tx *sql.Tx) error {

		query := `
			INSERT INTO orders (id, user_id, email, name, phone, status, total_amount, shipping_method, shipping_cost, shipping_address, coupon_id, discount_amount, stripe_session_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		`

		_, err := tx.ExecContext(dbCtx, query, order.ID, order.UserID, order.Email, order.Name, order.Phone,
			order.Status, order.TotalAmount, order.ShippingMethod, order.ShippingCost, shippingAddress,
			order.CouponID, order.DiscountAmount, order.StripeSessionID)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, item := range order.Items {

			query := `
				INSERT INTO order_items (id, order_id, product_id, variant_id, name, variant_name, quantity, unit_price, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			`

			_, err := tx.ExecContext(dbCtx, query, item.ID, order.ID, item.ProductID, item.VariantID,
				item.Name, item.VariantName, item.Quantity, item.UnitPrice)
			if err != nil {
				return fmt.Errorf("failed to insert an order item: %w", err)
			}
		}

		if order.CouponID != nil {

			query := `
				UPDATE coupons
				SET current_uses = current_uses + 1, updated_at = NOW()
				WHERE id = $1 AND is_active = true AND (max_uses IS NULL OR current_uses < max_uses)
			`

			result, err := tx.ExecContext(dbCtx, query, *order.CouponID)
			if err != nil {
				return fmt.Errorf("failed to increment coupon uses: %w", err)
			}

			updatedRows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get updated rows: %w", err)
			}

			if updatedRows == 0 {
				return ErrCouponExhausted
			}
		}

		return nil
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT user_id, email, name, phone, status, total_amount, shipping_method, shipping_cost, shipping_address, coupon_id, discount_amount, stripe_session_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var shippingAddress []byte
	var userID uuid.NullUUID
	var couponID uuid.NullUUID
	var stripeSessionID sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&userID, &order.Email, &order.Name, &order.Phone,
		&order.Status, &order.TotalAmount, &order.ShippingMethod, &order.ShippingCost, &shippingAddress,
		&couponID, &order.DiscountAmount, &stripeSessionID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if userID.Valid {
		order.UserID = &userID.UUID
	}

	if couponID.Valid {
		order.CouponID = &couponID.UUID
	}

	order.StripeSessionID = stripeSessionID.String

	if len(shippingAddress) > 0 {
		if err := json.Unmarshal(shippingAddress, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
		}
	}

	items, err := r.getOrderItems(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT id, product_id, variant_id, name, variant_name, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		var item models.OrderItem
		var variantID uuid.NullUUID

		err := rows.Scan(&item.ID, &item.ProductID, &variantID, &item.Name, &item.VariantName,
			&item.Quantity, &item.UnitPrice, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if variantID.Valid {
			item.VariantID = &variantID.UUID
		}

		item.OrderID = orderID

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, user_id, email, name, phone, status, total_amount, shipping_method, shipping_cost, coupon_id, discount_amount, stripe_session_id, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		var order models.Order
		var userID uuid.NullUUID
		var couponID uuid.NullUUID
		var stripeSessionID sql.NullString

		err := rows.Scan(&order.ID, &userID, &order.Email, &order.Name, &order.Phone, &order.Status,
			&order.TotalAmount, &order.ShippingMethod, &order.ShippingCost, &couponID,
			&order.DiscountAmount, &stripeSessionID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		if userID.Valid {
			order.UserID = &userID.UUID
		}

		if couponID.Valid {
			order.CouponID = &couponID.UUID
		}

		order.StripeSessionID = stripeSessionID.String

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderStatus sets the new status and, when stripeSessionID is
// non-empty, records the external session reference. Transition legality is
// enforced by the order service, not here.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, stripeSessionID string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, stripe_session_id = COALESCE(NULLIF($2, ''), stripe_session_id), updated_at = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, stripeSessionID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
