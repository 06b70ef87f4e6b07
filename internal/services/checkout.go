package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/forgeprints/storefront/internal/cart"
	"github.com/forgeprints/storefront/internal/config"
	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/forgeprints/storefront/pkg/stripe"
	"github.com/google/uuid"
)

type CheckoutService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	products     repository.ProductRepository
	coupons      CouponService
	orders       OrderService
	stripeClient stripe.Client
	cfg          *config.Config
}

func NewCheckoutService(products repository.ProductRepository, coupons CouponService, orders OrderService, stripeClient stripe.Client, cfg *config.Config) CheckoutService {
	return &checkoutService{products: products, coupons: coupons, orders: orders, stripeClient: stripeClient, cfg: cfg}
}

// Checkout turns a client cart into a pending order and a hosted payment
// session. Only product identity and quantities are taken from the request;
// names, prices and totals are resolved against the catalog here.
func (s *checkoutService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	items, err := s.priceLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal(items)

	var couponID *uuid.UUID
	var discount float64

	if req.CouponCode != "" {

		result, err := s.coupons.Validate(ctx, &models.ValidateCouponRequest{Code: req.CouponCode, Subtotal: subtotal})
		if err != nil {
			return nil, err
		}

		if !result.Valid {
			return nil, errors.BadRequestError(result.Error)
		}

		couponID = &result.Coupon.ID
		discount = CalculateDiscount(result.Coupon.DiscountType, result.Coupon.DiscountValue, subtotal)
	}

	shippingCost, err := s.shippingCost(req.ShippingMethod, subtotal-discount)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		Status:          models.OrderStatusPending,
		TotalAmount:     roundMoney(subtotal - discount + shippingCost),
		ShippingMethod:  req.ShippingMethod,
		ShippingCost:    shippingCost,
		ShippingAddress: req.ShippingAddress,
		CouponID:        couponID,
		DiscountAmount:  roundMoney(discount),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			Name:        item.Name,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			CreatedAt:   time.Now(),
		})
	}

	if _, err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	session, err := s.stripeClient.CreateCheckoutSession(&stripe.CheckoutParams{
		OrderID:       order.ID.String(),
		CustomerEmail: order.Email,
		Currency:      s.cfg.Stripe.Currency,
		SuccessURL:    s.cfg.Stripe.SuccessURL,
		CancelURL:     s.cfg.Stripe.CancelURL,
		LineItems:     checkoutLineItems(order),
	})
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to create checkout session").WithError(err)
	}

	return &models.CheckoutResponse{OrderID: order.ID, CheckoutURL: session.URL}, nil
}

// priceLines resolves the submitted lines against the catalog, merging
// duplicate (product, variant) keys through the cart reducer so stock is
// checked against the combined quantity.
func (s *checkoutService) priceLines(ctx context.Context, lines []models.CheckoutLine) ([]models.CartItem, error) {

	productsByID := make(map[uuid.UUID]*models.Product)

	var items []models.CartItem

	for _, line := range lines {

		product, ok := productsByID[line.ProductID]
		if !ok {

			var err error

			product, err = s.products.GetProductByID(ctx, line.ProductID)
			if err != nil {
				if stdErrors.Is(err, sql.ErrNoRows) {
					return nil, errors.NotFoundError("Product not found: " + line.ProductID.String())
				}

				return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
			}

			productsByID[line.ProductID] = product
		}

		if !product.IsActive {
			return nil, errors.BadRequestError("Product is not available: " + product.Name)
		}

		unitPrice, ok := product.UnitPrice(line.VariantID)
		if !ok {
			return nil, errors.BadRequestError("Unknown variant for product: " + product.Name)
		}

		variantName := ""
		if line.VariantID != nil {
			for _, v := range product.Variants {
				if v.ID == *line.VariantID {
					variantName = v.Name
				}
			}
		}

		items = cart.AddItem(items, models.CartItem{
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			Name:        product.Name,
			VariantName: variantName,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			ImageURL:    product.ImageURL,
		})
	}

	for _, item := range items {

		product := productsByID[item.ProductID]

		stock, _ := product.AvailableStock(item.VariantID)
		if stock < item.Quantity {
			return nil, errors.BadRequestError("Insufficient stock for product: " + item.Name)
		}
	}

	return items, nil
}

func (s *checkoutService) shippingCost(method string, payable float64) (float64, error) {

	switch method {
	case "standard":
		if payable >= s.cfg.Shipping.FreeThreshold {
			return 0, nil
		}

		return s.cfg.Shipping.StandardCost, nil
	case "express":
		return s.cfg.Shipping.ExpressCost, nil
	default:
		return 0, errors.BadRequestError("Unknown shipping method: " + method)
	}
}

// checkoutLineItems maps the order onto hosted-checkout lines. With a
// discount in play the lines collapse into a single order-total line, since
// the provider cannot represent an already-applied discount per line.
func checkoutLineItems(order *models.Order) []stripe.LineItem {

	if order.DiscountAmount > 0 {
		return []stripe.LineItem{{
			Name:       fmt.Sprintf("ForgePrints order %s", order.ID),
			UnitAmount: toCents(order.TotalAmount),
			Quantity:   1,
		}}
	}

	lineItems := make([]stripe.LineItem, 0, len(order.Items)+1)

	for _, item := range order.Items {
		name := item.Name
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}

		lineItems = append(lineItems, stripe.LineItem{
			Name:       name,
			UnitAmount: toCents(item.UnitPrice),
			Quantity:   int64(item.Quantity),
		})
	}

	if order.ShippingCost > 0 {
		lineItems = append(lineItems, stripe.LineItem{
			Name:       fmt.Sprintf("Shipping (%s)", order.ShippingMethod),
			UnitAmount: toCents(order.ShippingCost),
			Quantity:   1,
		})
	}

	return lineItems
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
