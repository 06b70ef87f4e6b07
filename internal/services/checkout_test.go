package service_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/forgeprints/storefront/internal/config"
	appErrors "github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repoMocks "github.com/forgeprints/storefront/internal/repositories/mocks"
	service "github.com/forgeprints/storefront/internal/services"
	serviceMocks "github.com/forgeprints/storefront/internal/services/mocks"
	pkgstripe "github.com/forgeprints/storefront/pkg/stripe"
	stripeMocks "github.com/forgeprints/storefront/pkg/stripe/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

func checkoutConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Stripe.Currency = "eur"
	cfg.Stripe.SuccessURL = "https://shop.example.com/success"
	cfg.Stripe.CancelURL = "https://shop.example.com/cancel"
	cfg.Shipping.StandardCost = 4.90
	cfg.Shipping.ExpressCost = 9.90
	cfg.Shipping.FreeThreshold = 75

	return cfg
}

func catalogProduct(price float64, stock int) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Articulated Dragon",
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func checkoutRequest(product *models.Product, qty int) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		Email:          "customer@example.com",
		Name:           "Jamie",
		Items:          []models.CheckoutLine{{ProductID: product.ID, Quantity: qty}},
		ShippingMethod: "standard",
	}
}

func TestCheckout(t *testing.T) {
	ctx := t.Context()

	t.Run("prices the cart from the catalog", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		mockCoupons := serviceMocks.NewCouponService(t)
		mockOrders := serviceMocks.NewOrderService(t)
		mockStripe := stripeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockProducts, mockCoupons, mockOrders, mockStripe, checkoutConfig())

		product := catalogProduct(24.90, 10)
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		mockOrders.On("CreateOrder", ctx, mock.MatchedBy(func(o *models.Order) bool {
			return o.Status == models.OrderStatusPending &&
				o.TotalAmount == 54.70 && // 2 * 24.90 + 4.90 shipping
				len(o.Items) == 1 && o.Items[0].UnitPrice == 24.90
		})).Return(&models.Order{}, nil).Once()

		mockStripe.On("CreateCheckoutSession", mock.MatchedBy(func(p *pkgstripe.CheckoutParams) bool {
			return p.CustomerEmail == "customer@example.com" && len(p.LineItems) == 2
		})).Return(&stripe.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_123"}, nil).Once()

		resp, err := checkoutService.Checkout(ctx, checkoutRequest(product, 2))

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.OrderID)
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_123", resp.CheckoutURL)
	})

	t.Run("standard shipping is free above the threshold", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		mockOrders := serviceMocks.NewOrderService(t)
		mockStripe := stripeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockProducts, serviceMocks.NewCouponService(t), mockOrders, mockStripe, checkoutConfig())

		product := catalogProduct(40, 10)
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		mockOrders.On("CreateOrder", ctx, mock.MatchedBy(func(o *models.Order) bool {
			return o.ShippingCost == 0 && o.TotalAmount == 80.0
		})).Return(&models.Order{}, nil).Once()
		mockStripe.On("CreateCheckoutSession", mock.Anything).Return(&stripe.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_123"}, nil).Once()

		_, err := checkoutService.Checkout(ctx, checkoutRequest(product, 2))

		assert.NoError(t, err)
	})

	t.Run("duplicate lines merge before the stock check", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		checkoutService := service.NewCheckoutService(mockProducts, serviceMocks.NewCouponService(t), serviceMocks.NewOrderService(t), stripeMocks.NewClient(t), checkoutConfig())

		product := catalogProduct(24.90, 3)
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		req := checkoutRequest(product, 2)
		req.Items = append(req.Items, models.CheckoutLine{ProductID: product.ID, Quantity: 2})

		resp, err := checkoutService.Checkout(ctx, req)

		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Contains(t, appErr.Message, "Insufficient stock")
	})

	t.Run("inactive product is rejected", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		checkoutService := service.NewCheckoutService(mockProducts, serviceMocks.NewCouponService(t), serviceMocks.NewOrderService(t), stripeMocks.NewClient(t), checkoutConfig())

		product := catalogProduct(24.90, 10)
		product.IsActive = false
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		_, err := checkoutService.Checkout(ctx, checkoutRequest(product, 1))

		assert.Error(t, err)
	})

	t.Run("unknown product is a not-found", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		checkoutService := service.NewCheckoutService(mockProducts, serviceMocks.NewCouponService(t), serviceMocks.NewOrderService(t), stripeMocks.NewClient(t), checkoutConfig())

		productID := uuid.New()
		mockProducts.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		_, err := checkoutService.Checkout(ctx, &models.CheckoutRequest{
			Email:          "customer@example.com",
			Name:           "Jamie",
			Items:          []models.CheckoutLine{{ProductID: productID, Quantity: 1}},
			ShippingMethod: "standard",
		})

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("valid coupon discounts the order", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		mockCoupons := serviceMocks.NewCouponService(t)
		mockOrders := serviceMocks.NewOrderService(t)
		mockStripe := stripeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockProducts, mockCoupons, mockOrders, mockStripe, checkoutConfig())

		product := catalogProduct(50, 10)
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		couponID := uuid.New()
		mockCoupons.On("Validate", ctx, &models.ValidateCouponRequest{Code: "SAVE10", Subtotal: 100}).Return(&models.CouponValidationResult{
			Valid: true,
			Coupon: &models.CouponSummary{
				ID:            couponID,
				Code:          "SAVE10",
				DiscountType:  models.DiscountTypePercentage,
				DiscountValue: 10,
			},
		}, nil).Once()

		mockOrders.On("CreateOrder", ctx, mock.MatchedBy(func(o *models.Order) bool {
			// 100 - 10% = 90, still above the free shipping threshold
			return o.DiscountAmount == 10.0 && o.TotalAmount == 90.0 && o.CouponID != nil && *o.CouponID == couponID
		})).Return(&models.Order{}, nil).Once()

		// A discounted order collapses to a single total line.
		mockStripe.On("CreateCheckoutSession", mock.MatchedBy(func(p *pkgstripe.CheckoutParams) bool {
			return len(p.LineItems) == 1 && p.LineItems[0].UnitAmount == 9000
		})).Return(&stripe.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_123"}, nil).Once()

		req := checkoutRequest(product, 2)
		req.CouponCode = "SAVE10"

		_, err := checkoutService.Checkout(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("invalid coupon aborts the checkout", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		mockCoupons := serviceMocks.NewCouponService(t)
		checkoutService := service.NewCheckoutService(mockProducts, mockCoupons, serviceMocks.NewOrderService(t), stripeMocks.NewClient(t), checkoutConfig())

		product := catalogProduct(50, 10)
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCoupons.On("Validate", ctx, mock.Anything).Return(&models.CouponValidationResult{
			Valid: false,
			Error: "This coupon has expired",
		}, nil).Once()

		req := checkoutRequest(product, 1)
		req.CouponCode = "OLD"

		_, err := checkoutService.Checkout(ctx, req)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Equal(t, "This coupon has expired", appErr.Message)
	})

	t.Run("unknown shipping method", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		checkoutService := service.NewCheckoutService(mockProducts, serviceMocks.NewCouponService(t), serviceMocks.NewOrderService(t), stripeMocks.NewClient(t), checkoutConfig())

		product := catalogProduct(24.90, 10)
		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		req := checkoutRequest(product, 1)
		req.ShippingMethod = "drone"

		_, err := checkoutService.Checkout(ctx, req)

		assert.Error(t, err)
	})

	t.Run("variant price override and stock", func(t *testing.T) {
		mockProducts := repoMocks.NewProductRepository(t)
		mockOrders := serviceMocks.NewOrderService(t)
		mockStripe := stripeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockProducts, serviceMocks.NewCouponService(t), mockOrders, mockStripe, checkoutConfig())

		product := catalogProduct(24.90, 0)
		variantPrice := 29.90
		variant := models.Variant{ID: uuid.New(), ProductID: product.ID, Name: "Large / Gold", Price: &variantPrice, StockQuantity: 5}
		product.Variants = []models.Variant{variant}

		mockProducts.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockOrders.On("CreateOrder", ctx, mock.MatchedBy(func(o *models.Order) bool {
			return o.Items[0].UnitPrice == 29.90 && o.Items[0].VariantName == "Large / Gold"
		})).Return(&models.Order{}, nil).Once()
		mockStripe.On("CreateCheckoutSession", mock.Anything).Return(&stripe.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_123"}, nil).Once()

		req := checkoutRequest(product, 1)
		req.Items[0].VariantID = &variant.ID

		_, err := checkoutService.Checkout(ctx, req)

		assert.NoError(t, err)
	})
}
