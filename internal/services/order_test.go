package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	alertMocks "github.com/forgeprints/storefront/internal/alerts/mocks"
	appErrors "github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
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

func pendingOrder() *models.Order {
	orderID := uuid.New()

	return &models.Order{
		ID:          orderID,
		Email:       "customer@example.com",
		Name:        "Jamie",
		Status:      models.OrderStatusPending,
		TotalAmount: 54.80,
		Items: []models.OrderItem{{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: uuid.New(),
			Name:      "Articulated Dragon",
			Quantity:  2,
			UnitPrice: 24.90,
		}},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func sessionEvent(eventType string, object map[string]any) pkgstripe.Event {
	return pkgstripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Object: object},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		order := pendingOrder()
		mockRepo.On("CreateOrder", ctx, order).Return(nil).Once()

		created, err := orderService.CreateOrder(ctx, order)

		assert.NoError(t, err)
		assert.Equal(t, order.ID, created.ID)
	})

	t.Run("empty order is rejected", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		order := pendingOrder()
		order.Items = nil

		created, err := orderService.CreateOrder(ctx, order)

		assert.Error(t, err)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("exhausted coupon maps to a conflict", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		order := pendingOrder()
		mockRepo.On("CreateOrder", ctx, order).Return(repository.ErrCouponExhausted).Once()

		created, err := orderService.CreateOrder(ctx, order)

		assert.Error(t, err)
		assert.Nil(t, created)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeCouponExhausted, appErr.Code)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := t.Context()

	t.Run("legal transition", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		order := pendingOrder()
		order.Status = models.OrderStatusPaid
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusShipped, "").Return(nil).Once()

		updated, err := orderService.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped, "")

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, updated.Status)
	})

	t.Run("paid order cannot regress to pending", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		order := pendingOrder()
		order.Status = models.OrderStatusPaid
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		updated, err := orderService.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPending, "")

		assert.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidTransition, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		order := pendingOrder()
		order.Status = models.OrderStatusDelivered
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		_, err := orderService.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled, "")

		assert.Error(t, err)
	})

	t.Run("unknown order", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		orderService := service.NewOrderService(mockRepo, stripeMocks.NewClient(t), serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		id := uuid.New()
		mockRepo.On("GetOrderByID", ctx, id).Return(nil, sql.ErrNoRows).Once()

		_, err := orderService.UpdateOrderStatus(ctx, id, models.OrderStatusPaid, "")

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestProcessWebhook(t *testing.T) {
	ctx := t.Context()
	payload := []byte(`{}`)
	signature := "t=1,v1=abc"

	t.Run("bad signature is the only hard failure", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(pkgstripe.Event{}, errors.New("signature mismatch")).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})

	t.Run("completed session marks the order paid and notifies", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		mockNotifications := serviceMocks.NewNotificationService(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, mockNotifications, alertMocks.NewAlerter(t))

		order := pendingOrder()
		event := sessionEvent("checkout.session.completed", map[string]any{
			"id":       "cs_test_123",
			"metadata": map[string]any{"order_id": order.ID.String()},
		})

		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusPaid, "cs_test_123").Return(nil).Once()
		mockNotifications.On("SendOrderConfirmation", ctx, mock.MatchedBy(func(o *models.Order) bool {
			return o.ID == order.ID && o.Status == models.OrderStatusPaid
		})).Return(nil).Once()
		mockNotifications.On("SendNewOrderNotice", ctx, mock.Anything).Return(nil).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.NoError(t, err)
	})

	t.Run("unrelated event types are ignored", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, serviceMocks.NewNotificationService(t), alertMocks.NewAlerter(t))

		event := sessionEvent("invoice.paid", map[string]any{"id": "in_123"})
		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("session without order reference is acknowledged and alerted", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		mockAlerter := alertMocks.NewAlerter(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, serviceMocks.NewNotificationService(t), mockAlerter)

		event := sessionEvent("checkout.session.completed", map[string]any{"id": "cs_test_456"})
		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mockAlerter.On("Critical", ctx, "payment-webhook", mock.Anything).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate delivery is a no-op", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		mockNotifications := serviceMocks.NewNotificationService(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, mockNotifications, alertMocks.NewAlerter(t))

		order := pendingOrder()
		order.Status = models.OrderStatusPaid
		event := sessionEvent("checkout.session.completed", map[string]any{
			"id":       "cs_test_123",
			"metadata": map[string]any{"order_id": order.ID.String()},
		})

		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.NoError(t, err)
		mockNotifications.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("status update failure is swallowed but alerted", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		mockAlerter := alertMocks.NewAlerter(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, serviceMocks.NewNotificationService(t), mockAlerter)

		order := pendingOrder()
		event := sessionEvent("checkout.session.completed", map[string]any{
			"id":       "cs_test_123",
			"metadata": map[string]any{"order_id": order.ID.String()},
		})

		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusPaid, "cs_test_123").Return(errors.New("connection reset")).Once()
		mockAlerter.On("Critical", ctx, "payment-webhook", mock.Anything).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.NoError(t, err)
	})

	t.Run("notification failure does not fail the webhook", func(t *testing.T) {
		mockRepo := repoMocks.NewOrderRepository(t)
		mockStripe := stripeMocks.NewClient(t)
		mockNotifications := serviceMocks.NewNotificationService(t)
		mockAlerter := alertMocks.NewAlerter(t)
		orderService := service.NewOrderService(mockRepo, mockStripe, mockNotifications, mockAlerter)

		order := pendingOrder()
		event := sessionEvent("checkout.session.completed", map[string]any{
			"id":       "cs_test_123",
			"metadata": map[string]any{"order_id": order.ID.String()},
		})

		mockStripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mockRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusPaid, "cs_test_123").Return(nil).Once()
		mockNotifications.On("SendOrderConfirmation", ctx, mock.Anything).Return(errors.New("sendgrid 503")).Once()
		mockNotifications.On("SendNewOrderNotice", ctx, mock.Anything).Return(nil).Once()
		mockAlerter.On("Critical", ctx, "payment-webhook", mock.Anything).Once()

		err := orderService.ProcessWebhook(ctx, payload, signature)

		assert.NoError(t, err)
	})
}
