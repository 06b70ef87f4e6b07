package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/forgeprints/storefront/internal/alerts"
	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/metrics"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/forgeprints/storefront/pkg/stripe"
	"github.com/google/uuid"
)

const webhookAlertSource = "payment-webhook"

type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, stripeSessionID string) (*models.Order, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

type orderService struct {
	repo          repository.OrderRepository
	stripeClient  stripe.Client
	notifications NotificationService
	alerter       alerts.Alerter
}

func NewOrderService(repo repository.OrderRepository, stripeClient stripe.Client, notifications NotificationService, alerter alerts.Alerter) OrderService {
	return &orderService{repo: repo, stripeClient: stripeClient, notifications: notifications, alerter: alerter}
}

// CreateOrder persists a pending order with its line items. Prices and
// totals on the order were computed server-side by the checkout service;
// nothing here comes from client-submitted amounts.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {

	if len(order.Items) == 0 {
		return nil, errors.BadRequestError("Cannot create order without items")
	}

	err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if stdErrors.Is(err, repository.ErrCouponExhausted) {
			return nil, errors.CouponExhaustedError("This coupon has reached its maximum number of uses")
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found")
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	orders, total, err := s.repo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus applies a status change after checking it against the
// order state machine, so a paid order can never regress to pending no
// matter what the caller asks for.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, stripeSessionID string) (*models.Order, error) {

	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, errors.InvalidTransitionError(string(order.Status), string(status))
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status, stripeSessionID); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status
	if stripeSessionID != "" {
		order.StripeSessionID = stripeSessionID
	}

	return order, nil
}

// ProcessWebhook consumes a payment-provider event. It returns an error only
// when the signature does not verify; every failure after that point is
// logged and alerted but swallowed, so the provider is acknowledged and does
// not retry. The status commit always lands before the notifications fire;
// a crash in between loses the emails, not the order state.
func (s *orderService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.ThirdPartyError("Webhook signature verification failed").WithError(err)
	}

	// All other event kinds are ignored silently.
	if event.Type != "checkout.session.completed" {
		slog.Debug("ignoring webhook event", slog.String("type", string(event.Type)))
		metrics.ObserveWebhookEvent(string(event.Type), "ignored")

		return nil
	}

	session := event.Data.Object

	sessionID, _ := session["id"].(string)

	orderID, err := orderIDFromSession(session)
	if err != nil {
		slog.Error("webhook session has no usable order reference",
			slog.String("sessionId", sessionID), slog.String("error", err.Error()))
		s.alerter.Critical(ctx, webhookAlertSource,
			fmt.Sprintf("checkout.session.completed without order reference (session %s): %v", sessionID, err))
		metrics.ObserveWebhookEvent(string(event.Type), "failed")

		return nil
	}

	order, err := s.UpdateOrderStatus(ctx, orderID, models.OrderStatusPaid, sessionID)
	if err != nil {

		// A duplicate delivery finds the order already paid; that is a no-op,
		// not an incident.
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeInvalidTransition {
			slog.Warn("webhook delivered for an order not in pending state",
				slog.String("orderId", orderID.String()), slog.String("error", err.Error()))
			return nil
		}

		slog.Error("failed to mark order paid",
			slog.String("orderId", orderID.String()), slog.String("error", err.Error()))
		s.alerter.Critical(ctx, webhookAlertSource,
			fmt.Sprintf("failed to mark order %s paid: %v", orderID, err))
		metrics.ObserveWebhookEvent(string(event.Type), "failed")

		return nil
	}

	s.sendPaidNotifications(ctx, order)
	metrics.ObserveWebhookEvent(string(event.Type), "processed")

	return nil
}

// sendPaidNotifications fires the customer confirmation and the internal
// new-order notice concurrently. Each may fail on its own without affecting
// the other or the already committed status change.
func (s *orderService) sendPaidNotifications(ctx context.Context, order *models.Order) {

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		if err := s.notifications.SendOrderConfirmation(ctx, order); err != nil {
			slog.Error("failed to send order confirmation",
				slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
			s.alerter.Critical(ctx, webhookAlertSource,
				fmt.Sprintf("order confirmation for %s failed: %v", order.ID, err))
		}
	}()

	go func() {
		defer wg.Done()

		if err := s.notifications.SendNewOrderNotice(ctx, order); err != nil {
			slog.Error("failed to send new-order notice",
				slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
			s.alerter.Critical(ctx, webhookAlertSource,
				fmt.Sprintf("new-order notice for %s failed: %v", order.ID, err))
		}
	}()

	wg.Wait()
}

func orderIDFromSession(session map[string]any) (uuid.UUID, error) {

	metadata, ok := session["metadata"].(map[string]any)
	if !ok {
		return uuid.Nil, stdErrors.New("missing metadata")
	}

	raw, ok := metadata["order_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, stdErrors.New("missing order_id in metadata")
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed order_id %q: %w", raw, err)
	}

	return orderID, nil
}
