package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/forgeprints/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendNewOrderNotice(ctx context.Context, order *models.Order) error
	SendNewsletterWelcome(ctx context.Context, email string) error
	ListNotifications(ctx context.Context, page, size int) ([]models.Notification, int, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	emailer  sendgrid.Client
	opsEmail string
}

func NewNotificationService(repo repository.NotificationRepository, emailer sendgrid.Client, opsEmail string) NotificationService {
	return &notificationService{repo: repo, emailer: emailer, opsEmail: opsEmail}
}

// SendOrderConfirmation emails the customer after their order is paid.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {

	var lines strings.Builder

	for _, item := range order.Items {
		name := item.Name
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}

		fmt.Fprintf(&lines, "%d x %s - %.2f\n", item.Quantity, name, item.UnitPrice*float64(item.Quantity))
	}

	body := fmt.Sprintf("Hi %s,\n\nThanks for your order!\n\n%s\nShipping (%s): %.2f\n",
		order.Name, lines.String(), order.ShippingMethod, order.ShippingCost)

	if order.DiscountAmount > 0 {
		body += fmt.Sprintf("Discount: -%.2f\n", order.DiscountAmount)
	}

	body += fmt.Sprintf("Total: %.2f\n\nWe will start printing shortly.\n", order.TotalAmount)

	email := &sendgrid.Email{
		To:        order.Email,
		ToName:    order.Name,
		Subject:   fmt.Sprintf("Order confirmation %s", shortOrderRef(order.ID)),
		PlainText: body,
	}

	return n.send(ctx, models.NotificationTypeOrderConfirmation, email, &order.ID)
}

// SendNewOrderNotice emails the ops mailbox so a new paid order gets picked
// up for printing.
func (n *notificationService) SendNewOrderNotice(ctx context.Context, order *models.Order) error {

	body := fmt.Sprintf("New paid order %s\n\nCustomer: %s <%s>\nItems: %d\nTotal: %.2f\nShipping: %s\n",
		order.ID, order.Name, order.Email, len(order.Items), order.TotalAmount, order.ShippingMethod)

	email := &sendgrid.Email{
		To:        n.opsEmail,
		Subject:   fmt.Sprintf("New order %s", shortOrderRef(order.ID)),
		PlainText: body,
	}

	return n.send(ctx, models.NotificationTypeNewOrderNotice, email, &order.ID)
}

// SendNewsletterWelcome implements NotificationService.
func (n *notificationService) SendNewsletterWelcome(ctx context.Context, recipient string) error {

	email := &sendgrid.Email{
		To:        recipient,
		Subject:   "Welcome to the ForgePrints newsletter",
		PlainText: "Thanks for subscribing! We will keep you posted on new prints, materials and discounts.\n",
	}

	return n.send(ctx, models.NotificationTypeNewsletterWelcome, email, nil)
}

func (n *notificationService) ListNotifications(ctx context.Context, page, size int) ([]models.Notification, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	return n.repo.ListNotifications(ctx, page, size)
}

// send records the attempt, delivers, and updates the audit row. A failed
// audit write after a successful send is reported but the send stands.
func (n *notificationService) send(ctx context.Context, notificationType models.NotificationType, email *sendgrid.Email, orderID *uuid.UUID) error {

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      notificationType,
		Recipient: email.To,
		Subject:   email.Subject,
		Status:    models.NotificationStatusPending,
		OrderID:   orderID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.emailer.Send(ctx, email); err != nil {

		_ = n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusFailed, err.Error())

		return fmt.Errorf("failed to send email: %w", err)
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		return fmt.Errorf("email sent but failed to update notification status: %w", err)
	}

	return nil
}

func shortOrderRef(id uuid.UUID) string {
	return "#" + strings.ToUpper(id.String()[:8])
}
