package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/google/uuid"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, email string) error
}

type newsletterService struct {
	repo          repository.NewsletterRepository
	notifications NotificationService
}

func NewNewsletterService(repo repository.NewsletterRepository, notifications NotificationService) NewsletterService {
	return &newsletterService{repo: repo, notifications: notifications}
}

// Subscribe upserts the subscriber and sends the welcome email on a genuine
// first subscription. A failed welcome email never fails the subscription.
func (s *newsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	subscriber := &models.NewsletterSubscriber{
		ID:         uuid.New(),
		Email:      email,
		Subscribed: true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	isNew, err := s.repo.Subscribe(ctx, subscriber)
	if err != nil {
		return nil, errors.DatabaseError("Failed to subscribe").WithError(err)
	}

	if isNew {
		if err := s.notifications.SendNewsletterWelcome(ctx, email); err != nil {
			slog.Error("failed to send newsletter welcome",
				slog.String("email", email), slog.String("error", err.Error()))
		}
	}

	return subscriber, nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {

	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.repo.Unsubscribe(ctx, email); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Email is not subscribed")
		}

		return errors.DatabaseError("Failed to unsubscribe").WithError(err)
	}

	return nil
}
