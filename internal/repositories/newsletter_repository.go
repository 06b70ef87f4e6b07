package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/forgeprints/storefront/internal/models"
	"github.com/forgeprints/storefront/internal/utils"
)

type NewsletterRepository interface {
	Subscribe(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error)
	Unsubscribe(ctx context.Context, email string) error
	GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
}

type newsletterRepository struct {
	DB *sql.DB
}

func NewNewsletterRepository(db *sql.DB) NewsletterRepository {
	return &newsletterRepository{DB: db}
}

// Subscribe upserts the subscriber row. The returned bool is true when this
// was a brand-new subscription rather than a re-subscribe.
func (r *newsletterRepository) Subscribe(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO newsletter_subscribers (id, email, subscribed, created_at, updated_at)
		VALUES ($1, $2, true, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET subscribed = true, updated_at = NOW()
		RETURNING (xmax = 0)
	`

	var inserted bool

	err := r.DB.QueryRowContext(dbCtx, query, subscriber.ID, subscriber.Email).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}

	return inserted, nil
}

func (r *newsletterRepository) Unsubscribe(ctx context.Context, email string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE newsletter_subscribers SET subscribed = false, updated_at = NOW() WHERE email = $1`

	result, err := r.DB.ExecContext(dbCtx, query, email)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
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

func (r *newsletterRepository) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	subscriber := &models.NewsletterSubscriber{}

	query := `
		SELECT id, email, subscribed, created_at, updated_at
		FROM newsletter_subscribers
		WHERE email = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&subscriber.ID, &subscriber.Email,
		&subscriber.Subscribed, &subscriber.CreatedAt, &subscriber.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get the subscriber: %w", err)
	}

	return subscriber, nil
}
