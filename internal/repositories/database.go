package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/forgeprints/storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

type Repositories struct {
	DB *sql.DB

	Coupons       CouponRepository
	Orders        OrderRepository
	Products      ProductRepository
	Reviews       ReviewRepository
	Newsletter    NewsletterRepository
	Blog          BlogRepository
	Notifications NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:            db,
		Coupons:       NewCouponRepository(db),
		Orders:        NewOrderRepository(db),
		Products:      NewProductRepository(db),
		Reviews:       NewReviewRepository(db),
		Newsletter:    NewNewsletterRepository(db),
		Blog:          NewBlogRepository(db),
		Notifications: NewNotificationRepository(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
