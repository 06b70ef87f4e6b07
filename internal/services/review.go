package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	CreateReview(ctx context.Context, productID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, productID uuid.UUID, includeUnapproved bool) ([]models.Review, error)
	ApproveReview(ctx context.Context, id uuid.UUID) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	products  repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository, products repository.ProductRepository) ReviewService {
	// Review comments are plain text; strip all markup.
	return &reviewService{repo: repo, products: products, sanitizer: bluemonday.StrictPolicy()}
}

// CreateReview stores a customer review for moderation. Comments pass
// through the sanitizer, so markup submitted by the customer never reaches
// storage.
func (s *reviewService) CreateReview(ctx context.Context, productID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {

	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found")
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	review := &models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		Author:    strings.TrimSpace(s.sanitizer.Sanitize(req.Author)),
		Email:     req.Email,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(s.sanitizer.Sanitize(req.Comment)),
		Approved:  false,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, errors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, productID uuid.UUID, includeUnapproved bool) ([]models.Review, error) {

	reviews, err := s.repo.ListReviewsByProduct(ctx, productID, !includeUnapproved)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}

func (s *reviewService) ApproveReview(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.ApproveReview(ctx, id); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Review not found")
		}

		return errors.DatabaseError("Failed to approve review").WithError(err)
	}

	return nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteReview(ctx, id); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Review not found")
		}

		return errors.DatabaseError("Failed to delete review").WithError(err)
	}

	return nil
}
