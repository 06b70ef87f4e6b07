package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/forgeprints/storefront/internal/cache"
	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/google/uuid"
)

type CouponService interface {
	Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.CouponValidationResult, error)
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, req *models.UpdateCouponRequest) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context, page, size int) ([]models.Coupon, int, error)
}

type couponService struct {
	repo  repository.CouponRepository
	cache cache.Cache
}

func NewCouponService(repo repository.CouponRepository, cacheClient cache.Cache) CouponService {
	return &couponService{repo: repo, cache: cacheClient}
}

func invalid(reason string) *models.CouponValidationResult {
	return &models.CouponValidationResult{Valid: false, Error: reason}
}

// Validate runs the eligibility checks in a fixed order; the first failing
// check wins. Business rejections come back as a Valid=false result, only
// infrastructure failures surface as errors.
func (s *couponService) Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.CouponValidationResult, error) {

	code := models.NormalizeCouponCode(req.Code)
	if code == "" {
		return invalid("Coupon code is required"), nil
	}

	if math.IsNaN(req.Subtotal) || math.IsInf(req.Subtotal, 0) || req.Subtotal <= 0 {
		return invalid("Invalid subtotal"), nil
	}

	coupon, err := s.getCoupon(ctx, code)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return invalid("Invalid coupon code"), nil
		}

		return nil, errors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	if !coupon.IsActive {
		return invalid("This coupon is currently disabled"), nil
	}

	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return invalid("This coupon has expired"), nil
	}

	if coupon.MaxUses != nil && coupon.CurrentUses >= *coupon.MaxUses {
		return invalid("This coupon has reached its maximum number of uses"), nil
	}

	if coupon.MinAmount != nil && req.Subtotal < *coupon.MinAmount {
		return invalid(fmt.Sprintf("Minimum order amount of %.2f required", *coupon.MinAmount)), nil
	}

	return &models.CouponValidationResult{
		Valid: true,
		Coupon: &models.CouponSummary{
			ID:            coupon.ID,
			Code:          coupon.Code,
			DiscountType:  coupon.DiscountType,
			DiscountValue: coupon.DiscountValue,
		},
	}, nil
}

// CalculateDiscount computes the discount a coupon grants on a subtotal.
// The result is clamped to [0, subtotal]: a discount never turns an order
// total negative.
func CalculateDiscount(discountType models.DiscountType, value, subtotal float64) float64 {

	if subtotal <= 0 || value <= 0 {
		return 0
	}

	var discount float64

	switch discountType {
	case models.DiscountTypePercentage:
		discount = value / 100 * subtotal
	case models.DiscountTypeFixed:
		discount = value
	default:
		return 0
	}

	return math.Min(discount, subtotal)
}

func (s *couponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {

	code := models.NormalizeCouponCode(req.Code)

	if _, err := s.repo.GetCouponByCode(ctx, code); err == nil {
		return nil, errors.DuplicateEntryError("A coupon with this code already exists")
	} else if !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	coupon := &models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinAmount:     req.MinAmount,
		MaxUses:       req.MaxUses,
		IsActive:      req.IsActive,
		ExpiresAt:     req.ExpiresAt,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, errors.DatabaseError("Failed to create coupon").WithError(err)
	}

	return coupon, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, id uuid.UUID, req *models.UpdateCouponRequest) (*models.Coupon, error) {

	coupon, err := s.repo.GetCouponByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Coupon not found")
		}

		return nil, errors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	if req.DiscountType != nil {
		coupon.DiscountType = *req.DiscountType
	}

	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}

	if req.MinAmount != nil {
		coupon.MinAmount = req.MinAmount
	}

	if req.MaxUses != nil {
		coupon.MaxUses = req.MaxUses
	}

	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}

	if err := s.repo.UpdateCoupon(ctx, coupon); err != nil {
		return nil, errors.DatabaseError("Failed to update coupon").WithError(err)
	}

	s.invalidate(ctx, coupon.Code)

	return coupon, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {

	coupon, err := s.repo.GetCouponByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Coupon not found")
		}

		return errors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	if err := s.repo.DeleteCoupon(ctx, id); err != nil {
		return errors.DatabaseError("Failed to delete coupon").WithError(err)
	}

	s.invalidate(ctx, coupon.Code)

	return nil
}

func (s *couponService) ListCoupons(ctx context.Context, page, size int) ([]models.Coupon, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	coupons, total, err := s.repo.ListCoupons(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch coupons").WithError(err)
	}

	return coupons, total, nil
}

// getCoupon reads through the cache. Staleness is bounded by the cache TTL
// and does not threaten the max-uses invariant, which the order transaction
// enforces on its own.
func (s *couponService) getCoupon(ctx context.Context, code string) (*models.Coupon, error) {

	key := cache.Key(cache.CouponKeyPrefix, code)

	if s.cache != nil {
		var cached models.Coupon

		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, coupon, 0)
	}

	return coupon, nil
}

func (s *couponService) invalidate(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}

	// Stale entries expire on their own; failed invalidation is not fatal.
	_ = s.cache.Delete(ctx, cache.Key(cache.CouponKeyPrefix, code))
}
