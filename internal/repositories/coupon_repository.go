package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/forgeprints/storefront/internal/models"
	"github.com/forgeprints/storefront/internal/utils"
	"github.com/google/uuid"
)

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon *models.Coupon) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context, page, size int) ([]models.Coupon, int, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepository(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

const couponColumns = `id, code, discount_type, discount_value, min_amount, max_uses, current_uses, is_active, expires_at, created_at, updated_at`

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, min_amount, max_uses, current_uses, is_active, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(dbCtx, query, coupon.ID, coupon.Code, coupon.DiscountType, coupon.DiscountValue,
		coupon.MinAmount, coupon.MaxUses, coupon.CurrentUses, coupon.IsActive, coupon.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	return r.scanCoupon(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	return r.scanCoupon(r.DB.QueryRowContext(dbCtx, query, code))
}

func (r *couponRepository) scanCoupon(row *sql.Row) (*models.Coupon, error) {

	coupon := &models.Coupon{}

	err := row.Scan(&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue, &coupon.MinAmount,
		&coupon.MaxUses, &coupon.CurrentUses, &coupon.IsActive, &coupon.ExpiresAt, &coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get the coupon: %w", err)
	}

	return coupon, nil
}

func (r *couponRepository) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE coupons
		SET discount_type = $1, discount_value = $2, min_amount = $3, max_uses = $4, is_active = $5, expires_at = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.DB.ExecContext(dbCtx, query, coupon.DiscountType, coupon.DiscountValue, coupon.MinAmount,
		coupon.MaxUses, coupon.IsActive, coupon.ExpiresAt, time.Now(), coupon.ID)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
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

func (r *couponRepository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *couponRepository) ListCoupons(ctx context.Context, page, size int) ([]models.Coupon, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM coupons`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}

	defer rows.Close()

	var coupons []models.Coupon

	for rows.Next() {

		var coupon models.Coupon

		err := rows.Scan(&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue, &coupon.MinAmount,
			&coupon.MaxUses, &coupon.CurrentUses, &coupon.IsActive, &coupon.ExpiresAt, &coupon.CreatedAt, &coupon.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the coupons: %w", err)
		}

		coupons = append(coupons, coupon)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}
