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

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, size int, onlyActive bool) ([]models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, name, description, price, stock_quantity, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(dbCtx, query, product.ID, product.Name, product.Description, product.Price,
		product.StockQuantity, product.ImageURL, product.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{ID: id}

	query := `
		SELECT name, description, price, stock_quantity, image_url, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.Name, &product.Description, &product.Price,
		&product.StockQuantity, &product.ImageURL, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get the product: %w", err)
	}

	variants, err := r.getVariants(dbCtx, id)
	if err != nil {
		return nil, err
	}

	product.Variants = variants

	return product, nil
}

func (r *productRepository) getVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {

	query := `
		SELECT id, name, price, stock_quantity, created_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY name
	`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the product variants: %w", err)
	}

	defer rows.Close()

	var variants []models.Variant

	for rows.Next() {

		var variant models.Variant

		err := rows.Scan(&variant.ID, &variant.Name, &variant.Price, &variant.StockQuantity, &variant.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product variant: %w", err)
		}

		variant.ProductID = productID

		variants = append(variants, variant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return variants, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock_quantity = $4, image_url = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.DB.ExecContext(dbCtx, query, product.Name, product.Description, product.Price,
		product.StockQuantity, product.ImageURL, product.IsActive, time.Now(), product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
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

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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

func (r *productRepository) ListProducts(ctx context.Context, page, size int, onlyActive bool) ([]models.Product, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := ""
	if onlyActive {
		filter = " WHERE is_active = true"
	}

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`+filter).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, name, description, price, stock_quantity, image_url, is_active, created_at, updated_at
		FROM products` + filter + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {

		var product models.Product

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.StockQuantity, &product.ImageURL, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the products: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
