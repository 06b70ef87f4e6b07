package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/forgeprints/storefront/internal/cache"
	cacheMocks "github.com/forgeprints/storefront/internal/cache/mocks"
	appErrors "github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repoMocks "github.com/forgeprints/storefront/internal/repositories/mocks"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogItem() *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Articulated Dragon",
		Description:   "Print-in-place dragon, no supports needed",
		Price:         24.90,
		StockQuantity: 12,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestGetProduct(t *testing.T) {
	ctx := t.Context()

	t.Run("Cache miss falls through to the repository and populates the cache", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		mockCache := cacheMocks.NewCache(t)
		productService := service.NewProductService(mockRepo, mockCache, 10*time.Minute)

		product := catalogItem()
		key := cache.Key(cache.ProductKeyPrefix, product.ID.String())

		mockCache.On("Get", ctx, key, mock.Anything).Return(false, nil).Once()
		mockRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCache.On("Set", ctx, key, product, 10*time.Minute).Return(nil).Once()

		found, err := productService.GetProduct(ctx, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.Name, found.Name)
	})

	t.Run("Cache hit skips the repository", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		mockCache := cacheMocks.NewCache(t)
		productService := service.NewProductService(mockRepo, mockCache, 10*time.Minute)

		product := catalogItem()
		key := cache.Key(cache.ProductKeyPrefix, product.ID.String())

		mockCache.On("Get", ctx, key, mock.Anything).Run(func(args mock.Arguments) {
			cached := args.Get(2).(*models.Product)
			*cached = *product
		}).Return(true, nil).Once()

		found, err := productService.GetProduct(ctx, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		mockRepo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Cache failure degrades to the repository", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		mockCache := cacheMocks.NewCache(t)
		productService := service.NewProductService(mockRepo, mockCache, 10*time.Minute)

		product := catalogItem()
		key := cache.Key(cache.ProductKeyPrefix, product.ID.String())

		mockCache.On("Get", ctx, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		mockRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCache.On("Set", ctx, key, product, 10*time.Minute).Return(nil).Once()

		found, err := productService.GetProduct(ctx, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("Unknown product without cache", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, 10*time.Minute)

		productID := uuid.New()

		mockRepo.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		found, err := productService.GetProduct(ctx, productID)

		require.Error(t, err)
		assert.Nil(t, found)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := t.Context()

	t.Run("Partial update invalidates the cache entry", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		mockCache := cacheMocks.NewCache(t)
		productService := service.NewProductService(mockRepo, mockCache, 10*time.Minute)

		product := catalogItem()
		newPrice := 19.90
		key := cache.Key(cache.ProductKeyPrefix, product.ID.String())

		mockRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.ID == product.ID && p.Price == newPrice && p.Name == "Articulated Dragon"
		})).Return(nil).Once()
		mockCache.On("Delete", ctx, key).Return(nil).Once()

		updated, err := productService.UpdateProduct(ctx, product.ID, &models.UpdateProductRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.InDelta(t, newPrice, updated.Price, 0.001)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, 10*time.Minute)

		productID := uuid.New()

		mockRepo.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		updated, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{})

		require.Error(t, err)
		assert.Nil(t, updated)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := t.Context()

	t.Run("Success invalidates the cache entry", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		mockCache := cacheMocks.NewCache(t)
		productService := service.NewProductService(mockRepo, mockCache, 10*time.Minute)

		productID := uuid.New()
		key := cache.Key(cache.ProductKeyPrefix, productID.String())

		mockRepo.On("DeleteProduct", ctx, productID).Return(nil).Once()
		mockCache.On("Delete", ctx, key).Return(nil).Once()

		require.NoError(t, productService.DeleteProduct(ctx, productID))
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, 10*time.Minute)

		productID := uuid.New()

		mockRepo.On("DeleteProduct", ctx, productID).Return(sql.ErrNoRows).Once()

		err := productService.DeleteProduct(ctx, productID)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListProducts(t *testing.T) {
	ctx := t.Context()

	t.Run("Storefront listing asks for active products only", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, 10*time.Minute)

		mockRepo.On("ListProducts", ctx, 1, 20, true).Return([]models.Product{*catalogItem()}, 1, nil).Once()

		products, total, err := productService.ListProducts(ctx, 1, 20, false)

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, products, 1)
	})

	t.Run("Back-office listing includes inactive products", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, 10*time.Minute)

		mockRepo.On("ListProducts", ctx, 1, 20, false).Return([]models.Product{}, 0, nil).Once()

		_, _, err := productService.ListProducts(ctx, 1, 20, true)

		require.NoError(t, err)
	})

	t.Run("Out-of-range paging is normalized", func(t *testing.T) {
		mockRepo := repoMocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, 10*time.Minute)

		mockRepo.On("ListProducts", ctx, 1, 20, true).Return([]models.Product{}, 0, nil).Once()

		_, _, err := productService.ListProducts(ctx, -3, 500, false)

		require.NoError(t, err)
	})
}
