package service_test

import (
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repoMocks "github.com/forgeprints/storefront/internal/repositories/mocks"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	ctx := t.Context()

	reviewRequest := func() *models.CreateReviewRequest {
		return &models.CreateReviewRequest{
			Author:  "Sam",
			Email:   "sam@example.com",
			Rating:  5,
			Comment: "Prints beautifully at 0.2mm",
		}
	}

	t.Run("Success starts unapproved", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		productID := uuid.New()

		mockProducts.On("GetProductByID", ctx, productID).Return(&models.Product{ID: productID}, nil).Once()
		mockRepo.On("CreateReview", ctx, mock.MatchedBy(func(r *models.Review) bool {
			return r.ProductID == productID && !r.Approved && r.Rating == 5
		})).Return(nil).Once()

		review, err := reviewService.CreateReview(ctx, productID, reviewRequest())

		require.NoError(t, err)
		assert.False(t, review.Approved)
		assert.Equal(t, "Sam", review.Author)
	})

	t.Run("Markup is stripped from author and comment", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		productID := uuid.New()
		req := reviewRequest()
		req.Author = `<b>Sam</b>`
		req.Comment = `Great print <script>alert("x")</script> overall`

		mockProducts.On("GetProductByID", ctx, productID).Return(&models.Product{ID: productID}, nil).Once()
		mockRepo.On("CreateReview", ctx, mock.Anything).Return(nil).Once()

		review, err := reviewService.CreateReview(ctx, productID, req)

		require.NoError(t, err)
		assert.Equal(t, "Sam", review.Author)
		assert.NotContains(t, review.Comment, "<script>")
		assert.NotContains(t, review.Comment, "alert")
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		productID := uuid.New()

		mockProducts.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		review, err := reviewService.CreateReview(ctx, productID, reviewRequest())

		require.Error(t, err)
		assert.Nil(t, review)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})
}

func TestListReviews(t *testing.T) {
	ctx := t.Context()

	t.Run("Public listing only asks for approved reviews", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		productID := uuid.New()
		approved := []models.Review{{ID: uuid.New(), ProductID: productID, Approved: true}}

		mockRepo.On("ListReviewsByProduct", ctx, productID, true).Return(approved, nil).Once()

		reviews, err := reviewService.ListReviews(ctx, productID, false)

		require.NoError(t, err)
		assert.Len(t, reviews, 1)
	})

	t.Run("Moderation listing includes unapproved reviews", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		productID := uuid.New()

		mockRepo.On("ListReviewsByProduct", ctx, productID, false).Return([]models.Review{}, nil).Once()

		_, err := reviewService.ListReviews(ctx, productID, true)

		require.NoError(t, err)
	})
}

func TestApproveReview(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		reviewID := uuid.New()

		mockRepo.On("ApproveReview", ctx, reviewID).Return(nil).Once()

		require.NoError(t, reviewService.ApproveReview(ctx, reviewID))
	})

	t.Run("Unknown review", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		reviewID := uuid.New()

		mockRepo.On("ApproveReview", ctx, reviewID).Return(sql.ErrNoRows).Once()

		err := reviewService.ApproveReview(ctx, reviewID)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Repository failure", func(t *testing.T) {
		mockRepo := repoMocks.NewReviewRepository(t)
		mockProducts := repoMocks.NewProductRepository(t)
		reviewService := service.NewReviewService(mockRepo, mockProducts)

		reviewID := uuid.New()

		mockRepo.On("ApproveReview", ctx, reviewID).Return(errors.New("db down")).Once()

		err := reviewService.ApproveReview(ctx, reviewID)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}
