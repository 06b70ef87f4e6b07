package handlers

import (
	"log/slog"
	"net/http"

	"github.com/forgeprints/storefront/internal/api/middleware"
	"github.com/forgeprints/storefront/internal/models"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/forgeprints/storefront/internal/utils"
	"github.com/forgeprints/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create review input")
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Failed to create review",
				slog.String("productId", productID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review submitted",
			slog.String("reviewId", review.ID.String()),
			slog.String("productId", productID.String()))
		response.Success(w, http.StatusCreated, review)
	}
}

func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		reviews, err := h.reviewService.ListReviews(r.Context(), productID, false)
		if err != nil {
			logger.Error("Failed to list reviews",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"reviews": reviews,
			"total":   len(reviews),
		})
	}
}

// ListPendingReviews returns unapproved reviews for moderation.
func (h *ReviewHandler) ListPendingReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		reviews, err := h.reviewService.ListReviews(r.Context(), productID, true)
		if err != nil {
			logger.Error("Failed to list reviews for moderation",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"reviews": reviews,
			"total":   len(reviews),
		})
	}
}

func (h *ReviewHandler) ApproveReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid review id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.reviewService.ApproveReview(r.Context(), id); err != nil {
			logger.Error("Failed to approve review",
				slog.String("reviewId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Review approved", slog.String("reviewId", id.String()))
		response.Success(w, http.StatusOK, map[string]bool{"approved": true})
	}
}

func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid review id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.reviewService.DeleteReview(r.Context(), id); err != nil {
			logger.Error("Failed to delete review",
				slog.String("reviewId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Review deleted", slog.String("reviewId", id.String()))
		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
