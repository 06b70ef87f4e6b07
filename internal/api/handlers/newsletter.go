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

type NewsletterHandler struct {
	newsletterService service.NewsletterService
	validator         *validator.Validate
}

func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService, validator: validator.New()}
}

func (h *NewsletterHandler) Subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.NewsletterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid newsletter subscribe input")
			return
		}

		subscriber, err := h.newsletterService.Subscribe(r.Context(), req.Email)
		if err != nil {
			logger.Error("Failed to subscribe to newsletter",
				slog.String("email", req.Email),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Newsletter subscription recorded",
			slog.String("subscriberId", subscriber.ID.String()))
		response.Success(w, http.StatusOK, map[string]bool{"subscribed": true})
	}
}

func (h *NewsletterHandler) Unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.NewsletterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid newsletter unsubscribe input")
			return
		}

		if err := h.newsletterService.Unsubscribe(r.Context(), req.Email); err != nil {
			logger.Error("Failed to unsubscribe from newsletter",
				slog.String("email", req.Email),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Newsletter unsubscription recorded")
		response.Success(w, http.StatusOK, map[string]bool{"unsubscribed": true})
	}
}
