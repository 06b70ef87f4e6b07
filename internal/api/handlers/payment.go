package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/forgeprints/storefront/internal/api/middleware"
	"github.com/forgeprints/storefront/internal/errors"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/forgeprints/storefront/internal/utils/response"
)

type PaymentHandler struct {
	orderService service.OrderService
}

func NewPaymentHandler(orderService service.OrderService) *PaymentHandler {
	return &PaymentHandler{orderService: orderService}
}

// HandleStripeWebhook receives Stripe event deliveries. Only an unreadable
// body or a bad signature produces a non-200 answer; everything after
// verification is acknowledged so Stripe does not retry events we cannot act
// on anyway.
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Error("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))
			return
		}

		if err := h.orderService.ProcessWebhook(r.Context(), payload, signature); err != nil {
			logger.Error("Failed to process payment webhook", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Payment webhook processed")
		response.Success(w, http.StatusOK, map[string]bool{"success": true})
	}
}
