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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout prices the submitted cart server-side, creates a pending order and
// returns the Stripe Checkout redirect URL.
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), &req)
		if err != nil {
			logger.Error("Checkout failed",
				slog.String("email", req.Email),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout session created",
			slog.String("orderId", result.OrderID.String()))
		response.Success(w, http.StatusCreated, result)
	}
}
