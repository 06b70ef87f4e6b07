package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/forgeprints/storefront/internal/api/middleware"
	"github.com/forgeprints/storefront/internal/models"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/forgeprints/storefront/internal/utils"
	"github.com/forgeprints/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CouponHandler struct {
	couponService service.CouponService
	validator     *validator.Validate
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService, validator: validator.New()}
}

// Validate checks a coupon code against a cart subtotal. The endpoint is
// public and always answers 200 with a validity verdict for well-formed input.
func (h *CouponHandler) Validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ValidateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid coupon validation input")
			return
		}

		result, err := h.couponService.Validate(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to validate coupon",
				slog.String("code", req.Code),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon validated",
			slog.String("code", req.Code),
			slog.Bool("valid", result.Valid))
		response.Success(w, http.StatusOK, result)
	}
}

func (h *CouponHandler) CreateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create coupon input")
			return
		}

		coupon, err := h.couponService.CreateCoupon(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create coupon",
				slog.String("code", req.Code),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon created", slog.String("couponId", coupon.ID.String()))
		response.Success(w, http.StatusCreated, coupon)
	}
}

func (h *CouponHandler) UpdateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid coupon id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update coupon input")
			return
		}

		coupon, err := h.couponService.UpdateCoupon(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update coupon",
				slog.String("couponId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon updated", slog.String("couponId", id.String()))
		response.Success(w, http.StatusOK, coupon)
	}
}

func (h *CouponHandler) DeleteCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid coupon id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.couponService.DeleteCoupon(r.Context(), id); err != nil {
			logger.Error("Failed to delete coupon",
				slog.String("couponId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon deleted", slog.String("couponId", id.String()))
		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func (h *CouponHandler) ListCoupons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		coupons, total, err := h.couponService.ListCoupons(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list coupons", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupons listed", slog.Int("count", len(coupons)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     coupons,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
