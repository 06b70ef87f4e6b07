package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/forgeprints/storefront/internal/api/middleware"
	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/forgeprints/storefront/internal/utils"
	"github.com/forgeprints/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type BlogHandler struct {
	blogService service.BlogService
	validator   *validator.Validate
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService, validator: validator.New()}
}

func (h *BlogHandler) CreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBlogPostRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create blog post input")
			return
		}

		post, err := h.blogService.CreatePost(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create blog post",
				slog.String("slug", req.Slug),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Blog post created", slog.String("slug", post.Slug))
		response.Success(w, http.StatusCreated, post)
	}
}

func (h *BlogHandler) UpdatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		slug := r.PathValue("slug")
		if slug == "" {
			response.Error(w, errors.BadRequestError("Post slug is required"))
			return
		}

		var req models.UpdateBlogPostRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update blog post input")
			return
		}

		post, err := h.blogService.UpdatePost(r.Context(), slug, &req)
		if err != nil {
			logger.Error("Failed to update blog post",
				slog.String("slug", slug),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Blog post updated", slog.String("slug", slug))
		response.Success(w, http.StatusOK, post)
	}
}

func (h *BlogHandler) GetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		slug := r.PathValue("slug")
		if slug == "" {
			response.Error(w, errors.BadRequestError("Post slug is required"))
			return
		}

		post, err := h.blogService.GetPost(r.Context(), slug)
		if err != nil {
			logger.Error("Failed to get blog post",
				slog.String("slug", slug),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, post)
	}
}

func (h *BlogHandler) ListPosts() http.HandlerFunc {
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

		posts, total, err := h.blogService.ListPosts(r.Context(), page, pageSize, false)
		if err != nil {
			logger.Error("Failed to list blog posts", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     posts,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ListAllPosts includes unpublished drafts. Registered behind the admin guard.
func (h *BlogHandler) ListAllPosts() http.HandlerFunc {
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

		posts, total, err := h.blogService.ListPosts(r.Context(), page, pageSize, true)
		if err != nil {
			logger.Error("Failed to list blog posts", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     posts,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
