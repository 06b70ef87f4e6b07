package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"time"

	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repository "github.com/forgeprints/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type BlogService interface {
	CreatePost(ctx context.Context, req *models.CreateBlogPostRequest) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, slug string, req *models.UpdateBlogPostRequest) (*models.BlogPost, error)
	GetPost(ctx context.Context, slug string) (*models.BlogPost, error)
	ListPosts(ctx context.Context, page, size int, includeUnpublished bool) ([]models.BlogPost, int, error)
}

type blogService struct {
	repo      repository.BlogRepository
	sanitizer *bluemonday.Policy
}

func NewBlogService(repo repository.BlogRepository) BlogService {
	// Post bodies keep basic formatting but nothing executable.
	return &blogService{repo: repo, sanitizer: bluemonday.UGCPolicy()}
}

func (s *blogService) CreatePost(ctx context.Context, req *models.CreateBlogPostRequest) (*models.BlogPost, error) {

	if _, err := s.repo.GetPostBySlug(ctx, req.Slug); err == nil {
		return nil, errors.DuplicateEntryError("A post with this slug already exists")
	} else if !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to look up post").WithError(err)
	}

	post := &models.BlogPost{
		ID:        uuid.New(),
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Body:      s.sanitizer.Sanitize(req.Body),
		Published: req.Published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if req.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, errors.DatabaseError("Failed to create post").WithError(err)
	}

	return post, nil
}

func (s *blogService) UpdatePost(ctx context.Context, slug string, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {

	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Post not found")
		}

		return nil, errors.DatabaseError("Failed to look up post").WithError(err)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}

	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}

	if req.Body != nil {
		post.Body = s.sanitizer.Sanitize(*req.Body)
	}

	if req.Published != nil {

		if *req.Published && !post.Published {
			now := time.Now()
			post.PublishedAt = &now
		}

		post.Published = *req.Published
	}

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, errors.DatabaseError("Failed to update post").WithError(err)
	}

	return post, nil
}

func (s *blogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {

	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Post not found")
		}

		return nil, errors.DatabaseError("Failed to fetch post").WithError(err)
	}

	return post, nil
}

func (s *blogService) ListPosts(ctx context.Context, page, size int, includeUnpublished bool) ([]models.BlogPost, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	posts, total, err := s.repo.ListPosts(ctx, page, size, !includeUnpublished)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch posts").WithError(err)
	}

	return posts, total, nil
}
