package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/forgeprints/storefront/internal/models"
	"github.com/forgeprints/storefront/internal/utils"
)

type BlogRepository interface {
	CreatePost(ctx context.Context, post *models.BlogPost) error
	UpdatePost(ctx context.Context, post *models.BlogPost) error
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListPosts(ctx context.Context, page, size int, publishedOnly bool) ([]models.BlogPost, int, error)
}

type blogRepository struct {
	DB *sql.DB
}

func NewBlogRepository(db *sql.DB) BlogRepository {
	return &blogRepository{DB: db}
}

func (r *blogRepository) CreatePost(ctx context.Context, post *models.BlogPost) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO blog_posts (id, slug, title, excerpt, body, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(dbCtx, query, post.ID, post.Slug, post.Title, post.Excerpt, post.Body,
		post.Published, post.PublishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}

	return nil
}

func (r *blogRepository) UpdatePost(ctx context.Context, post *models.BlogPost) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE blog_posts
		SET title = $1, excerpt = $2, body = $3, published = $4, published_at = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.DB.ExecContext(dbCtx, query, post.Title, post.Excerpt, post.Body, post.Published,
		post.PublishedAt, time.Now(), post.ID)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
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

func (r *blogRepository) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	post := &models.BlogPost{}

	query := `
		SELECT id, slug, title, excerpt, body, published, published_at, created_at, updated_at
		FROM blog_posts
		WHERE slug = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, slug).Scan(&post.ID, &post.Slug, &post.Title, &post.Excerpt,
		&post.Body, &post.Published, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get the blog post: %w", err)
	}

	return post, nil
}

func (r *blogRepository) ListPosts(ctx context.Context, page, size int, publishedOnly bool) ([]models.BlogPost, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := ""
	if publishedOnly {
		filter = " WHERE published = true"
	}

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM blog_posts`+filter).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, slug, title, excerpt, body, published, published_at, created_at, updated_at
		FROM blog_posts` + filter + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}

	defer rows.Close()

	var posts []models.BlogPost

	for rows.Next() {

		var post models.BlogPost

		err := rows.Scan(&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.Body, &post.Published,
			&post.PublishedAt, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the blog posts: %w", err)
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
