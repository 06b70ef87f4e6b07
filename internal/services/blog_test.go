package service_test

import (
	"database/sql"
	"testing"
	"time"

	appErrors "github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	repoMocks "github.com/forgeprints/storefront/internal/repositories/mocks"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	ctx := t.Context()

	postRequest := func() *models.CreateBlogPostRequest {
		return &models.CreateBlogPostRequest{
			Slug:    "choosing-the-right-filament",
			Title:   "Choosing the right filament",
			Excerpt: "PLA, PETG or ABS?",
			Body:    "<p>It depends on the part.</p>",
		}
	}

	t.Run("Draft has no publication date", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		req := postRequest()

		mockRepo.On("GetPostBySlug", ctx, req.Slug).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreatePost", ctx, mock.MatchedBy(func(p *models.BlogPost) bool {
			return p.Slug == req.Slug && !p.Published && p.PublishedAt == nil
		})).Return(nil).Once()

		post, err := blogService.CreatePost(ctx, req)

		require.NoError(t, err)
		assert.False(t, post.Published)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("Publishing stamps the publication date", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		req := postRequest()
		req.Published = true

		mockRepo.On("GetPostBySlug", ctx, req.Slug).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreatePost", ctx, mock.Anything).Return(nil).Once()

		post, err := blogService.CreatePost(ctx, req)

		require.NoError(t, err)
		assert.True(t, post.Published)
		require.NotNil(t, post.PublishedAt)
		assert.WithinDuration(t, time.Now(), *post.PublishedAt, time.Minute)
	})

	t.Run("Script tags are stripped from the body", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		req := postRequest()
		req.Body = `<p>Layer adhesion matters.</p><script>alert("x")</script>`

		mockRepo.On("GetPostBySlug", ctx, req.Slug).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreatePost", ctx, mock.Anything).Return(nil).Once()

		post, err := blogService.CreatePost(ctx, req)

		require.NoError(t, err)
		assert.Contains(t, post.Body, "<p>Layer adhesion matters.</p>")
		assert.NotContains(t, post.Body, "<script>")
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		req := postRequest()
		existing := &models.BlogPost{ID: uuid.New(), Slug: req.Slug}

		mockRepo.On("GetPostBySlug", ctx, req.Slug).Return(existing, nil).Once()

		post, err := blogService.CreatePost(ctx, req)

		require.Error(t, err)
		assert.Nil(t, post)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := t.Context()

	t.Run("Publishing a draft stamps the publication date once", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		draft := &models.BlogPost{
			ID:    uuid.New(),
			Slug:  "choosing-the-right-filament",
			Title: "Choosing the right filament",
		}
		published := true

		mockRepo.On("GetPostBySlug", ctx, draft.Slug).Return(draft, nil).Once()
		mockRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p *models.BlogPost) bool {
			return p.Published && p.PublishedAt != nil
		})).Return(nil).Once()

		post, err := blogService.UpdatePost(ctx, draft.Slug, &models.UpdateBlogPostRequest{Published: &published})

		require.NoError(t, err)
		assert.True(t, post.Published)
	})

	t.Run("Republishing keeps the original publication date", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		firstPublished := time.Now().Add(-48 * time.Hour)
		post := &models.BlogPost{
			ID:          uuid.New(),
			Slug:        "choosing-the-right-filament",
			Published:   true,
			PublishedAt: &firstPublished,
		}
		published := true

		mockRepo.On("GetPostBySlug", ctx, post.Slug).Return(post, nil).Once()
		mockRepo.On("UpdatePost", ctx, mock.Anything).Return(nil).Once()

		updated, err := blogService.UpdatePost(ctx, post.Slug, &models.UpdateBlogPostRequest{Published: &published})

		require.NoError(t, err)
		assert.Equal(t, firstPublished, *updated.PublishedAt)
	})

	t.Run("Unknown slug", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		mockRepo.On("GetPostBySlug", ctx, "missing-post").Return(nil, sql.ErrNoRows).Once()

		post, err := blogService.UpdatePost(ctx, "missing-post", &models.UpdateBlogPostRequest{})

		require.Error(t, err)
		assert.Nil(t, post)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListPosts(t *testing.T) {
	ctx := t.Context()

	t.Run("Storefront listing asks for published posts only", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		mockRepo.On("ListPosts", ctx, 1, 10, true).Return([]models.BlogPost{}, 0, nil).Once()

		_, _, err := blogService.ListPosts(ctx, 1, 10, false)

		require.NoError(t, err)
	})

	t.Run("Back-office listing includes drafts", func(t *testing.T) {
		mockRepo := repoMocks.NewBlogRepository(t)
		blogService := service.NewBlogService(mockRepo)

		mockRepo.On("ListPosts", ctx, 1, 10, false).Return([]models.BlogPost{}, 0, nil).Once()

		_, _, err := blogService.ListPosts(ctx, 1, 10, true)

		require.NoError(t, err)
	})
}
