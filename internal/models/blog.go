package models

import (
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateBlogPostRequest struct {
	Slug      string `json:"slug" validate:"required,min=3,max=120"`
	Title     string `json:"title" validate:"required,min=3,max=200"`
	Excerpt   string `json:"excerpt,omitempty" validate:"max=500"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

type UpdateBlogPostRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Excerpt   *string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
