package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Author    string    `json:"author"`
	Email     string    `json:"-"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Author  string `json:"author" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}
