package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminClaims is the JWT payload carried on back-office requests. The
// storefront's customer sessions live with the external auth provider and
// never reach this service as JWTs.
type AdminClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}
