package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgeprints/storefront/internal/errors"
	"github.com/forgeprints/storefront/internal/models"
	"github.com/forgeprints/storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const AdminContextKey = contextKey("admin")

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// RequireAdmin guards the back-office routes. Tokens are HS256 with an
// admin role claim; the storefront's customer sessions never carry one.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims := &models.AdminClaims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, errors.BadRequestError("unexpected signing method")
			}

			return m.jwtKey, nil
		})

		if err != nil || !token.Valid {
			logger.Warn("JWT validation failed")
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if claims.Role != "admin" {
			logger.Warn("Non-admin token on admin route", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.ForbiddenError("Admin access required"))
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, claims)

		requestScopedLogger := logger.With(slog.String("adminId", claims.UserID.String()))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
