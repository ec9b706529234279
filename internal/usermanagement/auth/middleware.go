// Package auth provides gin middleware and JWT token validation to secure
// write endpoints and to attribute audit fields to a subject.
package auth

import (
	"context"
	"fmt"
	"strings"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// FailFunc renders an authentication failure and aborts the request.
type FailFunc func(c *gin.Context, err error)

// Authenticate validates a Bearer token when one is presented and stores its
// claims and subject on the request context. Requests without a token pass
// through untouched; RequireToken rejects them where needed.
func Authenticate(jwtSecret string, fail FailFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, err := extractTokenFromHeader(header)
		if err != nil {
			fail(c, err)
			return
		}
		if jwtSecret == "" {
			fail(c, fmt.Errorf("%w: token validation is not configured", e.ErrUnauthorized))
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			fail(c, fmt.Errorf("%w: %v", e.ErrUnauthorized, err))
			return
		}

		ctx := context.WithValue(c.Request.Context(), userContextKey, claims)
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			ctx = models.WithActor(ctx, sub)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireToken rejects requests that Authenticate did not accept a token for.
func RequireToken(fail FailFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClaimsFromContext(c.Request.Context()); !ok {
			fail(c, fmt.Errorf("%w: authorization header required", e.ErrUnauthorized))
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the claims of a validated token.
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	return claims, ok
}

func extractTokenFromHeader(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", fmt.Errorf("%w: invalid authorization format: missing Bearer prefix", e.ErrUnauthorized)
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return "", fmt.Errorf("%w: invalid authorization format: empty token", e.ErrUnauthorized)
	}

	return tokenString, nil
}
