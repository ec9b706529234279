// This is a **mock authentication service**. It hands out JWT tokens that the
// user management API accepts, simulating a real identity provider.
package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gartstein/usermanagement/internal/usermanagement/auth"
	"github.com/gartstein/usermanagement/internal/usermanagement/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPort    = 8081
	defaultSubject = "12345"
	tokenTTL       = 24 * time.Hour
)

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func tokenHandler(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.DefaultQuery("sub", defaultSubject)
		token, err := auth.GenerateToken(subject, secret, tokenTTL)
		if err != nil {
			logger.Error("Failed to generate token", zap.Error(err))
			c.String(http.StatusInternalServerError, "Failed to generate token")
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresIn: int64(tokenTTL.Seconds())})
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := defaultPort
	if v := os.Getenv("AUTH_PORT"); v != "" {
		if port, err = strconv.Atoi(v); err != nil {
			logger.Fatal("invalid AUTH_PORT", zap.String("value", v))
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/token", tokenHandler(cfg.JWTSecret, logger))

	logger.Info("Authentication service running", zap.Int("port", port))
	if err := r.Run(":" + strconv.Itoa(port)); err != nil {
		logger.Fatal("authentication service stopped", zap.Error(err))
	}
}
