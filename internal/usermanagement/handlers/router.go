package handlers

import (
	"net/http"
	"time"

	"github.com/gartstein/usermanagement/internal/usermanagement/auth"
	"github.com/gartstein/usermanagement/internal/usermanagement/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries the cross-cutting settings of the HTTP API.
type RouterConfig struct {
	CORSAllowedOrigins []string
	JWTSecret          string
	// AuthRequired makes the create endpoints reject anonymous calls.
	AuthRequired bool
	// RateLimiter throttles the availability checks when set.
	RateLimiter *ratelimit.Limiter
	// Availability runs after the rate limiter on the availability checks.
	Availability []gin.HandlerFunc
}

// NewRouter wires every route of the service onto a fresh gin engine.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.logger.Error("panic recovered", zap.Any("panic", recovered))
		writeProblem(c, newProblem(http.StatusInternalServerError, "An unexpected error occurred."))
	}))
	r.Use(requestID())
	r.Use(requestLogger(h.logger.Named("access")))
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(auth.Authenticate(cfg.JWTSecret, h.abortWithError))

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)

	writes := []gin.HandlerFunc{}
	if cfg.AuthRequired {
		writes = append(writes, auth.RequireToken(h.abortWithError))
	}

	availability := []gin.HandlerFunc{}
	if cfg.RateLimiter != nil {
		availability = append(availability, cfg.RateLimiter.Middleware(h.abortWithError))
	}
	availability = append(availability, cfg.Availability...)

	v1 := r.Group(BasePath)
	{
		v1.POST("/industry", chain(writes, h.CreateIndustry)...)
		v1.GET("/industries", h.ListIndustries)
		v1.GET("/industry", h.ListIndustries)

		v1.POST("/company", chain(writes, h.CreateCompany)...)
		v1.GET("/companies", h.ListCompanies)
		v1.GET("/company/:id", h.GetCompany)

		user := v1.Group("/user")
		user.GET("/check-availability", chain(availability, h.CheckUsernameAvailability)...)
		user.GET("/check-email-availability", chain(availability, h.CheckEmailAvailability)...)
		user.POST("/register", h.RegisterUser)
	}

	r.NoRoute(func(c *gin.Context) {
		writeProblem(c, newProblem(http.StatusNotFound, "The requested resource does not exist."))
	})
	return r
}

// chain copies mw so routes never share a backing array.
func chain(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, handler)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Location", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
