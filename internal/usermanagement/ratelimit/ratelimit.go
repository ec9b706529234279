// Package ratelimit limits requests per client with a fixed window kept in redis.
package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIPAndPath limits each client IP separately on every route.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "rl:path:" + path + ":ip:" + ip
	}
}

// incrExpireScript increments the counter and starts the window on the first hit.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// Limiter counts requests per key in redis.
type Limiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	keyFn  KeyFunc
	logger *zap.Logger
}

func New(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, logger *zap.Logger) *Limiter {
	return &Limiter{
		rdb:    rdb,
		max:    max,
		window: window,
		keyFn:  keyFn,
		logger: logger.Named("rate_limiter"),
	}
}

// Middleware enforces the limit. It is a pass-through when redis is not
// configured and fails open when redis errors. fail renders the rejection.
func (l *Limiter) Middleware(fail func(c *gin.Context, err error)) gin.HandlerFunc {
	if l.rdb == nil || l.max <= 0 || l.window <= 0 || l.keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := l.keyFn(c)

		count, err := incrExpireScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int()
		if err != nil {
			l.logger.Warn("rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("key", key),
			)
			c.Next()
			return
		}

		resetSec := 0
		if ttl, err := l.rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			resetSec = int((ttl + time.Second - 1) / time.Second)
		}

		remaining := l.max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > l.max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			fail(c, fmt.Errorf("%w: try again in %d seconds", e.ErrRateLimited, resetSec))
			return
		}
		c.Next()
	}
}
