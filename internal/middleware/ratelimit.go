package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// ByClientIP counts requests per client address.
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByPrincipal counts requests per authenticated principal, falling back to the client address.
func ByPrincipal(c *gin.Context) string {
	if id, ok := GetPrincipalIDFromContext(c); ok {
		return "principal:" + id
	}
	return c.ClientIP()
}

// NewLimiter builds a limiter from a formatted rate such as "5-M".
// A nil client keeps counters in process memory; otherwise they are shared through redis.
func NewLimiter(formatted, prefix string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}
	if client == nil {
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), rate), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("create redis limiter store: %w", err)
	}
	return limiter.New(store, rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests.
func RateLimit(limiterInstance *limiter.Limiter, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		context, err := limiterInstance.Get(c.Request.Context(), key)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprint(context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(context.Remaining))
		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("limit", context.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
