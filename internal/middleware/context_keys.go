package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys set by other packages.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	principalIDKey = contextKey("principalID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when none was stored.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// WithPrincipalID returns a copy of ctx carrying the authenticated principal id.
func WithPrincipalID(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, principalIDKey, principalID)
}

// GetPrincipalIDFromContext retrieves the authenticated principal id.
// It returns the id and a boolean indicating if it was found.
func GetPrincipalIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(principalIDKey)); exists {
		id, ok := v.(string)
		return id, ok && id != ""
	}
	id, ok := c.Request.Context().Value(principalIDKey).(string)
	return id, ok && id != ""
}
