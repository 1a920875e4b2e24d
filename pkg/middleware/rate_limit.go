package middleware

import (
	"fmt"
	"net/http"

	"inventory-management/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// RateLimitMiddleware limits requests per client IP. formatted follows the
// limiter notation, e.g. "600-M" for 600 requests per minute.
func RateLimitMiddleware(formatted string, logger *zap.Logger) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				errors.NewStandardError("RateLimitExceeded", "too many requests", formatted))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Error("Rate limiter failed", zap.Error(err))
			c.Next()
		}),
	), nil
}
