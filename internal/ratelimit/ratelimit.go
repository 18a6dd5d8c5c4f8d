package ratelimit

import (
	"fmt"

	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const limitReachedMessage = "ThrottlerException: Too Many Requests"

// builds a per-client-IP rate limiting middleware from a formatted rate such
// as "100-M". Rejections and store failures are recorded on the context so
// the exception filter writes the response.
func Middleware(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			_ = c.Error(errors.NewTooManyRequestsException(limitReachedMessage))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			_ = c.Error(fmt.Errorf("rate limiter store failed: %w", err))
		}),
	), nil
}
