package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a call exceeds the limiter's budget; the
// dispatcher maps it to ServerInternalError like any other handler error.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitMiddleware guards handler invocations with one token-bucket
// limiter, protecting the device handle's mutex from being monopolized by a
// runaway or hostile peer. The bucket is shared by every call that passes
// through the returned Middleware: installed on a Dispatcher, it covers all
// of that dispatcher's connections together, not each connection apart.
//
// CRITICAL: the limiter is created in the OUTER closure (once per
// RateLimitMiddleware call), NOT inside the returned HandlerFunc — otherwise
// every call would get a fresh full bucket and rate limiting would have no
// effect.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, functionID uint32) ([]byte, error) {
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return next(ctx, functionID)
		}
	}
}
