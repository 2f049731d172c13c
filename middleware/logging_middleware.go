package middleware

import (
	"context"
	"time"

	"github.com/moodyhunter/virtiod/internal/obslog"
)

// LoggingMiddleware records the function_id, duration, and any error for
// each RPC call. It captures the start time before calling next and logs
// the elapsed time after next returns.
func LoggingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, functionID uint32) ([]byte, error) {
			start := time.Now()

			data, err := next(ctx, functionID)

			duration := time.Since(start)
			if err != nil {
				obslog.Warn("rpc call failed", "function_id", functionID, "duration", duration, "error", err)
			} else {
				obslog.Debug("rpc call", "function_id", functionID, "duration", duration)
			}
			return data, err
		}
	}
}
