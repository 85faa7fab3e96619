package middleware

import (
	"context"
	"time"

	"github.com/reagent-ai/reagent/providers/ai"
)

// Timeout enforces a per-request deadline on every oracle call. The context
// is wrapped with context.WithTimeout and canceled once the provider returns
// or the deadline expires. If the caller supplies a context that already has
// a shorter deadline, that shorter deadline wins as per normal context
// semantics.
func Timeout(timeout time.Duration) Middleware {
	return func(next ai.CompleteFunc) ai.CompleteFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
