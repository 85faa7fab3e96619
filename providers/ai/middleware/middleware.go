package middleware

import (
	"github.com/reagent-ai/reagent/providers/ai"
)

// Middleware wraps one oracle call with additional behavior.
type Middleware func(next ai.CompleteFunc) ai.CompleteFunc

// Chain applies middlewares to provider, outermost first. A nil or empty
// middleware list returns the provider unchanged.
func Chain(provider ai.Provider, middlewares ...Middleware) ai.Provider {
	next := ai.CompleteFunc(provider.Complete)
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		next = middlewares[i](next)
	}
	return next
}
