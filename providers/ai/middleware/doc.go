// Package middleware provides composable wrappers around an [ai.Provider]:
// per-call timeouts, structured request/response logging, and an optional
// retry layer for transient backend failures.
//
// The loop controller itself never retries; resilience is layered on the
// provider before it is handed to the controller:
//
//	oracle := middleware.Chain(groq.New(key),
//	    middleware.Logging(logger, middleware.LogLevelStandard),
//	    middleware.Timeout(30*time.Second),
//	)
//
// Middlewares apply outside-in: the first element of the chain sees the
// request first.
package middleware
