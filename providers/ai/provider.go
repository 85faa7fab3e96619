package ai

import "context"

// Provider is the reasoning-oracle interface. Given the serialized transcript
// in request.Messages it returns the next model-generated text segment.
//
// Implementations must be safe for concurrent use: independent queries run in
// parallel against a single shared Provider, each with its own transcript.
// A Provider never stores conversational state between calls.
//
// Failures of the backend itself are reported by wrapping the sentinel errors
// in this package ([ErrUpstreamUnavailable], [ErrRateLimited]); callers check
// them with errors.Is. Both are fatal for the current query; the loop
// controller does not feed infrastructure failures back to the model.
type Provider interface {
	Complete(ctx context.Context, request ChatRequest) (*ChatResponse, error)
}

// CompleteFunc adapts a plain function to the [Provider] interface, mirroring
// http.HandlerFunc. Used by middleware and by scripted test oracles.
type CompleteFunc func(ctx context.Context, request ChatRequest) (*ChatResponse, error)

// Complete calls f.
func (f CompleteFunc) Complete(ctx context.Context, request ChatRequest) (*ChatResponse, error) {
	return f(ctx, request)
}
