package ai

import "errors"

// ErrUpstreamUnavailable indicates the oracle backend could not be reached or
// answered with a server-side failure (network error, auth rejection, 5xx).
// Fatal for the current query.
var ErrUpstreamUnavailable = errors.New("reagent: oracle upstream unavailable")

// ErrRateLimited indicates the backend refused the request due to rate
// limiting (HTTP 429). Fatal for the current query; retries, if any, belong
// to a resilience wrapper outside the loop (see providers/ai/middleware).
var ErrRateLimited = errors.New("reagent: oracle rate limited")
