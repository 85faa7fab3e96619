package tool

import "fmt"

// ErrorKind is a machine-readable classification of a tool failure.
type ErrorKind string

const (
	// Calculator failure modes.
	ErrDivisionByZero  ErrorKind = "division_by_zero"
	ErrSyntaxInvalid   ErrorKind = "syntax_invalid"
	ErrDomainError     ErrorKind = "domain_error"
	ErrDisallowedToken ErrorKind = "disallowed_token"

	// Search failure modes.
	ErrTimeout             ErrorKind = "timeout"
	ErrUpstreamUnavailable ErrorKind = "upstream_unavailable"

	// ErrInvalidInput marks unusable tool input, like an empty query.
	ErrInvalidInput ErrorKind = "invalid_input"

	// ErrCancelled marks a call aborted by the caller, not a tool fault.
	ErrCancelled ErrorKind = "cancelled"
)

// Error is a structured tool failure: a kind the caller can branch on plus a
// human-readable message that is rendered into the transcript so the model
// can decide whether to retry or explain the failure to the user.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Observation is the result of dispatching an action to a tool: either a
// success payload already serialized to text, or a structured failure. It is
// always converted to a text representation before entering the transcript,
// since the oracle only consumes text.
type Observation struct {
	// Content is the success payload. Empty when Err is set.
	Content string

	// Err is the structured failure, nil on success. An empty result set
	// from a search is NOT a failure; it is a successful observation whose
	// content says no results were found.
	Err *Error
}

// Success returns a successful observation with the given content.
func Success(content string) Observation {
	return Observation{Content: content}
}

// Failure returns a failed observation with a structured error.
func Failure(kind ErrorKind, format string, args ...any) Observation {
	return Observation{Err: &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}}
}

// IsError reports whether the observation is a failure.
func (o Observation) IsError() bool {
	return o.Err != nil
}

// Text renders the observation for transcript inclusion. Failures render as
// "Error (kind): message" so the model sees both the classification and the
// explanation.
func (o Observation) Text() string {
	if o.Err != nil {
		return fmt.Sprintf("Error (%s): %s", o.Err.Kind, o.Err.Message)
	}
	return o.Content
}
