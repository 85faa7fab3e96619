package tool

import "context"

// Tool is the interface every capability in the registry implements. A tool
// receives the raw argument string parsed out of the model's action directive
// and returns an [Observation]. It never returns a bare Go error: most tool
// failures are conversational data fed back to the model rather than control
// flow for the loop.
//
// Implementations must be safe for concurrent use; a single instance is
// shared by all parallel queries.
type Tool interface {
	// Name is the identifier the model uses in its action directive.
	// Lowercase snake_case by convention.
	Name() string

	// Description is injected verbatim into the system instructions so the
	// model knows what the tool does and when to use it.
	Description() string

	// Call executes the tool with the raw argument string. Blocking; must
	// honor ctx cancellation for anything network-bound.
	Call(ctx context.Context, input string) Observation
}

// Spec is the static registry entry advertised to the model: the tool's name
// and natural-language description.
type Spec struct {
	Name        string
	Description string
}
