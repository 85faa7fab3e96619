// Package tool defines the capability contract for the agent's fixed
// toolset: the [Tool] interface every capability implements, the structured
// [Observation] returned from a dispatch, and the read-only [Registry] the
// loop controller resolves action names against.
//
// The toolset is deliberately closed: two concrete implementations ship with
// reagent (calculator, tavily search) and the registry is populated once at
// process start. Tools are invoked only through a parsed action, never with
// arbitrary code.
package tool
