// Package parse turns raw oracle completions into structured steps.
//
// The oracle replies in a fixed text grammar (Thought / Action /
// Action Input / Final Answer). [ParseStep] classifies a completion into
// exactly one step kind, with final answers taking precedence over
// actions when a completion contains both. [NormalizeInput] cleans up
// the Action Input line, unwrapping code fences, quotes and the JSON
// envelopes some models emit around a plain string.
package parse
