// Package transcript holds the append-only record of a reasoning run: the
// system prompt, the user query, the oracle's thought/action segments, the
// observations the loop fed back, and the final answer.
//
// A [Transcript] is concurrency-safe and renders to the chat-message list
// sent to the oracle via [Transcript.Messages]. Observations render as
// user-role messages prefixed with "Observation: " so the oracle sees them
// as environment feedback rather than its own output.
package transcript
