// Package loop drives the reasoning cycle: it sends the transcript to the
// oracle, classifies the completion, dispatches tool actions, feeds
// observations back, and stops on a final answer or when the iteration
// budget runs out.
//
// Recoverable faults (unparseable completions, unknown tool names, tool
// failures) become corrective observations so the oracle can self-correct
// on the next iteration. Oracle transport faults and context cancellation
// end the run immediately.
package loop
