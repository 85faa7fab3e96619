// Package prompt builds the system prompt that fixes the oracle's output
// grammar. The prompt lists the registered tools verbatim, states the
// routing rules, and pins the Thought / Action / Action Input /
// Observation / Final Answer format the parser expects.
package prompt
