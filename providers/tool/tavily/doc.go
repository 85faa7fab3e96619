// Package tavily provides a web search tool backed by the Tavily Search
// API. Results are rendered as a numbered plain-text list so the oracle
// can cite titles and URLs directly in its reasoning.
package tavily
