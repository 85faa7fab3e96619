// Package groq implements the reasoning-oracle [ai.Provider] against the
// Groq chat-completions API, which is OpenAI wire compatible. Requests that
// name no model fall back to llama-3.3-70b-versatile; the base URL and HTTP
// client can be overridden through the With* builders for testing or
// self-hosted gateways.
package groq
