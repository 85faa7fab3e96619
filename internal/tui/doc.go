// Package tui implements the interactive chat session as a Bubble Tea
// program: a scrollback viewport, a single-line input, and a spinner while
// a query is running. Esc cancels an in-flight query; typing an exit word
// ends the session.
package tui
