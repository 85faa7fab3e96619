// Package utils provides shared low-level helpers used throughout the
// reagent internals: a synchronous JSON-over-HTTP POST helper used by the
// oracle and search backends, and small string utilities.
package utils
