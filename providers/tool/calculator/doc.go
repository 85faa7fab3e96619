// Package calculator provides an arithmetic evaluation tool backed by a
// restricted expression engine. The grammar is limited by construction:
// all engine builtins are disabled and only an allow-listed set of math
// functions and constants is exposed, so arbitrary identifiers fail at
// compile time instead of being interpreted.
package calculator
