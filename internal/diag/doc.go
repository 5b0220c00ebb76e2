// Package diag defines the diagnostic model shared by the lexer, the parser
// and the binder.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Warning or Error (severity.go).
//   - Code – compact numeric identifier (codes.go). The thousands digit names
//     the producing stage: 1xxx lexer, 2xxx parser, 3xxx binder, 4xxx driver.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span and its resolved line/column.
//   - Notes – optional secondary spans, e.g. the candidates of an ambiguous call.
//
// # Ordering
//
// Producers never retract a diagnostic. A Bag keeps emission order, and the
// driver concatenates the per-stage bags lexer first, so the final list is
// stage-ordered without sorting.
//
// # Scope
//
// Package diag does no formatting for humans and no IO. Rendering lives in
// internal/diagfmt; FormatGolden here is the compact form tests compare
// against.
package diag
