// Package token defines lexical token kinds for the Quill front end.
// Invariants:
//   - Token.Text equals the source text covered by Token.Span, except for
//     forged tokens, which are zero-width and carry no text.
//   - Trivia (whitespace runs, comments) are ordinary tokens with
//     CategoryTrivia; concatenating Text of the unfiltered stream reproduces
//     the source exactly.
//   - Built-in type names (int, double, ...) are identifiers. They are
//     recognized by the binder, not the lexer.
package token
