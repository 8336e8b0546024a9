// Package token defines lexical token kinds and trivia for the bitscript compiler.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Primitive type names (int, bool, float, double, void) are identifiers.
//     They are bound by the prelude scope, not recognized by the lexer.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
package token
