// Package diag defines the diagnostic model shared by every compiler phase.
//
// A Diagnostic carries a Severity, a numeric Code with a stable textual ID
// (LEXnnnn, SYNnnnn, SEMnnnn, ...), a short message and the primary
// source.Span it is anchored to. Phases never print: they emit through a
// Reporter, normally a BagReporter writing into the compilation's Bag.
//
// Bag is append-only. It keeps an error counter that survives the capacity
// limit, so HasErrors answers correctly even after diagnostics were dropped;
// the layout pass and every backend must not run when HasErrors is true.
//
// Formatting lives in internal/diagfmt; this package only offers the golden
// one-line form used by tests.
package diag
