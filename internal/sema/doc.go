// Package sema resolves a parsed module: it binds names in scopes, computes
// the type of every declaration and expression, checks overrides and the
// ownership rules of assignments, and records the results in side tables.
//
// Declarations are initialized lazily. define binds a name and captures the
// resolver context; ensureInitialized computes the symbol type on first use,
// with the CIRCULAR sentinel guarding against cycles. Object types defer the
// facts that need every member (abstractness, constructor signature) to
// Checker.InitializeObject.
package sema
