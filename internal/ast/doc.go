// Package ast holds the untyped syntax tree produced by the parser.
//
// Node families (statements, declarations, expressions) are closed: the
// interfaces carry unexported marker methods, so a type switch over the
// concrete node types in this package is exhaustive. Every node is created
// through a Builder and receives a unique NodeID; semantic results are kept
// in side tables keyed by that ID, never written into the nodes.
package ast
