// Package types holds the type model of bitscript: primitive singletons,
// function and object types, type parameters and the Wrapped type that adds
// kind (value/pointer/reference), modifiers and generic substitutions.
//
// Scope and Symbol live here as well because an object type owns a scope and
// a symbol owns a wrapped type.
//
// logic.go contains the pure conversion predicates used by the resolver.
package types
