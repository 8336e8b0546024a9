// Package symbols registers the scopes and symbols created during resolution
// in ID-addressed arenas. The table backs the symbol dump of the CLI and a
// structural self-check run by tests.
package symbols
