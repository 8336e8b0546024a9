package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/symbols"
	"bitscript/internal/types"
)

// Options configure a semantic pass over a module.
type Options struct {
	Reporter diag.Reporter
	// Table receives every scope and symbol; a fresh one is created when nil.
	Table *symbols.Table
}

// Result stores semantic artefacts produced by the checker. Backends read the
// typed tree through these side tables.
type Result struct {
	// ExprTypes holds the computed type of every resolved expression.
	ExprTypes map[ast.NodeID]*types.Wrapped
	// Symbols maps each declaration to its symbol.
	Symbols map[ast.NodeID]*types.Symbol
	// Uses maps symbol and member expressions to the symbol they name.
	Uses map[ast.NodeID]*types.Symbol
	// Scopes maps modules, blocks, functions and objects to the scope they introduce.
	Scopes map[ast.NodeID]*types.Scope

	// Objects lists user object types in declaration order.
	Objects []*types.ObjectType
	// SortedObjects puts base types and value field types before their users.
	SortedObjects []*types.ObjectType

	Module  *types.Scope
	Natives *Natives
	Table   *symbols.Table
}

// Check resolves mod: binds names, computes types, validates overrides and
// annotates every expression. It never stops at the first error.
func Check(mod *ast.Module, opts Options) *Result {
	return NewChecker(opts).CheckModule(mod)
}

// Checker is the resolver. It is single threaded; one Checker resolves one module.
type Checker struct {
	reporter diag.Reporter
	result   *Result
	natives  *Natives
	table    *symbols.Table

	ctx       context
	defined   map[ast.NodeID]context
	initState map[ast.NodeID]initState
	// notValue: type expressions already rejected where a value was required.
	notValue map[ast.NodeID]bool

	objectDecls []*ast.ObjectDecl
	checked     bool
}

// NewChecker prepares the native environment and an empty module scope.
func NewChecker(opts Options) *Checker {
	table := opts.Table
	if table == nil {
		table = symbols.NewTable(symbols.Hints{})
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	natives := NewNatives(table)
	module := types.NewScope(natives.Prelude, types.ScopeModule)
	table.AddScope(module)

	c := &Checker{
		reporter: reporter,
		natives:  natives,
		table:    table,
		result: &Result{
			ExprTypes: make(map[ast.NodeID]*types.Wrapped),
			Symbols:   make(map[ast.NodeID]*types.Symbol),
			Uses:      make(map[ast.NodeID]*types.Symbol),
			Scopes:    make(map[ast.NodeID]*types.Scope),
			Module:    module,
			Natives:   natives,
			Table:     table,
		},
		defined:   make(map[ast.NodeID]context),
		initState: make(map[ast.NodeID]initState),
		notValue:  make(map[ast.NodeID]bool),
	}
	c.ctx = context{scope: module}
	return c
}

// CheckModule resolves mod once; later calls return the same result.
func (c *Checker) CheckModule(mod *ast.Module) *Result {
	if c.checked || mod == nil || mod.Body == nil {
		return c.result
	}
	c.checked = true
	c.result.Scopes[mod.ID()] = c.result.Module
	c.result.Scopes[mod.Body.ID()] = c.result.Module

	for _, stmt := range mod.Body.Stmts {
		if decl, ok := stmt.(ast.Decl); ok {
			c.define(decl)
		}
	}
	for _, stmt := range mod.Body.Stmts {
		c.resolveStmt(stmt)
	}

	for _, decl := range c.objectDecls {
		if sym := c.result.Symbols[decl.ID()]; sym != nil && sym.Type != nil {
			if obj := sym.Type.AsObject(); obj != nil {
				obj.EnsureInitialized()
				c.result.Objects = append(c.result.Objects, obj)
			}
		}
	}
	c.checkValueCycles()
	c.result.SortedObjects = sortObjects(c.result.Objects, c.valueFieldTypes)
	return c.result
}

// ResolveExpr returns the computed type of e, resolving it in module context
// when it has not been resolved yet.
func (c *Checker) ResolveExpr(e ast.Expr) *types.Wrapped {
	return c.resolveExpr(e)
}

func (c *Checker) Result() *Result { return c.result }

// TypeOf returns the computed type of e or nil.
func (r *Result) TypeOf(e ast.Expr) *types.Wrapped {
	if e == nil {
		return nil
	}
	return r.ExprTypes[e.ID()]
}

// SymbolOf returns the symbol bound to decl or nil.
func (r *Result) SymbolOf(decl ast.Decl) *types.Symbol {
	if decl == nil {
		return nil
	}
	return r.Symbols[decl.ID()]
}
