package sema

import (
	"fmt"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/parser"
	"bitscript/internal/source"
	"bitscript/internal/types"
)

type initState uint8

const (
	initNone initState = iota
	initRunning
	initDone
)

// define binds the declaration name in the current scope and remembers the
// context so later lazy initialization resolves in the right place.
func (c *Checker) define(decl ast.Decl) *types.Symbol {
	if sym := c.result.Symbols[decl.ID()]; sym != nil {
		return sym
	}
	hdr := decl.Header()
	scope := c.ctx.scope
	sym := types.NewSymbol(hdr.Name.Name, scope, decl)
	if scope.Kind == types.ScopeObject {
		sym.EnclosingObject = scope.Object
	}
	c.result.Symbols[decl.ID()] = sym
	c.defined[decl.ID()] = c.ctx
	c.table.AddSymbol(sym)
	if obj, ok := decl.(*ast.ObjectDecl); ok {
		c.objectDecls = append(c.objectDecls, obj)
	}

	// Унаследованные символы (чужой Scope) перекрываются без ошибки.
	if prev := scope.Find(sym.Name); prev != nil && prev.Scope == scope {
		if b := diag.ReportError(c.reporter, diag.SemaDuplicateSymbol, hdr.Name.Span,
			fmt.Sprintf("%s is already defined in this scope", displayName(sym.Name))); b != nil {
			b.WithNote(prev.Span, "previous definition is here")
			b.Emit()
		}
		return sym
	}
	scope.Replace(sym)
	return sym
}

// ensureInitialized computes the type of decl's symbol at most once. A
// re-entrant request for the same declaration leaves the CIRCULAR sentinel in
// place; the reference that observes it reports the cycle.
func (c *Checker) ensureInitialized(decl ast.Decl) *types.Symbol {
	sym := c.result.Symbols[decl.ID()]
	if sym == nil {
		panic(fmt.Errorf("sema: declaration %q (node %d) initialized before define", decl.Header().Name.Name, decl.ID()))
	}
	switch c.initState[decl.ID()] {
	case initDone, initRunning:
		return sym
	}
	if sym.Type != nil {
		c.initState[decl.ID()] = initDone
		return sym
	}

	c.initState[decl.ID()] = initRunning
	sym.Type = types.CircularType()
	ctx, ok := c.defined[decl.ID()]
	if !ok {
		panic(fmt.Errorf("sema: declaration %q has no definition context", sym.Name))
	}
	restore := c.push(ctx)

	var typ *types.Wrapped
	switch d := decl.(type) {
	case *ast.ObjectDecl:
		typ = c.initObject(d, sym)
	case *ast.FunctionDecl:
		typ = c.initFunction(d, sym)
	case *ast.VariableDecl:
		typ = c.initVariable(d, sym)
	default:
		panic(fmt.Errorf("sema: unexpected declaration %T", decl))
	}
	restore()

	if typ == nil || typ.IsCircular() {
		panic(fmt.Errorf("sema: circular type escaped initialization of %q", sym.Name))
	}
	sym.Type = typ
	c.initState[decl.ID()] = initDone
	return sym
}

// symbolType returns the resolved type of sym or reports the cycle that is
// keeping it CIRCULAR.
func (c *Checker) symbolType(sym *types.Symbol, at source.Span) *types.Wrapped {
	if sym.Decl != nil {
		c.ensureInitialized(sym.Decl)
	}
	if sym.Type == nil || sym.Type.IsCircular() {
		c.report(diag.SemaCircularType, at, "cyclic reference to %s", displayName(sym.Name))
		return types.ErrorType()
	}
	return sym.Type
}

// rejectModifiers reports and strips every bit of mask present on hdr.
func (c *Checker) rejectModifiers(hdr *ast.DeclHeader, sym *types.Symbol, mask ast.SymbolMods, where string) {
	for _, bit := range []ast.SymbolMods{ast.ModOver, ast.ModFinal, ast.ModStatic} {
		if mask.Has(bit) && hdr.Mods.Has(bit) {
			c.report(diag.SemaBadModifier, hdr.ModSpan(bit), "%q is not allowed on %s", bit.String(), where)
			hdr.Strip(bit)
			sym.Mods &^= bit
		}
	}
}

// displayName hides the reserved names of special functions.
func displayName(name string) string {
	switch name {
	case parser.ConstructorName:
		return "constructor"
	case parser.CopyConstructorName:
		return "copy constructor"
	case parser.DestructorName:
		return "destructor"
	case parser.MoveDestructorName:
		return "move destructor"
	}
	return name
}
