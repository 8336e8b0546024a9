package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

// initVariable resolves the declared type. The initializer is checked later
// with the statement.
func (c *Checker) initVariable(d *ast.VariableDecl, sym *types.Symbol) *types.Wrapped {
	inObject := c.ctx.scope.Kind == types.ScopeObject
	if !inObject {
		c.rejectModifiers(&d.DeclHeader, sym, ast.ModStatic, "a variable outside of a class")
	}
	if sym.IsArgument {
		c.rejectModifiers(&d.DeclHeader, sym, ast.ModOver|ast.ModStatic, "an argument")
	}

	t := c.resolveType(d.Type)
	if t.IsError() {
		return t
	}
	if t.IsVoid() {
		c.report(diag.SemaBadVariableType, d.Type.Span(), "cannot declare %s of type void", displayName(sym.Name))
		return types.ErrorType()
	}
	if t.AsFunction() != nil {
		c.report(diag.SemaBadVariableType, d.Type.Span(), "cannot declare %s of function type %s", sym.Name, t.String())
		return types.ErrorType()
	}
	if obj := t.AsObject(); obj != nil && t.IsValue() && obj.IsAbstract() {
		c.report(diag.SemaBadVariableType, d.Type.Span(), "cannot declare a value of abstract type %s", obj.Name)
		return types.ErrorType()
	}

	mods := types.ModInstance | types.ModStorage
	if sym.IsFinal() {
		mods |= types.ModFinal
	}
	typ := t.WithModifiers(mods)
	if inObject {
		c.checkOverride(d, sym, typ)
	} else {
		c.rejectModifiers(&d.DeclHeader, sym, ast.ModOver, "a variable outside of a class")
	}
	return typ
}
