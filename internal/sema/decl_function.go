package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

// initFunction resolves the signature of a function. Arguments are resolved
// right away since override checks compare exact signatures.
func (c *Checker) initFunction(d *ast.FunctionDecl, sym *types.Symbol) *types.Wrapped {
	inObject := c.ctx.scope.Kind == types.ScopeObject
	if !inObject {
		c.rejectModifiers(&d.DeclHeader, sym, ast.ModStatic, "a function outside of a class")
	}
	if d.Kind.IsSpecial() {
		c.rejectModifiers(&d.DeclHeader, sym, ast.ModStatic|ast.ModFinal, "a "+d.Kind.String())
		if d.Kind == ast.FuncConstructor || d.Kind == ast.FuncCopyConstructor {
			c.rejectModifiers(&d.DeclHeader, sym, ast.ModOver, "a "+d.Kind.String())
		}
	}

	var result *types.Wrapped
	if d.Kind.IsSpecial() || d.Result == nil {
		result = types.WrapValue(types.Void).AsInstance()
	} else {
		result = c.resolveType(d.Result)
		if !result.IsError() {
			result = result.AsInstance()
		}
	}
	sym.IsAbstract = d.Body == nil

	fnScope := c.newScope(types.ScopeFunction)
	c.result.Scopes[d.ID()] = fnScope
	if d.Body != nil {
		body := types.NewScope(fnScope, types.ScopeBlock)
		c.table.AddScope(body)
		c.result.Scopes[d.Body.ID()] = body
	}

	failed := result.IsError()
	args := make([]*types.Wrapped, 0, len(d.Args))
	func() {
		defer c.push(context{
			scope:    fnScope,
			object:   c.ctx.object,
			function: sym,
			result:   result,
			isStatic: sym.IsStatic(),
		})()
		for _, arg := range d.Args {
			argSym := c.define(arg)
			argSym.IsArgument = true
			c.ensureInitialized(arg)
			if argSym.Type.IsError() || argSym.Type.IsCircular() {
				failed = true
				args = append(args, types.ErrorType())
				continue
			}
			args = append(args, argSym.Type.WithoutModifiers(types.ModStorage|types.ModFinal))
		}
	}()

	if failed {
		return types.ErrorType()
	}
	typ := types.Wrap(types.NewFunctionType(result, args), types.KindValue,
		types.ModInstance|types.ModStorage|types.ModFinal, nil)
	c.checkOverride(d, sym, typ)
	return typ
}

// resolveType resolves e and requires it to denote a type rather than a value.
func (c *Checker) resolveType(e ast.Expr) *types.Wrapped {
	t := c.resolveExpr(e)
	if t.IsError() {
		return t
	}
	if t.IsInstance() {
		c.report(diag.SemaUnexpectedExpression, e.Span(), "expected a type but found %s", t.Describe())
		return types.ErrorType()
	}
	return t
}
