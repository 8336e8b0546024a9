package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/source"
	"bitscript/internal/types"
)

// callExpr is either a function call or implicit construction "Foo(...)".
func (c *Checker) callExpr(e *ast.CallExpr) *types.Wrapped {
	callee := c.resolveExpr(e.Callee)
	args := c.resolveArgs(e.Args)
	if callee.IsError() {
		return callee
	}

	if fn := callee.AsFunction(); fn != nil && callee.IsInstance() {
		c.checkArgs(e.Span(), fn.Args, e.Args, args)
		if fn.Result == nil {
			return literal(types.Void)
		}
		return fn.Result.AsTemporary().AsInstance()
	}

	if obj := callee.AsObject(); obj != nil && !callee.IsInstance() {
		if !c.checkConstructible(e.Span(), obj) {
			return types.ErrorType()
		}
		ctor := substituteFunc(obj.ConstructorType(), callee.Substitutions())
		c.checkArgs(e.Span(), ctor.Args, e.Args, args)
		return types.Wrap(obj, types.KindValue, types.ModInstance, callee.Substitutions())
	}

	c.report(diag.SemaInvalidCall, e.Callee.Span(), "cannot call %s", callee.Describe())
	return types.ErrorType()
}

// newExpr always yields an owned pointer.
func (c *Checker) newExpr(e *ast.NewExpr) *types.Wrapped {
	t := c.resolveType(e.Type)
	args := c.resolveArgs(e.Args)
	if t.IsError() {
		return t
	}
	obj := t.AsObject()
	if obj == nil || t.IsReference() || t.Ownership() != 0 {
		c.report(diag.SemaInvalidNew, e.Type.Span(), "cannot use %q with %s", "new", t.Describe())
		return types.ErrorType()
	}
	if !c.checkConstructible(e.Span(), obj) {
		return types.ErrorType()
	}
	ctor := substituteFunc(obj.ConstructorType(), t.Substitutions())
	c.checkArgs(e.Span(), ctor.Args, e.Args, args)
	return types.Wrap(obj, types.KindPointer, types.ModInstance|types.ModOwned, t.Substitutions())
}

func (c *Checker) checkConstructible(at source.Span, obj *types.ObjectType) bool {
	if obj.IsAbstract() {
		c.report(diag.SemaAbstractNew, at, "cannot construct abstract type %s", obj.Name)
		return false
	}
	if obj == c.natives.Math {
		c.report(diag.SemaInvalidNew, at, "cannot construct %s", obj.Name)
		return false
	}
	return true
}

func (c *Checker) resolveArgs(args []ast.Expr) []*types.Wrapped {
	out := make([]*types.Wrapped, len(args))
	for i, a := range args {
		out[i] = c.resolveValue(a)
	}
	return out
}

// checkArgs matches argument types against parameters with assignment rules.
func (c *Checker) checkArgs(at source.Span, params []*types.Wrapped, exprs []ast.Expr, args []*types.Wrapped) {
	if len(params) != len(args) {
		c.report(diag.SemaArgumentCount, at, "expected %d %s but got %d", len(params), plural(len(params), "argument"), len(args))
		return
	}
	for i, arg := range args {
		c.convert(exprs[i], arg, params[i], types.ConvAssignment)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func substituteFunc(fn *types.FunctionType, subs []types.Substitution) *types.FunctionType {
	if len(subs) == 0 {
		return fn
	}
	w := types.WrapValue(fn).Substitute(subs)
	return w.AsFunction()
}
