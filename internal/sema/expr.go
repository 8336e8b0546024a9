package sema

import (
	"fmt"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

// resolveExpr computes the type of e once; later calls return the stored type
// without reporting anything again.
func (c *Checker) resolveExpr(e ast.Expr) *types.Wrapped {
	if e == nil {
		return types.ErrorType()
	}
	if t, ok := c.result.ExprTypes[e.ID()]; ok {
		return t
	}
	t := c.computeExpr(e)
	if t == nil {
		t = types.ErrorType()
	}
	c.result.ExprTypes[e.ID()] = t
	return t
}

func (c *Checker) computeExpr(e ast.Expr) *types.Wrapped {
	switch e := e.(type) {
	case *ast.SymbolExpr:
		return c.symbolExpr(e)
	case *ast.ThisExpr:
		return c.thisExpr(e)
	case *ast.NullExpr:
		return literal(types.Null)
	case *ast.BoolExpr:
		return literal(types.Bool)
	case *ast.IntExpr:
		return literal(types.Int)
	case *ast.FloatExpr:
		if e.IsFloat {
			return literal(types.Float)
		}
		return literal(types.Double)
	case *ast.MemberExpr:
		return c.memberExpr(e)
	case *ast.CallExpr:
		return c.callExpr(e)
	case *ast.NewExpr:
		return c.newExpr(e)
	case *ast.UnaryExpr:
		return c.unaryExpr(e)
	case *ast.BinaryExpr:
		return c.binaryExpr(e)
	case *ast.TernaryExpr:
		return c.ternaryExpr(e)
	case *ast.CastExpr:
		return c.castExpr(e)
	case *ast.ModifierExpr:
		return c.modifierExpr(e)
	case *ast.GenericExpr:
		return c.genericExpr(e)
	}
	panic(fmt.Errorf("sema: unexpected expression %T", e))
}

func literal(t types.Type) *types.Wrapped {
	return types.Wrap(t, types.KindValue, types.ModInstance, nil)
}

func (c *Checker) symbolExpr(e *ast.SymbolExpr) *types.Wrapped {
	sym := c.ctx.scope.LexicalFind(e.Name)
	if sym == nil {
		c.report(diag.SemaUnknownSymbol, e.Span(), "%s is not defined", e.Name)
		return types.ErrorType()
	}
	c.result.Uses[e.ID()] = sym
	t := c.symbolType(sym, e.Span())
	if t.IsError() {
		return t
	}
	if sym.EnclosingObject != nil && !sym.IsStatic() && !sym.IsArgument && sym.Scope.Kind == types.ScopeObject && t.IsInstance() {
		if !c.canAccessThis() || !c.ctx.object.IsSameOrDerivedFrom(sym.EnclosingObject) {
			c.report(diag.SemaMemberUnexpectedInstance, e.Span(),
				"cannot access instance member %s of %s from a static context", displayName(sym.Name), sym.EnclosingObject.Name)
		}
	}
	return t
}

func (c *Checker) thisExpr(e *ast.ThisExpr) *types.Wrapped {
	if !c.canAccessThis() {
		c.report(diag.SemaThisOutsideMember, e.Span(), "%q is only available inside instance members", "this")
		return types.ErrorType()
	}
	obj := c.ctx.object
	kind := types.KindPointer
	if obj.IsValueType {
		kind = types.KindReference
	}
	return types.Wrap(obj, kind, types.ModInstance, nil)
}

func (c *Checker) ternaryExpr(e *ast.TernaryExpr) *types.Wrapped {
	c.checkCondition(e.Cond)
	then := c.resolveValue(e.Then)
	els := c.resolveValue(e.Else)
	if then.IsError() || els.IsError() {
		return types.ErrorType()
	}
	common := types.CommonImplicitType(then, els)
	if common == nil {
		c.report(diag.SemaNoCommonType, e.Span(), "no common type for %s and %s", then.Describe(), els.Describe())
		return types.ErrorType()
	}
	return common.AsTemporary()
}

func (c *Checker) castExpr(e *ast.CastExpr) *types.Wrapped {
	x := c.resolveValue(e.X)
	target := c.resolveType(e.Type)
	if x.IsError() || target.IsError() {
		return types.ErrorType()
	}
	target = target.AsInstance()
	if !types.CanExplicitlyConvert(x, target) {
		c.report(diag.SemaIncompatibleTypes, e.Span(), "cannot convert from %s to %s", x.Describe(), target.Describe())
		return types.ErrorType()
	}
	return target
}

// resolveValue resolves e and requires a value rather than a type.
func (c *Checker) resolveValue(e ast.Expr) *types.Wrapped {
	t := c.resolveExpr(e)
	if t.IsError() {
		return t
	}
	if !t.IsInstance() {
		if !c.notValue[e.ID()] {
			c.notValue[e.ID()] = true
			c.report(diag.SemaUnexpectedExpression, e.Span(), "expected a value but found %s", t.Describe())
		}
		return types.ErrorType()
	}
	return t
}

func (c *Checker) checkCondition(e ast.Expr) {
	t := c.resolveValue(e)
	c.convert(e, t, literal(types.Bool), types.ConvNormal)
}

// convert reports a failed implicit conversion of expression e.
func (c *Checker) convert(e ast.Expr, from, to *types.Wrapped, mode types.ConvMode) bool {
	switch types.CheckConversion(from, to, mode) {
	case types.ConvOK:
		return true
	case types.ConvNeedMoveOrCopy:
		c.report(diag.SemaNeedMoveOrCopy, e.Span(),
			"cannot implicitly copy %s; use %q or %q", from.Describe(), "move", "copy")
	case types.ConvRValueToRef:
		c.report(diag.SemaRValueToRef, e.Span(),
			"cannot bind temporary %s to %s", from.Describe(), to.Describe())
	default:
		c.report(diag.SemaIncompatibleTypes, e.Span(),
			"cannot convert from %s to %s", from.Describe(), to.Describe())
	}
	return false
}
