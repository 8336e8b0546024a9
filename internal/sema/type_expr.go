package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

// modifierExpr applies owned/shared/ref to a type. Stacked modifiers are one
// error anchored at the modifier keywords.
func (c *Checker) modifierExpr(e *ast.ModifierExpr) *types.Wrapped {
	if _, nested := e.X.(*ast.ModifierExpr); nested {
		span := e.KwSpan
		names := e.Modifier.String()
		inner := e.X
		for {
			m, ok := inner.(*ast.ModifierExpr)
			if !ok {
				break
			}
			span = span.Cover(m.KwSpan)
			names += " " + m.Modifier.String()
			c.result.ExprTypes[m.ID()] = types.ErrorType()
			inner = m.X
		}
		c.resolveExpr(inner)
		c.report(diag.SemaConflictingModifiers, span, "cannot combine pointer modifiers %q", names)
		return types.ErrorType()
	}

	x := c.resolveExpr(e.X)
	if x.IsError() {
		return x
	}
	if x.IsInstance() {
		c.report(diag.SemaUnexpectedExpression, e.X.Span(), "%q expects a type but found %s", e.Modifier.String(), x.Describe())
		return types.ErrorType()
	}
	if x.AsObject() == nil && x.AsParameter() == nil {
		c.report(diag.SemaInvalidTypeKind, e.Span(), "%q cannot be applied to %s", e.Modifier.String(), x.Describe())
		return types.ErrorType()
	}
	switch e.Modifier {
	case ast.PtrOwned:
		return x.WithKind(types.KindPointer).WithoutModifiers(types.ModShared).WithModifiers(types.ModOwned)
	case ast.PtrShared:
		return x.WithKind(types.KindPointer).WithoutModifiers(types.ModOwned).WithModifiers(types.ModShared)
	default:
		return x.WithKind(types.KindReference)
	}
}

// genericExpr binds type arguments: List<Foo>.
func (c *Checker) genericExpr(e *ast.GenericExpr) *types.Wrapped {
	base := c.resolveType(e.X)
	params := make([]*types.Wrapped, len(e.Params))
	failed := base.IsError()
	for i, p := range e.Params {
		params[i] = c.resolveType(p)
		if params[i].IsError() {
			failed = true
		}
	}
	if failed {
		return types.ErrorType()
	}
	obj := base.AsObject()
	if obj == nil || len(obj.Params) == 0 {
		c.report(diag.SemaInvalidTypeKind, e.X.Span(), "%s does not take type parameters", base.Describe())
		return types.ErrorType()
	}
	if len(base.Substitutions()) > 0 {
		c.report(diag.SemaInvalidTypeKind, e.X.Span(), "%s already has type parameters", base.Describe())
		return types.ErrorType()
	}
	if len(obj.Params) != len(params) {
		c.report(diag.SemaArgumentCount, e.Span(), "%s expects %d type %s but got %d",
			obj.Name, len(obj.Params), plural(len(obj.Params), "parameter"), len(params))
		return types.ErrorType()
	}
	subs := make([]types.Substitution, len(params))
	for i, p := range params {
		// параметр типа всегда занимает слот указателя
		if !p.IsPointer() {
			c.report(diag.SemaInvalidTypeKind, e.Params[i].Span(), "type parameter %s must be a pointer type, not %s",
				obj.Params[i].Name, p.Describe())
			return types.ErrorType()
		}
		subs[i] = types.Substitution{Param: obj.Params[i], Type: p.AsInstance()}
	}
	return base.WithSubstitutions(subs)
}
