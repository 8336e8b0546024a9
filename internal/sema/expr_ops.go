package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

func (c *Checker) unaryExpr(e *ast.UnaryExpr) *types.Wrapped {
	switch e.Op {
	case ast.UnaryMove, ast.UnaryCopy:
		return c.moveOrCopy(e)
	}

	x := c.resolveValue(e.X)
	if x.IsError() {
		return x
	}
	switch e.Op {
	case ast.UnaryDeref:
		if x.AsObject() == nil || !x.IsPointer() {
			c.report(diag.SemaBadOperator, e.OpPos, "cannot dereference %s", x.Describe())
			return types.ErrorType()
		}
		return x.WithKind(types.KindValue).WithoutModifiers(types.ModFinal).WithModifiers(types.ModStorage)

	case ast.UnaryAddressOf:
		if x.AsObject() == nil || x.IsPointer() {
			c.report(diag.SemaBadOperator, e.OpPos, "cannot take the address of %s", x.Describe())
			return types.ErrorType()
		}
		if !x.IsStorage() && !x.IsReference() {
			c.report(diag.SemaBadStorage, e.X.Span(), "cannot take the address of a temporary %s", x.Describe())
			return types.ErrorType()
		}
		return x.WithKind(types.KindPointer).AsTemporary()
	}

	spec, ok := types.UnarySpecFor(e.Op)
	if !ok {
		c.report(diag.SemaBadOperator, e.OpPos, "unsupported operator %s", e.Op.String())
		return types.ErrorType()
	}
	res, ok := types.UnaryResultType(spec, x)
	if !ok {
		c.report(diag.SemaBadOperator, e.OpPos, "operator %s cannot be applied to %s", e.Op.String(), x.Describe())
		return types.ErrorType()
	}
	return res
}

// moveOrCopy turns a stored value into a temporary that may be assigned to a value slot.
func (c *Checker) moveOrCopy(e *ast.UnaryExpr) *types.Wrapped {
	if inner, ok := e.X.(*ast.UnaryExpr); ok && (inner.Op == ast.UnaryMove || inner.Op == ast.UnaryCopy) {
		c.resolveExpr(inner)
		c.report(diag.SemaBadMoveOrCopy, e.OpPos, "cannot %s the result of %s", e.Op.String(), inner.Op.String())
		return types.ErrorType()
	}
	x := c.resolveValue(e.X)
	if x.IsError() {
		return x
	}
	if x.IsPointer() {
		c.report(diag.SemaBadMoveOrCopy, e.OpPos, "cannot %s %s", e.Op.String(), x.Describe())
		return types.ErrorType()
	}
	if x.AsObject() == nil {
		c.report(diag.SemaBadMoveOrCopy, e.OpPos, "cannot %s %s; only object values can be moved or copied", e.Op.String(), x.Describe())
		return types.ErrorType()
	}
	if !x.IsStorage() && !x.IsReference() {
		c.warn(diag.SemaImpliedMove, e.OpPos, "%s of a temporary %s has no effect", e.Op.String(), x.Describe())
	}
	return x.WithKind(types.KindValue).AsTemporary()
}

func (c *Checker) binaryExpr(e *ast.BinaryExpr) *types.Wrapped {
	switch {
	case e.Op == ast.BinaryAssign:
		return c.assignExpr(e)
	case e.Op.IsEquality():
		return c.equalityExpr(e)
	}

	l := c.resolveValue(e.X)
	r := c.resolveValue(e.Y)
	if l.IsError() || r.IsError() {
		return types.ErrorType()
	}
	spec, ok := types.BinarySpecFor(e.Op)
	if !ok {
		c.report(diag.SemaBadOperator, e.OpPos, "unsupported operator %s", e.Op.String())
		return types.ErrorType()
	}
	res, ok := types.BinaryResultType(spec, l, r)
	if !ok {
		c.report(diag.SemaBadOperator, e.OpPos, "operator %s cannot be applied to %s and %s", e.Op.String(), l.Describe(), r.Describe())
		return types.ErrorType()
	}
	return res
}

func (c *Checker) assignExpr(e *ast.BinaryExpr) *types.Wrapped {
	l := c.resolveValue(e.X)
	r := c.resolveValue(e.Y)
	if l.IsError() {
		return l
	}
	switch {
	case !l.IsStorage():
		c.report(diag.SemaBadStorage, e.X.Span(), "cannot assign to %s", l.Describe())
		return types.ErrorType()
	case l.IsFinal():
		c.report(diag.SemaAssignmentToFinal, e.X.Span(), "cannot assign to final %s", l.Describe())
		return types.ErrorType()
	}
	if !r.IsError() {
		c.convert(e.Y, r, l, types.ConvAssignment)
	}
	return l
}

// equalityExpr accepts any pair where one side converts to the other.
// Ownership and storage do not matter for comparison.
func (c *Checker) equalityExpr(e *ast.BinaryExpr) *types.Wrapped {
	l := c.resolveValue(e.X)
	r := c.resolveValue(e.Y)
	if l.IsError() || r.IsError() {
		return types.ErrorType()
	}
	strip := types.ModStorage | types.ModFinal | types.ModOwned | types.ModShared
	lc, rc := l.WithoutModifiers(strip), r.WithoutModifiers(strip)
	if !types.CanImplicitlyConvert(lc, rc) && !types.CanImplicitlyConvert(rc, lc) {
		c.report(diag.SemaBadOperator, e.OpPos, "cannot compare %s with %s", l.Describe(), r.Describe())
		return types.ErrorType()
	}
	return literal(types.Bool)
}
