package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

func (c *Checker) memberExpr(e *ast.MemberExpr) *types.Wrapped {
	recv := c.resolveExpr(e.X)
	if recv.IsError() {
		return recv
	}
	obj := recv.AsObject()
	if obj == nil {
		c.report(diag.SemaNoMembers, e.Name.Span, "%s has no members", recv.Describe())
		return types.ErrorType()
	}
	member := obj.Scope.Find(e.Name.Name)
	if member == nil || isConstructorName(member.Name) {
		c.report(diag.SemaUnknownMemberSymbol, e.Name.Span, "%s has no member named %s", obj.Name, e.Name.Name)
		return types.ErrorType()
	}
	c.result.Uses[e.ID()] = member
	t := c.symbolType(member, e.Name.Span)
	if t.IsError() {
		return t
	}

	switch {
	case recv.IsInstance() && member.IsStatic():
		c.report(diag.SemaMemberUnexpectedStatic, e.Name.Span,
			"static member %s of %s accessed through an instance", member.Name, obj.Name)
	case !recv.IsInstance() && !member.IsStatic():
		c.report(diag.SemaMemberUnexpectedInstance, e.Name.Span,
			"instance member %s of %s accessed through the type", member.Name, obj.Name)
	}

	// Тип всё равно вычисляется, чтобы не было каскада ошибок.
	pointer := recv.IsInstance() && recv.IsPointer()
	switch {
	case pointer && !e.IsArrow:
		c.report(diag.SemaWrongMemberOperator, e.Name.Span, "use %q to access members through %s", "->", recv.Describe())
	case !pointer && e.IsArrow:
		c.report(diag.SemaWrongMemberOperator, e.Name.Span, "use %q to access members of %s", ".", recv.Describe())
	}

	result := t.Substitute(recv.Substitutions())
	if recv.IsInstance() && recv.IsValue() && !member.IsStatic() {
		if !recv.IsStorage() {
			result = result.AsTemporary()
		} else if recv.IsFinal() {
			result = result.WithModifiers(types.ModFinal)
		}
	}
	return result
}
