package sema

import "bitscript/internal/types"

// context is the lexical state threaded through the walk.
type context struct {
	scope    *types.Scope
	object   *types.ObjectType
	function *types.Symbol
	// result is the declared result of function, nil outside functions.
	result   *types.Wrapped
	inLoop   bool
	isStatic bool
}

// push installs ctx and returns the restore func:
//
//	defer c.push(ctx)()
func (c *Checker) push(ctx context) func() {
	prev := c.ctx
	c.ctx = ctx
	return func() { c.ctx = prev }
}

// canAccessThis is true inside instance members of an object.
func (c *Checker) canAccessThis() bool {
	return c.ctx.object != nil && !c.ctx.isStatic
}

func (c *Checker) inFunction() bool { return c.ctx.function != nil }

func (c *Checker) newScope(kind types.ScopeKind) *types.Scope {
	scope := types.NewScope(c.ctx.scope, kind)
	c.table.AddScope(scope)
	return scope
}
