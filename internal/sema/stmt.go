package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

func (c *Checker) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ObjectDecl:
		c.objectStmt(s)
	case *ast.FunctionDecl:
		c.functionStmt(s)
	case *ast.VariableDecl:
		c.variableStmt(s)
	case *ast.Block:
		c.blockStmt(s)
	case *ast.ExprStmt:
		c.resolveValue(s.X)
	case *ast.IfStmt:
		c.checkCondition(s.Cond)
		c.blockStmt(s.Then)
		if s.Else != nil {
			c.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		c.checkCondition(s.Cond)
		ctx := c.ctx
		ctx.inLoop = true
		restore := c.push(ctx)
		c.blockStmt(s.Body)
		restore()
	case *ast.ReturnStmt:
		c.returnStmt(s)
	case *ast.BreakStmt:
		if !c.ctx.inLoop {
			c.report(diag.SemaUnexpectedStatement, s.Span(), "%q outside of a loop", "break")
		}
	case *ast.ContinueStmt:
		if !c.ctx.inLoop {
			c.report(diag.SemaUnexpectedStatement, s.Span(), "%q outside of a loop", "continue")
		}
	}
}

func (c *Checker) objectStmt(d *ast.ObjectDecl) {
	if c.inFunction() {
		c.report(diag.SemaUnexpectedStatement, d.Name.Span, "cannot declare %s inside a function", d.Name.Name)
		return
	}
	sym := c.define(d)
	c.ensureInitialized(d)
	obj := sym.Type.AsObject()
	if obj == nil || d.Body == nil {
		return
	}
	defer c.push(context{scope: obj.Scope, object: obj})()
	for _, stmt := range d.Body.Stmts {
		if _, ok := stmt.(ast.Decl); !ok {
			c.report(diag.SemaUnexpectedStatement, stmt.Span(), "only declarations are allowed in the body of %s", obj.Name)
			continue
		}
		c.resolveStmt(stmt)
	}
}

func (c *Checker) functionStmt(d *ast.FunctionDecl) {
	if c.inFunction() {
		c.report(diag.SemaUnexpectedStatement, d.Name.Span, "cannot declare function %s inside a function", displayName(d.Name.Name))
		return
	}
	sym := c.define(d)
	c.ensureInitialized(d)
	if d.Body == nil {
		return
	}
	if sym.EnclosingObject == nil && d.Kind.IsSpecial() {
		c.report(diag.SemaUnexpectedStatement, d.Name.Span, "%s outside of a class", d.Kind.String())
	}

	result := types.WrapValue(types.Void).AsInstance()
	if fn := sym.Type.AsFunction(); fn != nil && fn.Result != nil {
		result = fn.Result
	} else if sym.Type.IsError() {
		result = types.ErrorType()
	}
	scope := c.result.Scopes[d.Body.ID()]
	defer c.push(context{
		scope:    scope,
		object:   c.ctx.object,
		function: sym,
		result:   result,
		isStatic: sym.IsStatic(),
	})()
	for _, stmt := range d.Body.Stmts {
		c.resolveStmt(stmt)
	}
}

func (c *Checker) variableStmt(d *ast.VariableDecl) {
	sym := c.define(d)
	c.ensureInitialized(d)

	if d.Value == nil {
		if sym.IsField() || sym.Type.IsError() {
			return
		}
		if !types.IsDefaultConstructible(sym.Type) {
			c.report(diag.SemaVariableNeedsValue, d.Name.Span, "%s of %s needs an initial value", d.Name.Name, sym.Type.Describe())
		}
		return
	}

	ctx := c.ctx
	ctx.isStatic = ctx.isStatic || sym.IsStatic()
	restore := c.push(ctx)
	v := c.resolveValue(d.Value)
	restore()
	if v.IsError() || sym.Type.IsError() {
		return
	}
	c.convert(d.Value, v, sym.Type, types.ConvAssignment)
}

// blockStmt opens a scope; declarations inside functions become visible
// in statement order.
func (c *Checker) blockStmt(b *ast.Block) {
	if b == nil {
		return
	}
	scope := c.result.Scopes[b.ID()]
	if scope == nil {
		scope = c.newScope(types.ScopeBlock)
		c.result.Scopes[b.ID()] = scope
	}
	ctx := c.ctx
	ctx.scope = scope
	defer c.push(ctx)()
	if !c.inFunction() {
		for _, stmt := range b.Stmts {
			if decl, ok := stmt.(ast.Decl); ok {
				c.define(decl)
			}
		}
	}
	for _, stmt := range b.Stmts {
		c.resolveStmt(stmt)
	}
}

func (c *Checker) returnStmt(s *ast.ReturnStmt) {
	if !c.inFunction() {
		c.report(diag.SemaUnexpectedStatement, s.Span(), "%q outside of a function", "return")
		if s.Value != nil {
			c.resolveExpr(s.Value)
		}
		return
	}
	result := c.ctx.result
	if s.Value == nil {
		if !result.IsVoid() && !result.IsError() {
			c.report(diag.SemaMissingReturnValue, s.Span(), "missing return value of %s", result.Describe())
		}
		return
	}
	v := c.resolveValue(s.Value)
	if result.IsVoid() {
		c.report(diag.SemaUnexpectedReturnValue, s.Value.Span(), "function %s does not return a value", displayName(c.ctx.function.Name))
		return
	}
	if v.IsError() || result.IsError() {
		return
	}
	c.convert(s.Value, v, result, types.ConvAssignment)
}
