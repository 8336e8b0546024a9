package sema

import (
	"strings"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/parser"
	"bitscript/internal/types"
)

// initObject creates the object type, links and flattens the base type and
// binds the members. Member types stay unresolved until InitializeObject.
func (c *Checker) initObject(d *ast.ObjectDecl, sym *types.Symbol) *types.Wrapped {
	kind := "class"
	if d.IsValueType {
		kind = "struct"
	}
	c.rejectModifiers(&d.DeclHeader, sym, ast.ModOver|ast.ModFinal|ast.ModStatic, "a "+kind+" declaration")

	scope := c.newScope(types.ScopeObject)
	obj := types.NewObjectType(d.Name.Name, scope, c)
	obj.IsValueType = d.IsValueType
	c.result.Scopes[d.ID()] = scope
	if d.Body != nil {
		c.result.Scopes[d.Body.ID()] = scope
	}

	if d.Base != nil {
		if base := c.resolveBaseType(d, obj); base != nil {
			obj.Base = base
			base.HasDerivedTypes = true
			for _, inherited := range base.Scope.Symbols() {
				if isConstructorName(inherited.Name) {
					continue
				}
				scope.Replace(inherited)
			}
		}
	}

	defer c.push(context{scope: scope, object: obj})()
	if d.Body != nil {
		for _, stmt := range d.Body.Stmts {
			if decl, ok := stmt.(ast.Decl); ok {
				c.define(decl)
			}
		}
	}
	return types.WrapType(obj)
}

func (c *Checker) resolveBaseType(d *ast.ObjectDecl, obj *types.ObjectType) *types.ObjectType {
	bt := c.resolveExpr(d.Base)
	if bt.IsError() {
		return nil
	}
	base := bt.AsObject()
	switch {
	case bt.IsInstance():
		c.report(diag.SemaBadBaseType, d.Base.Span(), "cannot use %s as a base type", bt.Describe())
	case base == nil:
		c.report(diag.SemaBadBaseType, d.Base.Span(), "cannot inherit from %s", bt.Describe())
	case base.IsSealed:
		c.report(diag.SemaBadBaseType, d.Base.Span(), "cannot inherit from sealed type %s", base.Name)
	case base.IsValueType != obj.IsValueType:
		c.report(diag.SemaBadBaseType, d.Base.Span(), "%s cannot inherit from %s", describeObject(obj), describeObject(base))
	case len(bt.Substitutions()) > 0 || len(base.Params) > 0:
		c.report(diag.SemaBadBaseType, d.Base.Span(), "cannot inherit from generic type %s", bt.String())
	default:
		return base
	}
	return nil
}

// InitializeObject resolves every member of obj and derives whether the type
// is abstract and the signature of its constructor.
func (c *Checker) InitializeObject(obj *types.ObjectType) (bool, *types.FunctionType) {
	// Абстрактность известна по телам функций до разрешения типов членов:
	// члены могут ссылаться на сам obj.
	abstract := declaredAbstract(obj)
	obj.MarkAbstract(abstract)
	for _, member := range obj.Scope.Symbols() {
		if member.Decl != nil {
			c.ensureInitialized(member.Decl)
		}
	}

	void := types.WrapValue(types.Void).AsInstance()
	if ctor := obj.Scope.Find(parser.ConstructorName); ctor != nil && ctor.Scope == obj.Scope && ctor.IsResolved() {
		if fn := ctor.Type.AsFunction(); fn != nil {
			return abstract, fn
		}
		return abstract, types.NewFunctionType(void, nil)
	}

	var args []*types.Wrapped
	if obj.Base != nil {
		args = append(args, obj.Base.ConstructorType().Args...)
	}
	for _, member := range obj.Scope.Symbols() {
		if member.Scope != obj.Scope || !member.IsField() {
			continue
		}
		if v, ok := member.Decl.(*ast.VariableDecl); ok && v.Value != nil {
			continue
		}
		if member.IsResolved() {
			args = append(args, member.Type.AsTemporary())
		} else {
			args = append(args, types.ErrorType())
		}
	}
	return abstract, types.NewFunctionType(void, args)
}

// declaredAbstract reports whether any member of the flattened scope is a
// function declared without a body.
func declaredAbstract(obj *types.ObjectType) bool {
	for _, member := range obj.Scope.Symbols() {
		if member.IsAbstract {
			return true
		}
		if fn, ok := member.Decl.(*ast.FunctionDecl); ok && fn.Body == nil {
			return true
		}
	}
	return false
}

func isConstructorName(name string) bool {
	return name == parser.ConstructorName || name == parser.CopyConstructorName
}

func describeObject(obj *types.ObjectType) string {
	var b strings.Builder
	if obj.IsValueType {
		b.WriteString("struct ")
	} else {
		b.WriteString("class ")
	}
	b.WriteString(obj.Name)
	return b.String()
}
