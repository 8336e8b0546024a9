package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

// checkOverride links sym to the base member it overrides, or reports why it
// cannot. typ is the freshly computed type of sym.
func (c *Checker) checkOverride(decl ast.Decl, sym *types.Symbol, typ *types.Wrapped) {
	hdr := decl.Header()
	over := hdr.Mods.Has(ast.ModOver)
	drop := func() {
		hdr.Strip(ast.ModOver)
		sym.Mods &^= ast.ModOver
	}

	obj := sym.EnclosingObject
	if obj == nil {
		if over {
			c.report(diag.SemaBadModifier, hdr.ModSpan(ast.ModOver), "%q is only allowed on class members", "over")
			drop()
		}
		return
	}
	if obj.Base == nil {
		if over {
			c.report(diag.SemaModifierOverMissingBase, hdr.ModSpan(ast.ModOver),
				"%s is marked %q but %s has no base type", displayName(sym.Name), "over", obj.Name)
			drop()
		}
		return
	}

	fn, isFunc := decl.(*ast.FunctionDecl)
	destructor := isFunc && (fn.Kind == ast.FuncDestructor || fn.Kind == ast.FuncMoveDestructor)

	base := obj.Base.Scope.Find(sym.Name)
	if base == nil {
		if over {
			c.report(diag.SemaModifierOverMissingBase, hdr.ModSpan(ast.ModOver),
				"%s is marked %q but %s has no member named %s", displayName(sym.Name), "over", obj.Base.Name, displayName(sym.Name))
			drop()
		}
		return
	}
	if sym.IsStatic() || base.IsStatic() {
		if over {
			c.report(diag.SemaBadModifier, hdr.ModSpan(ast.ModOver), "static members cannot be overridden")
			drop()
		}
		return
	}

	baseType := c.symbolType(base, hdr.Name.Span)
	if baseType.IsError() || typ.IsError() {
		return
	}
	if !isFunc || !base.IsFunction() {
		c.report(diag.SemaOverrideNotFunctions, hdr.Name.Span,
			"%s hides member %s of %s, but only functions can be overridden", sym.Name, base.Name, obj.Base.Name)
		drop()
		return
	}
	if !over && !destructor {
		b := diag.ReportError(c.reporter, diag.SemaModifierMissingOver, hdr.Name.Span,
			displayName(sym.Name)+" overrides a member of "+obj.Base.Name+" and must be marked \"over\"")
		if b != nil {
			b.WithNote(base.Span, "overridden member is declared here")
			b.Emit()
		}
		return
	}
	if base.IsFinal() {
		c.report(diag.SemaOverrideFinal, hdr.Name.Span, "cannot override final member %s.%s", obj.Base.Name, displayName(base.Name))
		return
	}
	if !types.TypesEqual(typ, baseType) {
		c.report(diag.SemaOverrideDifferentTypes, hdr.Name.Span,
			"%s has type %s but the overridden member in %s has type %s",
			displayName(sym.Name), typ.String(), obj.Base.Name, baseType.String())
		return
	}
	sym.Overridden = base
	base.OverriddenBy = append(base.OverriddenBy, sym)
}
