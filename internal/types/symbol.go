package types

import (
	"bitscript/internal/ast"
	"bitscript/internal/source"
)

// Symbol is a named entity bound in a scope.
type Symbol struct {
	Name string
	// Type is nil until resolved, CIRCULAR while resolving, then final.
	Type *Wrapped
	// Scope is the declaring scope; inherited copies keep it.
	Scope *Scope
	Mods  ast.SymbolMods
	Decl  ast.Decl // nil for natives
	Span  source.Span

	EnclosingObject *ObjectType
	Overridden      *Symbol
	OverriddenBy    []*Symbol

	IsAbstract bool
	IsArgument bool
	IsNative   bool

	// ByteOffset is a field offset or a vtable slot offset after layout.
	ByteOffset int
	// ID is assigned by the symbols table.
	ID uint32
}

func NewSymbol(name string, scope *Scope, decl ast.Decl) *Symbol {
	sym := &Symbol{Name: name, Scope: scope, Decl: decl, ByteOffset: -1}
	if decl != nil {
		sym.Mods = decl.Header().Mods
		sym.Span = decl.Header().Name.Span
	}
	return sym
}

// NewNativeSymbol creates an already resolved symbol for the native environment.
func NewNativeSymbol(name string, scope *Scope, typ *Wrapped, mods ast.SymbolMods) *Symbol {
	return &Symbol{Name: name, Scope: scope, Type: typ, Mods: mods, IsNative: true, ByteOffset: -1}
}

func (s *Symbol) IsStatic() bool { return s.Mods.Has(ast.ModStatic) }
func (s *Symbol) IsOver() bool   { return s.Mods.Has(ast.ModOver) }
func (s *Symbol) IsFinal() bool  { return s.Mods.Has(ast.ModFinal) }

// IsResolved reports whether the symbol has its permanent type.
func (s *Symbol) IsResolved() bool { return s.Type != nil && !s.Type.IsCircular() }

func (s *Symbol) IsFunction() bool {
	if _, ok := s.Decl.(*ast.FunctionDecl); ok {
		return true
	}
	return s.Type != nil && s.Type.AsFunction() != nil
}

// IsField reports an instance variable of an object.
func (s *Symbol) IsField() bool {
	_, ok := s.Decl.(*ast.VariableDecl)
	return ok && s.EnclosingObject != nil && !s.IsStatic() && !s.IsArgument
}

func (s *Symbol) FuncKind() ast.FuncKind {
	if fn, ok := s.Decl.(*ast.FunctionDecl); ok {
		return fn.Kind
	}
	return ast.FuncNormal
}

// IsVirtual reports whether the symbol needs a vtable slot.
func (s *Symbol) IsVirtual() bool {
	if s.IsAbstract || s.IsOver() || s.Overridden != nil || len(s.OverriddenBy) > 0 {
		return true
	}
	k := s.FuncKind()
	return (k == ast.FuncDestructor || k == ast.FuncMoveDestructor) &&
		s.EnclosingObject != nil && s.EnclosingObject.HasDerivedTypes
}

// Root follows the override chain to the symbol that introduced the slot.
func (s *Symbol) Root() *Symbol {
	cur := s
	for cur.Overridden != nil {
		cur = cur.Overridden
	}
	return cur
}
