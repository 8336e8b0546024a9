package types

import "strings"

// Kind says how a value of the inner type is held.
type Kind uint8

const (
	KindValue Kind = iota
	KindPointer
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	default:
		return "value"
	}
}

// Modifiers is the bitset carried by a Wrapped type.
type Modifiers uint8

const (
	// ModStorage marks an addressable, assignable location.
	ModStorage Modifiers = 1 << iota
	// ModInstance distinguishes a value of the type from the type itself.
	ModInstance
	// ModFinal marks a binding that can never be reassigned.
	ModFinal
	// ModOwned and ModShared are the ownership of a pointer; neither means borrowed.
	ModOwned
	ModShared
)

func (m Modifiers) Has(bit Modifiers) bool { return m&bit != 0 }

// Substitution binds a type parameter to a concrete wrapped type.
type Substitution struct {
	Param *TypeParameter
	Type  *Wrapped
}

// Wrapped is the type of every expression and declared symbol: an inner type
// plus kind, modifiers and generic substitutions. Wrapped values are immutable;
// the With* helpers return copies.
type Wrapped struct {
	inner Type
	kind  Kind
	mods  Modifiers
	subs  []Substitution
}

// Wrap creates a wrapped type. subs is copied.
func Wrap(inner Type, kind Kind, mods Modifiers, subs []Substitution) *Wrapped {
	w := &Wrapped{inner: inner, kind: kind, mods: mods}
	if len(subs) > 0 {
		w.subs = append([]Substitution(nil), subs...)
	}
	return w
}

// WrapValue wraps a type as a bare value kind with no modifiers.
func WrapValue(inner Type) *Wrapped {
	return &Wrapped{inner: inner, kind: KindValue}
}

// WrapType wraps inner the way its bare name denotes it: classes are pointers,
// everything else is a value.
func WrapType(inner Type) *Wrapped {
	kind := KindValue
	switch t := inner.(type) {
	case *ObjectType:
		if !t.IsValueType {
			kind = KindPointer
		}
	case *TypeParameter:
		kind = KindPointer
	}
	return &Wrapped{inner: inner, kind: kind}
}

// ErrorType is the wrapped ERROR sentinel.
func ErrorType() *Wrapped { return WrapValue(Error) }

// CircularType is the wrapped CIRCULAR sentinel.
func CircularType() *Wrapped { return WrapValue(Circular) }

func (w *Wrapped) Inner() Type                   { return w.inner }
func (w *Wrapped) Kind() Kind                    { return w.kind }
func (w *Wrapped) Modifiers() Modifiers          { return w.mods }
func (w *Wrapped) Substitutions() []Substitution { return w.subs }

func (w *Wrapped) IsError() bool    { return w.inner == Error }
func (w *Wrapped) IsCircular() bool { return w.inner == Circular }
func (w *Wrapped) IsVoid() bool     { return w.inner == Void }
func (w *Wrapped) IsNull() bool     { return w.inner == Null }
func (w *Wrapped) IsBool() bool     { return w.inner == Bool }

func (w *Wrapped) IsValue() bool     { return w.kind == KindValue }
func (w *Wrapped) IsPointer() bool   { return w.kind == KindPointer }
func (w *Wrapped) IsReference() bool { return w.kind == KindReference }

func (w *Wrapped) IsStorage() bool  { return w.mods.Has(ModStorage) }
func (w *Wrapped) IsInstance() bool { return w.mods.Has(ModInstance) }
func (w *Wrapped) IsFinal() bool    { return w.mods.Has(ModFinal) }
func (w *Wrapped) IsOwned() bool    { return w.mods.Has(ModOwned) }
func (w *Wrapped) IsShared() bool   { return w.mods.Has(ModShared) }

// IsBorrowed reports a pointer that neither owns nor shares its target.
func (w *Wrapped) IsBorrowed() bool {
	return w.kind == KindPointer && !w.mods.Has(ModOwned|ModShared)
}

func (w *Wrapped) IsNumeric() bool {
	s, ok := w.inner.(*SpecialType)
	return ok && s.IsNumeric()
}

func (w *Wrapped) IsIntegral() bool { return w.inner == Int }

// IsPrimitive reports int, bool, float and double.
func (w *Wrapped) IsPrimitive() bool { return w.IsNumeric() || w.IsBool() }

// AsObject returns the inner object type, or nil.
func (w *Wrapped) AsObject() *ObjectType {
	obj, _ := w.inner.(*ObjectType)
	return obj
}

// AsFunction returns the inner function type, or nil.
func (w *Wrapped) AsFunction() *FunctionType {
	fn, _ := w.inner.(*FunctionType)
	return fn
}

// AsParameter returns the inner type parameter, or nil.
func (w *Wrapped) AsParameter() *TypeParameter {
	p, _ := w.inner.(*TypeParameter)
	return p
}

func (w *Wrapped) clone() *Wrapped {
	c := *w
	return &c
}

func (w *Wrapped) WithModifiers(bits Modifiers) *Wrapped {
	c := w.clone()
	c.mods |= bits
	return c
}

func (w *Wrapped) WithoutModifiers(bits Modifiers) *Wrapped {
	c := w.clone()
	c.mods &^= bits
	return c
}

func (w *Wrapped) WithKind(kind Kind) *Wrapped {
	c := w.clone()
	c.kind = kind
	if kind != KindPointer {
		c.mods &^= ModOwned | ModShared
	}
	return c
}

func (w *Wrapped) WithSubstitutions(subs []Substitution) *Wrapped {
	c := w.clone()
	c.subs = append([]Substitution(nil), subs...)
	return c
}

// WithInner keeps kind, modifiers and substitutions and swaps the inner type.
func (w *Wrapped) WithInner(inner Type) *Wrapped {
	c := w.clone()
	c.inner = inner
	return c
}

// AsInstance turns "the type T" into "a value of T".
func (w *Wrapped) AsInstance() *Wrapped { return w.WithModifiers(ModInstance) }

// AsTemporary drops the l-value bits.
func (w *Wrapped) AsTemporary() *Wrapped { return w.WithoutModifiers(ModStorage | ModFinal) }

// Ownership returns only the ownership bits.
func (w *Wrapped) Ownership() Modifiers { return w.mods & (ModOwned | ModShared) }

// Substitute replaces type parameters bound in subs. A parameter-typed
// member of List<Foo> becomes the wrapped Foo with the member's own
// storage bits kept.
func (w *Wrapped) Substitute(subs []Substitution) *Wrapped {
	if len(subs) == 0 {
		return w
	}
	if p := w.AsParameter(); p != nil {
		for _, s := range subs {
			if s.Param == p {
				return s.Type.WithModifiers(w.mods & (ModStorage | ModInstance | ModFinal))
			}
		}
		return w
	}
	if fn := w.AsFunction(); fn != nil {
		var result *Wrapped
		if fn.Result != nil {
			result = fn.Result.Substitute(subs)
		}
		args := make([]*Wrapped, len(fn.Args))
		for i, a := range fn.Args {
			args[i] = a.Substitute(subs)
		}
		return w.WithInner(NewFunctionType(result, args))
	}
	if len(w.subs) > 0 {
		c := w.clone()
		c.subs = make([]Substitution, len(w.subs))
		for i, s := range w.subs {
			c.subs[i] = Substitution{Param: s.Param, Type: s.Type.Substitute(subs)}
		}
		return c
	}
	return w
}

// String renders the type the way it is written in source.
func (w *Wrapped) String() string {
	var b strings.Builder
	natural := WrapType(w.inner).kind
	switch {
	case w.kind == KindPointer && w.IsOwned():
		b.WriteString("owned ")
	case w.kind == KindPointer && w.IsShared():
		b.WriteString("shared ")
	case w.kind == KindReference:
		b.WriteString("ref ")
	case w.kind != natural:
		b.WriteString(w.kind.String())
		b.WriteByte(' ')
	}
	b.WriteString(w.inner.String())
	if len(w.subs) > 0 {
		b.WriteByte('<')
		for i, s := range w.subs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.Type.String())
		}
		b.WriteByte('>')
	}
	return b.String()
}

// Describe is used in diagnostics: "value of type owned Foo" or "type Foo".
func (w *Wrapped) Describe() string {
	if w.IsInstance() {
		return "value of type " + w.String()
	}
	return "type " + w.String()
}
