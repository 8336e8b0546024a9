package types

// Conversion is the verdict of an implicit conversion check.
type Conversion uint8

const (
	ConvOK Conversion = iota
	ConvIncompatible
	// ConvNeedMoveOrCopy: the value conversion is legal only with an explicit move or copy.
	ConvNeedMoveOrCopy
	// ConvRValueToRef: a temporary value cannot be bound to a reference.
	ConvRValueToRef
)

func (c Conversion) String() string {
	switch c {
	case ConvOK:
		return "ok"
	case ConvNeedMoveOrCopy:
		return "need move or copy"
	case ConvRValueToRef:
		return "rvalue to ref"
	default:
		return "incompatible"
	}
}

// ConvMode selects how strict a conversion is.
type ConvMode uint8

const (
	// ConvNormal is used by equality, ternaries and conditions.
	ConvNormal ConvMode = iota
	// ConvAssignment is used by assignment, initializers, arguments and returns.
	ConvAssignment
)

// CanImplicitlyConvert is CheckConversion in normal mode reduced to a bool.
func CanImplicitlyConvert(from, to *Wrapped) bool {
	return CheckConversion(from, to, ConvNormal) == ConvOK
}

// CheckConversion decides whether a value of type from can be used where to
// is expected.
func CheckConversion(from, to *Wrapped, mode ConvMode) Conversion {
	if from.IsError() || to.IsError() {
		return ConvOK
	}
	// null bypasses the substitution check: List<A> p = null is fine.
	if from.IsNull() {
		if to.IsPointer() || to.IsNull() {
			return ConvOK
		}
		return ConvIncompatible
	}

	if fs, ok := from.inner.(*SpecialType); ok {
		ts, ok := to.inner.(*SpecialType)
		if !ok {
			return ConvIncompatible
		}
		if fs == ts || (fs.numeric != 0 && ts.numeric > fs.numeric) {
			return ConvOK
		}
		return ConvIncompatible
	}

	if ff := from.AsFunction(); ff != nil {
		if tf := to.AsFunction(); tf != nil && FunctionTypesEqual(ff, tf) {
			return ConvOK
		}
		return ConvIncompatible
	}

	if fp := from.AsParameter(); fp != nil {
		if fp == to.AsParameter() && from.kind == to.kind {
			return ConvOK
		}
		return ConvIncompatible
	}

	fromObj, toObj := from.AsObject(), to.AsObject()
	if fromObj == nil || toObj == nil {
		return ConvIncompatible
	}
	if !SubstitutionsEqual(from.subs, to.subs) {
		return ConvIncompatible
	}

	switch to.kind {
	case KindValue:
		if from.IsPointer() || fromObj != toObj {
			return ConvIncompatible
		}
		if mode == ConvAssignment && (from.IsStorage() || from.IsReference()) {
			return ConvNeedMoveOrCopy
		}
		return ConvOK

	case KindPointer:
		if !from.IsPointer() || !fromObj.IsSameOrDerivedFrom(toObj) {
			return ConvIncompatible
		}
		return checkOwnership(from, to)

	default: // KindReference
		if from.IsPointer() || !fromObj.IsSameOrDerivedFrom(toObj) {
			return ConvIncompatible
		}
		if from.IsReference() || from.IsStorage() {
			return ConvOK
		}
		return ConvRValueToRef
	}
}

// checkOwnership: borrowed <- anything in storage, owned <- owned,
// shared <- shared or owned. An owned or shared temporary never becomes
// borrowed since nothing would keep it alive.
func checkOwnership(from, to *Wrapped) Conversion {
	switch {
	case to.IsOwned():
		if from.IsOwned() {
			return ConvOK
		}
	case to.IsShared():
		if from.IsOwned() || from.IsShared() {
			return ConvOK
		}
	default:
		if from.IsBorrowed() || from.IsStorage() {
			return ConvOK
		}
	}
	return ConvIncompatible
}

// CanExplicitlyConvert allows everything implicit plus numeric narrowing and
// pointer downcasts.
func CanExplicitlyConvert(from, to *Wrapped) bool {
	if CanImplicitlyConvert(from, to) {
		return true
	}
	if from.IsNumeric() && to.IsNumeric() {
		return true
	}
	fromObj, toObj := from.AsObject(), to.AsObject()
	if fromObj == nil || toObj == nil || !from.IsPointer() || !to.IsPointer() {
		return false
	}
	if !toObj.IsSameOrDerivedFrom(fromObj) || !SubstitutionsEqual(from.subs, to.subs) {
		return false
	}
	return to.IsBorrowed() || to.Ownership() == from.Ownership()
}

// CommonImplicitType unifies the branches of a ternary. It returns nil when
// there is no common type.
func CommonImplicitType(a, b *Wrapped) *Wrapped {
	if a.IsError() || b.IsError() {
		return ErrorType()
	}
	at, bt := a.AsTemporary(), b.AsTemporary()
	if TypesEqual(at, bt) {
		return at
	}
	if CanImplicitlyConvert(at, bt) {
		return bt
	}
	if CanImplicitlyConvert(bt, at) {
		return at
	}
	ao, bo := a.AsObject(), b.AsObject()
	if ao == nil || bo == nil || !a.IsPointer() || !b.IsPointer() || a.Ownership() != b.Ownership() {
		return nil
	}
	if !SubstitutionsEqual(a.subs, b.subs) {
		return nil
	}
	for base := ao.Base; base != nil; base = base.Base {
		if bo.IsSameOrDerivedFrom(base) {
			return at.WithInner(base)
		}
	}
	return nil
}

// TypesEqual compares every part of two wrapped types, modifiers included.
func TypesEqual(a, b *Wrapped) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || a.mods != b.mods || !SubstitutionsEqual(a.subs, b.subs) {
		return false
	}
	return InnerTypesEqual(a.inner, b.inner)
}

// InnerTypesEqual is identity except for function types, which are structural.
func InnerTypesEqual(a, b Type) bool {
	if a == b {
		return true
	}
	fa, ok1 := a.(*FunctionType)
	fb, ok2 := b.(*FunctionType)
	return ok1 && ok2 && FunctionTypesEqual(fa, fb)
}

func FunctionTypesEqual(a, b *FunctionType) bool {
	if len(a.Args) != len(b.Args) || !TypesEqual(a.Result, b.Result) {
		return false
	}
	for i := range a.Args {
		if !TypesEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

func SubstitutionsEqual(a, b []Substitution) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Param != b[i].Param || !TypesEqual(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

// IsDefaultConstructible reports whether a variable of type w may be declared
// without an initializer.
func IsDefaultConstructible(w *Wrapped) bool {
	switch {
	case w.IsError():
		return true
	case w.IsReference():
		return false
	case w.IsPointer():
		return true
	}
	obj := w.AsObject()
	if obj == nil {
		return w.IsPrimitive()
	}
	return len(obj.ConstructorType().Args) == 0
}
