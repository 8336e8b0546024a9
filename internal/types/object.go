package types

import "fmt"

// ObjectState is the lazy initialization state of an object type.
type ObjectState uint8

const (
	ObjectUninitialized ObjectState = iota
	// ObjectInitializing doubles as the re-entrancy guard: queries made while
	// the initializer runs see the defaults instead of recursing.
	ObjectInitializing
	ObjectInitialized
)

// ObjectInitializer computes the lazily derived facts of an object type:
// whether it is abstract and the signature of its implicit constructor.
type ObjectInitializer interface {
	InitializeObject(obj *ObjectType) (abstract bool, ctor *FunctionType)
}

// ObjectType is a user class or struct, or a native object such as List.
type ObjectType struct {
	Name  string
	Scope *Scope
	Base  *ObjectType

	IsSealed bool
	// IsValueType is set for "struct": bare uses of the name are values.
	IsValueType bool
	// HasDerivedTypes is set once any class names this one as its base.
	HasDerivedTypes bool
	IsNative        bool
	Params          []*TypeParameter

	// Заполняются проходом раскладки.
	Vtable           []*Symbol
	VtableByteOffset int
	Size             int
	Alignment        int

	state    ObjectState
	init     ObjectInitializer
	abstract bool
	ctor     *FunctionType
}

// NewObjectType creates an uninitialized object type. init may be nil for
// types whose facts are set with MarkInitialized.
func NewObjectType(name string, scope *Scope, init ObjectInitializer) *ObjectType {
	obj := &ObjectType{Name: name, Scope: scope, init: init, VtableByteOffset: -1}
	if scope != nil {
		scope.Object = obj
	}
	return obj
}

func (t *ObjectType) ByteSize() int                { return t.Size }
func (t *ObjectType) ByteAlignment() int           { return t.Alignment }
func (t *ObjectType) Parameters() []*TypeParameter { return t.Params }
func (t *ObjectType) String() string               { return t.Name }
func (*ObjectType) isType()                        {}

func (t *ObjectType) State() ObjectState { return t.state }

// IsAbstract reports whether any member, own or inherited, lacks a body.
func (t *ObjectType) IsAbstract() bool {
	t.ensureInitialized()
	return t.abstract
}

// ConstructorType is the implicit constructor signature: the base
// constructor's arguments followed by this type's uninitialized fields.
func (t *ObjectType) ConstructorType() *FunctionType {
	t.ensureInitialized()
	if t.ctor == nil {
		return NewFunctionType(WrapValue(Void), nil)
	}
	return t.ctor
}

// MarkInitialized sets the lazily computed facts directly.
func (t *ObjectType) MarkInitialized(abstract bool, ctor *FunctionType) {
	if t.state == ObjectInitialized {
		panic(fmt.Errorf("object type %s initialized twice", t.Name))
	}
	t.abstract, t.ctor = abstract, ctor
	t.state = ObjectInitialized
}

// MarkAbstract records abstractness while the initializer is still running,
// so IsAbstract queries issued from inside it already see the answer.
func (t *ObjectType) MarkAbstract(abstract bool) {
	t.abstract = abstract
}

// EnsureInitialized runs the initializer if it has not run yet.
func (t *ObjectType) EnsureInitialized() {
	t.ensureInitialized()
}

func (t *ObjectType) ensureInitialized() {
	if t.state != ObjectUninitialized {
		return
	}
	if t.init == nil {
		t.state = ObjectInitialized
		return
	}
	t.state = ObjectInitializing
	abstract, ctor := t.init.InitializeObject(t)
	t.abstract, t.ctor = abstract, ctor
	t.state = ObjectInitialized
}

// IsSameOrDerivedFrom reports whether base is t or one of its ancestors.
func (t *ObjectType) IsSameOrDerivedFrom(base *ObjectType) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur == base {
			return true
		}
	}
	return false
}

// Depth is the number of ancestors.
func (t *ObjectType) Depth() int {
	n := 0
	for cur := t.Base; cur != nil; cur = cur.Base {
		n++
	}
	return n
}

// NeedsVtable reports whether the type has any virtual slot.
func (t *ObjectType) NeedsVtable() bool {
	return len(t.Vtable) > 0
}
