package types

// Type is the identity part of every type. Concrete types are compared by
// pointer, except FunctionType which is structural (see TypeEqual).
type Type interface {
	// ByteSize is 0 for object types until layout has run.
	ByteSize() int
	ByteAlignment() int
	Parameters() []*TypeParameter
	String() string
	isType()
}

// SpecialType is a primitive or sentinel singleton.
type SpecialType struct {
	name      string
	size      int
	alignment int
	numeric   int // 0: не число, иначе ранг расширения int < float < double
}

var (
	Int    = &SpecialType{name: "int", size: 4, alignment: 4, numeric: 1}
	Float  = &SpecialType{name: "float", size: 4, alignment: 4, numeric: 2}
	Double = &SpecialType{name: "double", size: 8, alignment: 8, numeric: 3}
	Bool   = &SpecialType{name: "bool", size: 1, alignment: 1}
	Void   = &SpecialType{name: "void", alignment: 1}
	Null   = &SpecialType{name: "null", size: 4, alignment: 4}

	// Error replaces the type of anything that failed to resolve; it converts
	// to and from everything so one mistake is reported once.
	Error = &SpecialType{name: "error", alignment: 1}
	// Circular marks a symbol whose type is being computed. It must never
	// escape declaration initialization.
	Circular = &SpecialType{name: "circular", alignment: 1}
)

func (t *SpecialType) ByteSize() int                { return t.size }
func (t *SpecialType) ByteAlignment() int           { return t.alignment }
func (t *SpecialType) Parameters() []*TypeParameter { return nil }
func (t *SpecialType) String() string               { return t.name }
func (*SpecialType) isType()                        {}

func (t *SpecialType) IsNumeric() bool  { return t.numeric != 0 }
func (t *SpecialType) IsIntegral() bool { return t == Int }

// FunctionType is a signature. Result is nil only for natives that never return.
type FunctionType struct {
	Result *Wrapped
	Args   []*Wrapped
}

func NewFunctionType(result *Wrapped, args []*Wrapped) *FunctionType {
	return &FunctionType{Result: result, Args: args}
}

// Функции не участвуют в раскладке полей; размер — это размер указателя.
func (t *FunctionType) ByteSize() int                { return 4 }
func (t *FunctionType) ByteAlignment() int           { return 4 }
func (t *FunctionType) Parameters() []*TypeParameter { return nil }
func (*FunctionType) isType()                        {}

func (t *FunctionType) String() string {
	s := "function("
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	s += ")"
	if t.Result != nil {
		s += " " + t.Result.String()
	}
	return s
}

// TypeParameter is a generic placeholder. It always occupies a pointer-sized slot.
type TypeParameter struct {
	Name string
}

func NewTypeParameter(name string) *TypeParameter {
	return &TypeParameter{Name: name}
}

func (t *TypeParameter) ByteSize() int                { return 4 }
func (t *TypeParameter) ByteAlignment() int           { return 4 }
func (t *TypeParameter) Parameters() []*TypeParameter { return nil }
func (t *TypeParameter) String() string               { return t.Name }
func (*TypeParameter) isType()                        {}
