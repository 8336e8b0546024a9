package types

import "bitscript/internal/ast"

// FamilyMask describes broad categories of primitive types an operator accepts.
type FamilyMask uint8

const (
	FamilyNone FamilyMask = 0
	FamilyBool FamilyMask = 1 << iota
	FamilyInt
	FamilyFloat // float и double
)

const FamilyNumeric = FamilyInt | FamilyFloat

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
	// BinaryResultNumeric is the wider of both operands.
	BinaryResultNumeric
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint8

const (
	BinaryFlagNone         BinaryFlags = 0
	BinaryFlagShortCircuit BinaryFlags = 1 << iota
	BinaryFlagCommutative
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnaryResult indicates how to derive the resulting type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for arithmetic unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResult
}

// Assignment, equality and the pointer operators are not listed: the resolver
// checks them with conversion rules instead of operand families.
var binarySpecTable = map[ast.BinaryOp]BinarySpec{
	ast.BinaryAdd:        {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
	ast.BinarySub:        {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
	ast.BinaryMul:        {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
	ast.BinaryDiv:        {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
	ast.BinaryMod:        {Left: FamilyInt, Right: FamilyInt, Result: BinaryResultNumeric},
	ast.BinaryShl:        {Left: FamilyInt, Right: FamilyInt, Result: BinaryResultLeft},
	ast.BinaryShr:        {Left: FamilyInt, Right: FamilyInt, Result: BinaryResultLeft},
	ast.BinaryBitAnd:     {Left: FamilyInt, Right: FamilyInt, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
	ast.BinaryBitOr:      {Left: FamilyInt, Right: FamilyInt, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
	ast.BinaryBitXor:     {Left: FamilyInt, Right: FamilyInt, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
	ast.BinaryLogicalAnd: {Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
	ast.BinaryLogicalOr:  {Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
	ast.BinaryLess:       {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
	ast.BinaryLessEq:     {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
	ast.BinaryGreater:    {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
	ast.BinaryGreaterEq:  {Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
}

var unarySpecTable = map[ast.UnaryOp]UnarySpec{
	ast.UnaryPlus:       {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.UnaryMinus:      {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.UnaryNot:        {Operand: FamilyBool, Result: UnaryResultBool},
	ast.UnaryComplement: {Operand: FamilyInt, Result: UnaryResultSame},
}

// BinarySpecFor returns operand rules for the given operator.
func BinarySpecFor(op ast.BinaryOp) (BinarySpec, bool) {
	spec, ok := binarySpecTable[op]
	return spec, ok
}

// UnarySpecFor returns operand/result hints for unary operators.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// FamilyOf classifies a primitive value type.
func FamilyOf(w *Wrapped) FamilyMask {
	if !w.IsValue() {
		return FamilyNone
	}
	switch w.inner {
	case Bool:
		return FamilyBool
	case Int:
		return FamilyInt
	case Float, Double:
		return FamilyFloat
	}
	return FamilyNone
}

// BinaryResultType applies spec to operand types. ok is false when the
// operands do not fit the operator.
func BinaryResultType(spec BinarySpec, left, right *Wrapped) (*Wrapped, bool) {
	lf, rf := FamilyOf(left), FamilyOf(right)
	if lf&spec.Left == 0 || rf&spec.Right == 0 {
		return nil, false
	}
	var inner Type
	switch spec.Result {
	case BinaryResultBool:
		inner = Bool
	case BinaryResultLeft:
		inner = left.inner
	case BinaryResultNumeric:
		inner = WiderNumeric(left.inner.(*SpecialType), right.inner.(*SpecialType))
	default:
		return nil, false
	}
	return Wrap(inner, KindValue, ModInstance, nil), true
}

// UnaryResultType applies spec to an operand type.
func UnaryResultType(spec UnarySpec, operand *Wrapped) (*Wrapped, bool) {
	if FamilyOf(operand)&spec.Operand == 0 {
		return nil, false
	}
	inner := operand.inner
	if spec.Result == UnaryResultBool {
		inner = Bool
	}
	return Wrap(inner, KindValue, ModInstance, nil), true
}

// WiderNumeric returns the operand that the other widens to.
func WiderNumeric(a, b *SpecialType) *SpecialType {
	if b.numeric > a.numeric {
		return b
	}
	return a
}
