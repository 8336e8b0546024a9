package ast

import "bitscript/internal/source"

type SymbolExpr struct {
	node
	Name string
}

type ThisExpr struct{ node }

type NullExpr struct{ node }

type BoolExpr struct {
	node
	Value bool
}

type IntExpr struct {
	node
	Value int32
}

type FloatExpr struct {
	node
	Value float64
	// IsFloat is set for literals with the 'f' suffix; otherwise the literal is a double.
	IsFloat bool
}

type MemberExpr struct {
	node
	X       Expr
	IsArrow bool // "->" rather than "."
	Name    Ident
}

type CallExpr struct {
	node
	Callee Expr
	Args   []Expr
}

type NewExpr struct {
	node
	Type Expr
	Args []Expr
}

type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
	UnaryComplement
	UnaryDeref
	UnaryAddressOf
	UnaryMove
	UnaryCopy
)

var unaryNames = [...]string{"+", "-", "!", "~", "*", "&", "move", "copy"}

func (op UnaryOp) String() string { return unaryNames[op] }

type UnaryExpr struct {
	node
	Op    UnaryOp
	OpPos source.Span
	X     Expr
}

type BinaryOp uint8

const (
	BinaryAssign BinaryOp = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryShl
	BinaryShr
	BinaryBitAnd
	BinaryBitOr
	BinaryBitXor
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryEq
	BinaryNotEq
	BinaryLess
	BinaryLessEq
	BinaryGreater
	BinaryGreaterEq
)

var binaryNames = [...]string{
	"=", "+", "-", "*", "/", "%", "<<", ">>", "&", "|", "^", "&&", "||",
	"==", "!=", "<", "<=", ">", ">=",
}

func (op BinaryOp) String() string { return binaryNames[op] }

func (op BinaryOp) IsComparison() bool {
	return op >= BinaryLess && op <= BinaryGreaterEq
}

func (op BinaryOp) IsEquality() bool {
	return op == BinaryEq || op == BinaryNotEq
}

func (op BinaryOp) IsLogical() bool {
	return op == BinaryLogicalAnd || op == BinaryLogicalOr
}

type BinaryExpr struct {
	node
	Op    BinaryOp
	OpPos source.Span
	X, Y  Expr
}

type TernaryExpr struct {
	node
	Cond, Then, Else Expr
}

// CastExpr is an explicit conversion "x as T".
type CastExpr struct {
	node
	X    Expr
	Type Expr
}

type PointerModifier uint8

const (
	PtrOwned PointerModifier = iota
	PtrShared
	PtrRef
)

func (m PointerModifier) String() string {
	switch m {
	case PtrOwned:
		return "owned"
	case PtrShared:
		return "shared"
	default:
		return "ref"
	}
}

// ModifierExpr is an ownership prefix in a type: owned T, shared T, ref T.
type ModifierExpr struct {
	node
	Modifier PointerModifier
	KwSpan   source.Span
	X        Expr
}

// GenericExpr applies type arguments: List<Foo>.
type GenericExpr struct {
	node
	X      Expr
	Params []Expr
}

func (*SymbolExpr) exprNode()   {}
func (*ThisExpr) exprNode()     {}
func (*NullExpr) exprNode()     {}
func (*BoolExpr) exprNode()     {}
func (*IntExpr) exprNode()      {}
func (*FloatExpr) exprNode()    {}
func (*MemberExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*NewExpr) exprNode()      {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*TernaryExpr) exprNode()  {}
func (*CastExpr) exprNode()     {}
func (*ModifierExpr) exprNode() {}
func (*GenericExpr) exprNode()  {}
