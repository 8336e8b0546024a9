package ast

// ObjectDecl is a class or struct declaration.
type ObjectDecl struct {
	node
	DeclHeader
	// IsValueType is set for "struct": a bare use of the name is a value, not a pointer.
	IsValueType bool
	Base        Expr // nil when there is no base class
	Body        *Block
}

// FuncKind distinguishes special member functions.
type FuncKind uint8

const (
	FuncNormal FuncKind = iota
	FuncConstructor
	FuncCopyConstructor
	FuncDestructor
	FuncMoveDestructor
)

func (k FuncKind) IsSpecial() bool { return k != FuncNormal }

func (k FuncKind) String() string {
	switch k {
	case FuncConstructor:
		return "constructor"
	case FuncCopyConstructor:
		return "copy constructor"
	case FuncDestructor:
		return "destructor"
	case FuncMoveDestructor:
		return "move destructor"
	default:
		return "function"
	}
}

type FunctionDecl struct {
	node
	DeclHeader
	Kind   FuncKind
	Result Expr // nil for special functions
	Args   []*VariableDecl
	Body   *Block // nil => abstract
}

type VariableDecl struct {
	node
	DeclHeader
	Type  Expr
	Value Expr // nil when absent
}

func (d *ObjectDecl) Header() *DeclHeader   { return &d.DeclHeader }
func (d *FunctionDecl) Header() *DeclHeader { return &d.DeclHeader }
func (d *VariableDecl) Header() *DeclHeader { return &d.DeclHeader }

func (*ObjectDecl) stmtNode()   {}
func (*FunctionDecl) stmtNode() {}
func (*VariableDecl) stmtNode() {}

func (*ObjectDecl) declNode()   {}
func (*FunctionDecl) declNode() {}
func (*VariableDecl) declNode() {}
