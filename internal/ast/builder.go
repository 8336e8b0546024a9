package ast

import (
	"bitscript/internal/source"
)

type Hints struct{ Nodes uint }

// Builder allocates nodes and hands out their NodeIDs.
// One Builder is shared by every file of a compilation so IDs stay unique.
type Builder struct {
	Nodes *Arena[Node]
}

func NewBuilder(hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 10
	}
	return &Builder{Nodes: NewArena[Node](hints.Nodes)}
}

// Node returns the node registered under id, or nil.
func (b *Builder) Node(id NodeID) Node {
	return b.Nodes.Get(uint32(id))
}

type nodeBase interface {
	Node
	base() *node
}

func (n *node) base() *node { return n }

func add[T nodeBase](b *Builder, n T, sp source.Span) T {
	nb := n.base()
	nb.span = sp
	nb.id = NodeID(b.Nodes.Allocate(n))
	return n
}

func (b *Builder) NewModule(sp source.Span, body *Block) *Module {
	return add(b, &Module{Body: body}, sp)
}

func (b *Builder) NewBlock(sp source.Span, stmts []Stmt) *Block {
	return add(b, &Block{Stmts: stmts}, sp)
}

func (b *Builder) NewExprStmt(sp source.Span, x Expr) *ExprStmt {
	return add(b, &ExprStmt{X: x}, sp)
}

func (b *Builder) NewIf(sp source.Span, cond Expr, then *Block, els Stmt) *IfStmt {
	return add(b, &IfStmt{Cond: cond, Then: then, Else: els}, sp)
}

func (b *Builder) NewWhile(sp source.Span, cond Expr, body *Block) *WhileStmt {
	return add(b, &WhileStmt{Cond: cond, Body: body}, sp)
}

func (b *Builder) NewReturn(sp source.Span, value Expr) *ReturnStmt {
	return add(b, &ReturnStmt{Value: value}, sp)
}

func (b *Builder) NewBreak(sp source.Span) *BreakStmt {
	return add(b, &BreakStmt{}, sp)
}

func (b *Builder) NewContinue(sp source.Span) *ContinueStmt {
	return add(b, &ContinueStmt{}, sp)
}

func (b *Builder) NewObject(sp source.Span, hdr DeclHeader, isValue bool, base Expr, body *Block) *ObjectDecl {
	return add(b, &ObjectDecl{DeclHeader: hdr, IsValueType: isValue, Base: base, Body: body}, sp)
}

func (b *Builder) NewFunction(sp source.Span, hdr DeclHeader, kind FuncKind, result Expr, args []*VariableDecl, body *Block) *FunctionDecl {
	return add(b, &FunctionDecl{DeclHeader: hdr, Kind: kind, Result: result, Args: args, Body: body}, sp)
}

func (b *Builder) NewVariable(sp source.Span, hdr DeclHeader, typ, value Expr) *VariableDecl {
	return add(b, &VariableDecl{DeclHeader: hdr, Type: typ, Value: value}, sp)
}

func (b *Builder) NewSymbol(sp source.Span, name string) *SymbolExpr {
	return add(b, &SymbolExpr{Name: name}, sp)
}

func (b *Builder) NewThis(sp source.Span) *ThisExpr {
	return add(b, &ThisExpr{}, sp)
}

func (b *Builder) NewNull(sp source.Span) *NullExpr {
	return add(b, &NullExpr{}, sp)
}

func (b *Builder) NewBool(sp source.Span, v bool) *BoolExpr {
	return add(b, &BoolExpr{Value: v}, sp)
}

func (b *Builder) NewInt(sp source.Span, v int32) *IntExpr {
	return add(b, &IntExpr{Value: v}, sp)
}

func (b *Builder) NewFloat(sp source.Span, v float64, isFloat bool) *FloatExpr {
	return add(b, &FloatExpr{Value: v, IsFloat: isFloat}, sp)
}

func (b *Builder) NewMember(sp source.Span, x Expr, arrow bool, name Ident) *MemberExpr {
	return add(b, &MemberExpr{X: x, IsArrow: arrow, Name: name}, sp)
}

func (b *Builder) NewCall(sp source.Span, callee Expr, args []Expr) *CallExpr {
	return add(b, &CallExpr{Callee: callee, Args: args}, sp)
}

func (b *Builder) NewNew(sp source.Span, typ Expr, args []Expr) *NewExpr {
	return add(b, &NewExpr{Type: typ, Args: args}, sp)
}

func (b *Builder) NewUnary(sp source.Span, op UnaryOp, opPos source.Span, x Expr) *UnaryExpr {
	return add(b, &UnaryExpr{Op: op, OpPos: opPos, X: x}, sp)
}

func (b *Builder) NewBinary(sp source.Span, op BinaryOp, opPos source.Span, x, y Expr) *BinaryExpr {
	return add(b, &BinaryExpr{Op: op, OpPos: opPos, X: x, Y: y}, sp)
}

func (b *Builder) NewTernary(sp source.Span, cond, then, els Expr) *TernaryExpr {
	return add(b, &TernaryExpr{Cond: cond, Then: then, Else: els}, sp)
}

func (b *Builder) NewCast(sp source.Span, x, typ Expr) *CastExpr {
	return add(b, &CastExpr{X: x, Type: typ}, sp)
}

func (b *Builder) NewModifier(sp source.Span, m PointerModifier, kw source.Span, x Expr) *ModifierExpr {
	return add(b, &ModifierExpr{Modifier: m, KwSpan: kw, X: x}, sp)
}

func (b *Builder) NewGeneric(sp source.Span, x Expr, params []Expr) *GenericExpr {
	return add(b, &GenericExpr{X: x, Params: params}, sp)
}
