package ast

// Module is the root: every parsed file's statements concatenated into one block.
type Module struct {
	node
	Body *Block
}

func (*Module) stmtNode() {}

type Block struct {
	node
	Stmts []Stmt
}

type ExprStmt struct {
	node
	X Expr
}

type IfStmt struct {
	node
	Cond Expr
	Then *Block
	Else Stmt // nil, *Block or *IfStmt
}

type WhileStmt struct {
	node
	Cond Expr
	Body *Block
}

type ReturnStmt struct {
	node
	Value Expr // nil для "return;"
}

type BreakStmt struct{ node }

type ContinueStmt struct{ node }

func (*Block) stmtNode()        {}
func (*ExprStmt) stmtNode()     {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
