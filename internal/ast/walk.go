package ast

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// every node. When f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Module:
		Inspect(n.Body, f)
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *ExprStmt:
		inspectExpr(n.X, f)
	case *IfStmt:
		inspectExpr(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *WhileStmt:
		inspectExpr(n.Cond, f)
		Inspect(n.Body, f)
	case *ReturnStmt:
		inspectExpr(n.Value, f)
	case *BreakStmt, *ContinueStmt:
	case *ObjectDecl:
		inspectExpr(n.Base, f)
		Inspect(n.Body, f)
	case *FunctionDecl:
		inspectExpr(n.Result, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *VariableDecl:
		inspectExpr(n.Type, f)
		inspectExpr(n.Value, f)
	case *SymbolExpr, *ThisExpr, *NullExpr, *BoolExpr, *IntExpr, *FloatExpr:
	case *MemberExpr:
		inspectExpr(n.X, f)
	case *CallExpr:
		inspectExpr(n.Callee, f)
		inspectExprs(n.Args, f)
	case *NewExpr:
		inspectExpr(n.Type, f)
		inspectExprs(n.Args, f)
	case *UnaryExpr:
		inspectExpr(n.X, f)
	case *BinaryExpr:
		inspectExpr(n.X, f)
		inspectExpr(n.Y, f)
	case *TernaryExpr:
		inspectExpr(n.Cond, f)
		inspectExpr(n.Then, f)
		inspectExpr(n.Else, f)
	case *CastExpr:
		inspectExpr(n.X, f)
		inspectExpr(n.Type, f)
	case *ModifierExpr:
		inspectExpr(n.X, f)
	case *GenericExpr:
		inspectExpr(n.X, f)
		inspectExprs(n.Params, f)
	}
}

func inspectExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectExprs(es []Expr, f func(Node) bool) {
	for _, e := range es {
		Inspect(e, f)
	}
}
