package ast

import "bitscript/internal/source"

// Node is implemented by every syntax tree node.
type Node interface {
	ID() NodeID
	Span() source.Span
}

// Stmt is a statement. Decl is a Stmt too.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression. Types are written as expressions and resolved "as type".
type Expr interface {
	Node
	exprNode()
}

// Decl is a named declaration: object, function or variable.
type Decl interface {
	Stmt
	Header() *DeclHeader
	declNode()
}

type node struct {
	id   NodeID
	span source.Span
}

func (n *node) ID() NodeID        { return n.id }
func (n *node) Span() source.Span { return n.span }

// SetSpan is used by the parser when a node's extent is only known after its children.
func (n *node) SetSpan(sp source.Span) { n.span = sp }

// SymbolMods is the over/final/static bitset written in front of a declaration.
type SymbolMods uint8

const (
	ModOver SymbolMods = 1 << iota
	ModFinal
	ModStatic
)

func (m SymbolMods) Has(bit SymbolMods) bool { return m&bit != 0 }

func (m SymbolMods) String() string {
	s := ""
	add := func(bit SymbolMods, name string) {
		if m.Has(bit) {
			if s != "" {
				s += " "
			}
			s += name
		}
	}
	add(ModOver, "over")
	add(ModFinal, "final")
	add(ModStatic, "static")
	return s
}

// Modifier remembers where a symbol modifier was written.
type Modifier struct {
	Bit  SymbolMods
	Span source.Span
}

// Ident is a name together with its location.
type Ident struct {
	Name string
	Span source.Span
}

// DeclHeader is shared by all declarations.
type DeclHeader struct {
	Name Ident
	Mods SymbolMods
	// ModList keeps modifier locations in source order.
	ModList []Modifier
}

// ModSpan returns the location of bit, or the name span if it was not written.
func (h *DeclHeader) ModSpan(bit SymbolMods) source.Span {
	for _, m := range h.ModList {
		if m.Bit == bit {
			return m.Span
		}
	}
	return h.Name.Span
}

// Strip clears bit after a diagnostic rejected it.
func (h *DeclHeader) Strip(bit SymbolMods) {
	h.Mods &^= bit
}
