package ast

import (
	"testing"

	"bitscript/internal/source"
)

func TestBuilderAssignsMonotonicIDs(t *testing.T) {
	b := NewBuilder(Hints{})
	x := b.NewSymbol(source.Span{Start: 0, End: 1}, "x")
	one := b.NewInt(source.Span{Start: 4, End: 5}, 1)
	assign := b.NewBinary(x.Span().Cover(one.Span()), BinaryAssign, source.Span{Start: 2, End: 3}, x, one)

	if !(x.ID() < one.ID() && one.ID() < assign.ID()) {
		t.Fatalf("ids not monotonic: %d %d %d", x.ID(), one.ID(), assign.ID())
	}
	if b.Node(assign.ID()) != Node(assign) {
		t.Fatalf("Node(id) must return the registered node")
	}
	if b.Node(NoNodeID) != nil {
		t.Fatalf("NoNodeID must resolve to nil")
	}
	if assign.Span().Start != 0 || assign.Span().End != 5 {
		t.Fatalf("span = %v", assign.Span())
	}
}

func TestDeclHeaderModifiers(t *testing.T) {
	h := DeclHeader{
		Name:    Ident{Name: "f", Span: source.Span{Start: 10, End: 11}},
		Mods:    ModOver | ModStatic,
		ModList: []Modifier{{Bit: ModOver, Span: source.Span{Start: 0, End: 4}}, {Bit: ModStatic, Span: source.Span{Start: 5, End: 11}}},
	}
	if got := h.ModSpan(ModStatic); got.Start != 5 {
		t.Fatalf("ModSpan(static) = %v", got)
	}
	if got := h.ModSpan(ModFinal); got != h.Name.Span {
		t.Fatalf("missing modifier must fall back to the name span")
	}
	h.Strip(ModOver)
	if h.Mods.Has(ModOver) || h.Mods.String() != "static" {
		t.Fatalf("Strip failed: %q", h.Mods.String())
	}
}

func TestInspectVisitsEveryNode(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	cond := b.NewBool(sp, true)
	ret := b.NewReturn(sp, b.NewInt(sp, 1))
	body := b.NewBlock(sp, []Stmt{ret})
	ifs := b.NewIf(sp, cond, body, nil)
	mod := b.NewModule(sp, b.NewBlock(sp, []Stmt{ifs}))

	count := 0
	Inspect(mod, func(Node) bool {
		count++
		return true
	})
	// module, block, if, bool, block, return, int
	if count != 7 {
		t.Fatalf("visited %d nodes", count)
	}

	count = 0
	Inspect(mod, func(n Node) bool {
		count++
		_, isIf := n.(*IfStmt)
		return !isIf
	})
	if count != 3 {
		t.Fatalf("pruned walk visited %d nodes", count)
	}
}
