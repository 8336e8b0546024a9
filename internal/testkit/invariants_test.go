package testkit

import (
	"testing"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/lexer"
	"bitscript/internal/parser"
	"bitscript/internal/sema"
	"bitscript/internal/source"
)

func TestInvariantsHoldForValidModule(t *testing.T) {
	src := `
class Shape { void draw(); }
class Square : Shape {
	int side = 1;
	over void draw() {}
}
struct Pair { int a; int b; }
owned Shape s = new Square();
Pair p = Pair(1, 2);
`
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("ok.bs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), builder, parser.Options{Reporter: rep})
	mod := parser.JoinModule(builder, []parser.Result{parsed})
	res := sema.Check(mod, sema.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if err := CheckSpanInvariants(mod, fs); err != nil {
		t.Fatal(err)
	}
	if err := CheckResolved(res); err != nil {
		t.Fatal(err)
	}
}

func TestSpanInvariantsRejectForeignFile(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.bs", []byte("int x;"))
	builder := ast.NewBuilder(ast.Hints{})
	body := builder.NewBlock(source.Span{File: 7, Start: 0, End: 1}, nil)
	mod := builder.NewModule(source.Span{File: 7}, body)
	if err := CheckSpanInvariants(mod, fs); err == nil {
		t.Fatal("expected an error for an unknown file")
	}
}
