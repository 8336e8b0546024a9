package layout_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/layout"
	"bitscript/internal/lexer"
	"bitscript/internal/parser"
	"bitscript/internal/sema"
	"bitscript/internal/source"
	"bitscript/internal/types"
)

func resolve(t *testing.T, src string) *sema.Result {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("layout.bs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), builder, parser.Options{Reporter: rep})
	mod := parser.JoinModule(builder, []parser.Result{res})
	out := sema.Check(mod, sema.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	return out
}

func compute(t *testing.T, src string) *layout.Report {
	t.Helper()
	return layout.New(layout.Bits32()).Compute(resolve(t, src).SortedObjects)
}

func object(t *testing.T, r *layout.Report, name string) *layout.ObjectLayout {
	t.Helper()
	obj := r.Object(name)
	if obj == nil {
		t.Fatalf("no layout for %s", name)
	}
	return obj
}

func TestFieldsSortedBySize(t *testing.T) {
	r := compute(t, "struct S { bool a; int b; double c; bool d; }")
	got := object(t, r, "S")
	want := &layout.ObjectLayout{
		Name:         "S",
		Kind:         "struct",
		Size:         16,
		Align:        8,
		VtableOffset: -1,
		Fields: []layout.FieldLayout{
			{Name: "c", Type: "double", Offset: 0},
			{Name: "b", Type: "int", Offset: 8},
			{Name: "a", Type: "bool", Offset: 12},
			{Name: "d", Type: "bool", Offset: 13},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerAndValueFields(t *testing.T) {
	r := compute(t, `
class N { N next; owned N child; int v; }
struct P { double x; }
struct Q { bool b; P p; }
class E {}
`)
	n := object(t, r, "N")
	if n.Size != 12 || n.Align != 4 {
		t.Fatalf("N: size=%d align=%d", n.Size, n.Align)
	}
	q := object(t, r, "Q")
	if diff := cmp.Diff([]layout.FieldLayout{
		{Name: "p", Type: "P", Offset: 0},
		{Name: "b", Type: "bool", Offset: 8},
	}, q.Fields); diff != "" {
		t.Fatalf("Q fields (-want +got):\n%s", diff)
	}
	if q.Size != 16 || q.Align != 8 {
		t.Fatalf("Q: size=%d align=%d", q.Size, q.Align)
	}
	e := object(t, r, "E")
	if e.Size != 1 || e.Align != 1 || e.VtableOffset != -1 {
		t.Fatalf("empty class: %+v", e)
	}
}

func TestVTableSlots(t *testing.T) {
	r := compute(t, `
class A { int x; void f() {} void g() {} }
class B : A { over void g() {} void h() {} bool flag; }
class C : B { over void f() {} over void h() {} ~C() {} }
`)
	a, b, c := object(t, r, "A"), object(t, r, "B"), object(t, r, "C")

	if diff := cmp.Diff([]layout.Slot{
		{Offset: 0, Name: "f", Owner: "A"},
		{Offset: 4, Name: "g", Owner: "A"},
	}, a.Vtable); diff != "" {
		t.Fatalf("A vtable (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]layout.Slot{
		{Offset: 0, Name: "f", Owner: "A"},
		{Offset: 4, Name: "g", Owner: "B"},
		{Offset: 8, Name: "h", Owner: "B"},
	}, b.Vtable); diff != "" {
		t.Fatalf("B vtable (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]layout.Slot{
		{Offset: 0, Name: "f", Owner: "C"},
		{Offset: 4, Name: "g", Owner: "B"},
		{Offset: 8, Name: "h", Owner: "C"},
	}, c.Vtable); diff != "" {
		t.Fatalf("C vtable (-want +got):\n%s", diff)
	}

	// указатель на vtable только в корне иерархии
	for _, obj := range []*layout.ObjectLayout{a, b, c} {
		if obj.VtableOffset != 0 {
			t.Fatalf("%s: vtable offset %d, want 0", obj.Name, obj.VtableOffset)
		}
	}
	if a.Fields[0].Offset != 4 || a.Size != 8 {
		t.Fatalf("A: %+v", a)
	}
	if b.Fields[0].Offset != 8 || b.Size != 12 {
		t.Fatalf("B: %+v", b)
	}
	if c.Size != 12 {
		t.Fatalf("C: %+v", c)
	}
}

func TestSiblingAlignmentConverges(t *testing.T) {
	res := resolve(t, `
class Base { int x; }
class Left : Base { double d; }
class Right : Base { bool b; }
`)
	layout.New(layout.Bits32()).Compute(res.SortedObjects)

	byName := map[string]*types.ObjectType{}
	for _, obj := range res.Objects {
		byName[obj.Name] = obj
	}
	base, left, right := byName["Base"], byName["Left"], byName["Right"]
	if want := max(left.Alignment, right.Alignment); base.Alignment != want {
		t.Fatalf("base alignment %d, want %d", base.Alignment, want)
	}
	if base.Size != 8 {
		t.Fatalf("base size %d, want 8", base.Size)
	}
	if d := left.Scope.Find("d"); d.ByteOffset != 8 {
		t.Fatalf("Left.d at %d, want 8", d.ByteOffset)
	}
}

func TestHierarchySharesRootAlignment(t *testing.T) {
	r := compute(t, `
class A { int a; }
class B : A { double d; }
class C : A { int c; }
class D : C { bool f; }
`)
	type shape struct{ Size, Align int }
	got := map[string]shape{}
	for _, name := range []string{"A", "B", "C", "D"} {
		obj := object(t, r, name)
		got[name] = shape{obj.Size, obj.Align}
	}
	want := map[string]shape{
		"A": {8, 8},
		"B": {16, 8},
		"C": {16, 8},
		"D": {24, 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hierarchy layout (-want +got):\n%s", diff)
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	src := `
struct V { bool a; double b; int c; bool d; int e; }
class A { V v; int n; void f() {} }
class B : A { over void f() {} bool z; double w; }
`
	first := compute(t, src)
	for range 5 {
		if diff := cmp.Diff(first, compute(t, src)); diff != "" {
			t.Fatalf("layout differs between runs (-first +again):\n%s", diff)
		}
	}
}

func TestPreconditionsPanic(t *testing.T) {
	expectPanic := func(t *testing.T, kind layout.LayoutErrorKind, fn func()) {
		t.Helper()
		defer func() {
			rec := recover()
			err, ok := rec.(error)
			var lerr *layout.LayoutError
			if !ok || !errors.As(err, &lerr) || lerr.Kind != kind {
				t.Fatalf("expected LayoutError kind %d, got %v", kind, rec)
			}
		}()
		fn()
	}

	res := resolve(t, "class A { int x; } class B : A { int y; }")
	engine := layout.New(layout.Bits32())
	engine.Compute(res.SortedObjects)
	expectPanic(t, layout.LayoutErrRelayout, func() { engine.Compute(res.SortedObjects) })

	res = resolve(t, "class A { int x; } class B : A { int y; }")
	reversed := []*types.ObjectType{res.SortedObjects[1], res.SortedObjects[0]}
	expectPanic(t, layout.LayoutErrOrder, func() { engine.Compute(reversed) })
}

func TestReportEncoding(t *testing.T) {
	r := compute(t, "class A { int x; void f() {} } class B : A { over void f() {} double d; }")

	var buf bytes.Buffer
	if err := layout.EncodeJSON(&buf, r); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"vtable_offset": 0`) || !strings.Contains(buf.String(), `"base": "A"`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}

	data, err := layout.EncodeMsgpack(r)
	if err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	back, err := layout.DecodeMsgpack(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(r, back); diff != "" {
		t.Fatalf("msgpack round trip (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := layout.WriteText(&buf, r); err != nil {
		t.Fatalf("text: %v", err)
	}
	for _, want := range []string{"class B : A  size=16 align=8", "slot 0  B.f", "<vtable>"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("text report misses %q:\n%s", want, buf.String())
		}
	}
}
