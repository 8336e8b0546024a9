package sema

import (
	"strings"
	"testing"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/lexer"
	"bitscript/internal/parser"
	"bitscript/internal/source"

	"github.com/google/go-cmp/cmp"
)

type checked struct {
	mod     *ast.Module
	res     *Result
	bag     *diag.Bag
	checker *Checker
	src     string
}

func checkSource(t *testing.T, src string) checked {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.bs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	parsed := parser.ParseFile(lx, builder, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("unexpected parse diagnostics for %q: %s", src, summary(bag))
	}
	mod := parser.JoinModule(builder, []parser.Result{parsed})
	checker := NewChecker(Options{Reporter: rep})
	res := checker.CheckModule(mod)
	return checked{mod: mod, res: res, bag: bag, checker: checker, src: src}
}

func summary(bag *diag.Bag) string {
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, d.Code.ID()+" "+d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func expectCodes(t *testing.T, c checked, want ...diag.Code) {
	t.Helper()
	if want == nil {
		want = []diag.Code{}
	}
	if diff := cmp.Diff(want, codes(c.bag)); diff != "" {
		t.Fatalf("diagnostics mismatch for %q (-want +got):\n%s\n%s", c.src, diff, summary(c.bag))
	}
}

func spanOf(src, sub string) (uint32, uint32) {
	i := strings.Index(src, sub)
	if i < 0 {
		panic("substring not found: " + sub)
	}
	return uint32(i), uint32(i + len(sub))
}

func findNode[T ast.Node](root ast.Node) T {
	var found T
	done := false
	ast.Inspect(root, func(n ast.Node) bool {
		if done {
			return false
		}
		if v, ok := n.(T); ok {
			found = v
			done = true
			return false
		}
		return true
	})
	return found
}

func TestValueVariableFromNewIsRejected(t *testing.T) {
	c := checkSource(t, "struct Foo {} Foo foo = new Foo();")
	expectCodes(t, c, diag.SemaIncompatibleTypes)

	d := c.bag.Items()[0]
	if want := "cannot convert from value of type owned Foo to value of type Foo"; d.Message != want {
		t.Fatalf("message: got %q, want %q", d.Message, want)
	}
	newExpr := findNode[*ast.NewExpr](c.mod)
	if d.Primary != newExpr.Span() {
		t.Fatalf("diagnostic at %v, want new expression %v", d.Primary, newExpr.Span())
	}
}

func TestOwnedVariableFromNew(t *testing.T) {
	c := checkSource(t, "struct Foo {} owned Foo foo = new Foo();")
	expectCodes(t, c)
}

func TestConflictingPointerModifiers(t *testing.T) {
	src := "struct Foo {} owned shared Foo foo = new Foo();"
	c := checkSource(t, src)
	expectCodes(t, c, diag.SemaConflictingModifiers)

	start, end := spanOf(src, "owned shared")
	got := c.bag.Items()[0].Primary
	if got.Start != start || got.End != end {
		t.Fatalf("diagnostic at %d..%d, want modifiers %d..%d", got.Start, got.End, start, end)
	}
}

func TestCyclesReportOnce(t *testing.T) {
	cases := []string{
		"class A : A {}",
		"class A : B {} class B : A {}",
		"class A : B {} class B : C {} class C : A {}",
	}
	for _, src := range cases {
		c := checkSource(t, src)
		expectCodes(t, c, diag.SemaCircularType)
	}
}

func TestCycleReportedAtClosingReference(t *testing.T) {
	src := "class A : B {} class B : A {}"
	c := checkSource(t, src)
	expectCodes(t, c, diag.SemaCircularType)
	// A резолвится первым, цикл замыкает ссылка на A в объявлении B
	start, _ := spanOf(src, ": A")
	if got := c.bag.Items()[0].Primary.Start; got != start+2 {
		t.Fatalf("cycle reported at %d, want %d", got, start+2)
	}
}

func TestMutualReferenceIsLegal(t *testing.T) {
	c := checkSource(t, "class A { C c; } class B : A {} class C { B b; }")
	expectCodes(t, c)
	if err := c.res.Table.Validate(); err != nil {
		t.Fatalf("table: %v", err)
	}
}

func TestAbstractnessPropagates(t *testing.T) {
	src := `
class Shape { void draw(); }
class Circle : Shape {}
class Square : Shape { over void draw() {} }
owned Shape a = new Circle();
owned Shape b = new Square();
`
	c := checkSource(t, src)
	expectCodes(t, c, diag.SemaAbstractNew)

	newExpr := findNode[*ast.NewExpr](c.mod)
	if got := c.bag.Items()[0].Primary; got != newExpr.Span() {
		t.Fatalf("AbstractNew at %v, want %v", got, newExpr.Span())
	}
	abstract := map[string]bool{}
	for _, obj := range c.res.Objects {
		abstract[obj.Name] = obj.IsAbstract()
	}
	want := map[string]bool{"Shape": true, "Circle": true, "Square": false}
	if diff := cmp.Diff(want, abstract); diff != "" {
		t.Fatalf("abstract (-want +got):\n%s", diff)
	}
}

func TestAbstractValueRejectedInAnyOrder(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"declaration first", "struct S { void g(S s) {} void f(); }",
			[]diag.Code{diag.SemaBadVariableType}},
		{"constructed first", "void h() { S(); } struct S { void g(S s) {} void f(); }",
			[]diag.Code{diag.SemaBadVariableType, diag.SemaAbstractNew}},
		{"inherited", "void h() { owned B b = new B(); } class A { void f(); } class B : A { void g(B x) {} }",
			[]diag.Code{diag.SemaBadVariableType, diag.SemaAbstractNew}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestOverrideContract(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{
			name: "different signature without over",
			src:  "class Base { void f() {} } class Derived : Base { void f(int x) {} }",
			want: []diag.Code{diag.SemaModifierMissingOver},
		},
		{
			name: "same signature without over",
			src:  "class Base { void f() {} } class Derived : Base { void f() {} }",
			want: []diag.Code{diag.SemaModifierMissingOver},
		},
		{
			name: "over without base member",
			src:  "class Base {} class Derived : Base { over void g() {} }",
			want: []diag.Code{diag.SemaModifierOverMissingBase},
		},
		{
			name: "over without base type",
			src:  "class Base { over void g() {} }",
			want: []diag.Code{diag.SemaModifierOverMissingBase},
		},
		{
			name: "variable hides function",
			src:  "class Base { int f; } class Derived : Base { void f() {} }",
			want: []diag.Code{diag.SemaOverrideNotFunctions},
		},
		{
			name: "different signature with over",
			src:  "class Base { void f() {} } class Derived : Base { over int f() { return 1; } }",
			want: []diag.Code{diag.SemaOverrideDifferentTypes},
		},
		{
			name: "final base member",
			src:  "class Base { final void f() {} } class Derived : Base { over void f() {} }",
			want: []diag.Code{diag.SemaOverrideFinal},
		},
		{
			name: "valid override",
			src:  "class Base { void f() {} } class Derived : Base { over void f() {} }",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := checkSource(t, tc.src)
			expectCodes(t, c, tc.want...)
		})
	}
}

func TestOverrideLinks(t *testing.T) {
	c := checkSource(t, "class A { void f() {} } class B : A { over void f() {} } class C : B { over void f() {} }")
	expectCodes(t, c)
	a, b, cc := c.res.Objects[0], c.res.Objects[1], c.res.Objects[2]
	fa, fb, fc := a.Scope.Find("f"), b.Scope.Find("f"), cc.Scope.Find("f")
	if fc.Overridden != fb || fb.Overridden != fa {
		t.Fatalf("override chain not linked")
	}
	if len(fa.OverriddenBy) != 1 || fa.OverriddenBy[0] != fb {
		t.Fatalf("base backlink missing")
	}
	if fc.Root() != fa || !fa.IsVirtual() || !fc.IsVirtual() {
		t.Fatalf("virtual flags wrong")
	}
}

func TestResolutionIsIdempotent(t *testing.T) {
	c := checkSource(t, "int y = missing; int z = 1 + 2;")
	before := c.bag.Len()
	if before != 1 {
		t.Fatalf("expected one diagnostic, got %s", summary(c.bag))
	}
	var sym *ast.SymbolExpr
	ast.Inspect(c.mod, func(n ast.Node) bool {
		if s, ok := n.(*ast.SymbolExpr); ok && s.Name == "missing" {
			sym = s
		}
		return true
	})
	first := c.res.TypeOf(sym)
	again := c.checker.ResolveExpr(sym)
	if first == nil || first != again {
		t.Fatalf("second resolution changed the type")
	}
	bin := findNode[*ast.BinaryExpr](c.mod)
	if c.checker.ResolveExpr(bin) != c.res.TypeOf(bin) {
		t.Fatalf("binary expression resolved twice")
	}
	if c.checker.CheckModule(c.mod) != c.res {
		t.Fatalf("CheckModule should return the same result")
	}
	if c.bag.Len() != before {
		t.Fatalf("diagnostics re-emitted: %s", summary(c.bag))
	}
}

func TestTypeUsedAsValueReportedOnce(t *testing.T) {
	c := checkSource(t, "struct Foo {} int y = -Foo;")
	expectCodes(t, c, diag.SemaUnexpectedExpression)

	var foo *ast.SymbolExpr
	ast.Inspect(c.mod, func(n ast.Node) bool {
		if s, ok := n.(*ast.SymbolExpr); ok && s.Name == "Foo" {
			foo = s
		}
		return true
	})
	if foo == nil {
		t.Fatalf("no reference to Foo")
	}
	for range 2 {
		if got := c.checker.resolveValue(foo); !got.IsError() {
			t.Fatalf("resolveValue(Foo) = %s, want error", got.Describe())
		}
	}
	expectCodes(t, c, diag.SemaUnexpectedExpression)
}

func TestNamesAndScopes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"unknown", "int a = b;", []diag.Code{diag.SemaUnknownSymbol}},
		{"duplicate", "int a; int a;", []diag.Code{diag.SemaDuplicateSymbol}},
		{"forward reference at module level", "int a = f(); int f() { return 1; }", nil},
		{"shadowing is legal", "int a; void f() { int a = 2; }", nil},
		{"locals are sequential", "void f() { int b = c; int c = 1; }", []diag.Code{diag.SemaUnknownSymbol}},
		{"this outside member", "class A {} A a = this;", []diag.Code{diag.SemaThisOutsideMember}},
		{"instance from static", "class K { int v; static int get() { return v; } }", []diag.Code{diag.SemaMemberUnexpectedInstance}},
		{"instance member access", "class K { int v; int get() { return this->v + v; } }", nil},
		{"inherited member", "class A { int v; } class B : A { int get() { return v; } }", nil},
		{"class in function", "void f() { class X {} }", []diag.Code{diag.SemaUnexpectedStatement}},
		{"statement in class", "class X { 1; }", []diag.Code{diag.SemaUnexpectedStatement}},
		{"static outside class", "static int a;", []diag.Code{diag.SemaBadModifier}},
		{"modifiers on class", "final class X {}", []diag.Code{diag.SemaBadModifier}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestMemberAccess(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"arrow on pointer", "class P { int x; } P p; int y = p->x;", nil},
		{"dot on pointer", "class P { int x; } P p; int y = p.x;", []diag.Code{diag.SemaWrongMemberOperator}},
		{"arrow on value", "struct V { int x = 0; } V v; int y = v->x;", []diag.Code{diag.SemaWrongMemberOperator}},
		{"static through type", "class M { static int k = 1; } int a = M.k;", nil},
		{"instance through type", "class M { int v; } int a = M.v;", []diag.Code{diag.SemaMemberUnexpectedInstance}},
		{"static through instance", "class M { static int k = 1; } M m; int a = m->k;", []diag.Code{diag.SemaMemberUnexpectedStatic}},
		{"unknown member", "class M {} M m; int a = m->nope;", []diag.Code{diag.SemaUnknownMemberSymbol}},
		{"no members", "int i; int a = i.x;", []diag.Code{diag.SemaNoMembers}},
		{"math", "double r = Math.sqrt(Math.PI) + Math.max(1.0, 2);", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestAssignmentsAndMoves(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"final", "final int k = 1; void f() { k = 2; }", []diag.Code{diag.SemaAssignmentToFinal}},
		{"not storage", "void f() { 1 = 2; }", []diag.Code{diag.SemaBadStorage}},
		{"value needs move", "struct V {} V a; V b = a;", []diag.Code{diag.SemaNeedMoveOrCopy}},
		{"explicit move", "struct V {} V a; V b = move a;", nil},
		{"explicit copy", "struct V {} V a; V b = copy a;", nil},
		{"nested copy", "struct V {} V a; V b = copy copy a;", []diag.Code{diag.SemaBadMoveOrCopy}},
		{"move pointer", "class C {} C a; C b = move a;", []diag.Code{diag.SemaBadMoveOrCopy}},
		{"move temporary", "struct V {} V b = move V();", []diag.Code{diag.SemaImpliedMove}},
		{"ref to temporary", "struct V {} ref V r = V();", []diag.Code{diag.SemaRValueToRef}},
		{"ref to storage", "struct V {} V a; ref V r = a;", nil},
		{"owned to borrowed storage", "class C {} owned C o = new C(); C b = o;", nil},
		{"borrowed to owned", "class C {} C b; owned C o = b;", []diag.Code{diag.SemaIncompatibleTypes}},
		{"needs value", "struct P { int x; } P p;", []diag.Code{diag.SemaVariableNeedsValue}},
		{"ref needs value", "struct V {} ref V r;", []diag.Code{diag.SemaVariableNeedsValue}},
		{"void variable", "void v;", []diag.Code{diag.SemaBadVariableType}},
		{"abstract value", "struct S { void f(); } S s;", []diag.Code{diag.SemaBadVariableType}},
		{"address and deref", "struct V {} V a; V b = copy *&a;", nil},
		{"deref non pointer", "int i; int j = *i;", []diag.Code{diag.SemaBadOperator}},
		{"null to pointer", "class C {} C c = null;", nil},
		{"null to value", "struct V {} V v = null;", []diag.Code{diag.SemaIncompatibleTypes}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestExpressions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"widening", "double d = 1 + 2.5f;", nil},
		{"narrowing", "int i = 1 + 2.0;", []diag.Code{diag.SemaIncompatibleTypes}},
		{"explicit narrowing", "int i = (1 + 2.0) as int;", nil},
		{"bad unary", "bool b = !1;", []diag.Code{diag.SemaBadOperator}},
		{"bad shift", "int i = 1.0 << 2;", []diag.Code{diag.SemaBadOperator}},
		{"comparison", "bool b = 1 < 2.0 && true;", nil},
		{"equality of pointers", "class A {} class B : A {} A a; B b; bool e = a == b;", nil},
		{"equality of unrelated", "class A {} class B {} A a; B b; bool e = a == b;", []diag.Code{diag.SemaBadOperator}},
		{"ternary common base", "class A {} class B : A {} class C : A {} B b; C c; bool f; A x = f ? b : c;", nil},
		{"ternary no common type", "class B {} B b; bool f; int n = f ? 1 : b;", []diag.Code{diag.SemaNoCommonType}},
		{"condition", "void f() { if (1) {} }", []diag.Code{diag.SemaIncompatibleTypes}},
		{"downcast", "class A {} class B : A {} A a; B b = a as B;", nil},
		{"bad cast", "class A {} bool x; A a = x as A;", []diag.Code{diag.SemaIncompatibleTypes}},
		{"call arity", "int f(int a) { return a; } int x = f();", []diag.Code{diag.SemaArgumentCount}},
		{"call argument type", "int f(int a) { return a; } int x = f(true);", []diag.Code{diag.SemaIncompatibleTypes}},
		{"call non function", "int a; int x = a();", []diag.Code{diag.SemaInvalidCall}},
		{"implicit construction", "struct P { int x; int y; } P p = P(1, 2);", nil},
		{"implicit construction arity", "struct P { int x; } P p = P();", []diag.Code{diag.SemaArgumentCount}},
		{"inherited constructor args", "class A { int a; } class B : A { bool b; } owned B p = new B(1, true);", nil},
		{"new on primitive", "int i = new int();", []diag.Code{diag.SemaInvalidNew}},
		{"new on math", "owned Math m = new Math();", []diag.Code{diag.SemaInvalidNew}},
		{"type as value", "class A {} int x = 1 + A;", []diag.Code{diag.SemaUnexpectedExpression}},
		{"value as type", "int a; a b;", []diag.Code{diag.SemaUnexpectedExpression}},
		{"modifier on primitive", "owned int x;", []diag.Code{diag.SemaInvalidTypeKind}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestStatements(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"missing return value", "int f() { return; }", []diag.Code{diag.SemaMissingReturnValue}},
		{"unexpected return value", "void f() { return 1; }", []diag.Code{diag.SemaUnexpectedReturnValue}},
		{"return outside function", "return;", []diag.Code{diag.SemaUnexpectedStatement}},
		{"break outside loop", "void f() { break; }", []diag.Code{diag.SemaUnexpectedStatement}},
		{"loop", "void f() { while (true) { if (false) { break; } else { continue; } } }", nil},
		{"function in function", "void f() { void g() {} }", []diag.Code{diag.SemaUnexpectedStatement}},
		{"return value needs move", "struct V {} V keep; V f() { return keep; }", []diag.Code{diag.SemaNeedMoveOrCopy}},
		{"return moved value", "struct V {} V keep; V f() { return move keep; }", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestGenericList(t *testing.T) {
	src := `
class Foo {}
Foo f;
owned List<Foo> l = new List<Foo>();
void fill() {
	l->push(f);
	Foo g = l->get(0);
	int n = l->count();
}
`
	expectCodes(t, checkSource(t, src))

	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"primitive parameter", "List<int> bad;", []diag.Code{diag.SemaInvalidTypeKind}},
		{"parameter count", "class A {} List<A, A> bad;", []diag.Code{diag.SemaArgumentCount}},
		{"not generic", "class A {} class B {} A<B> bad;", []diag.Code{diag.SemaInvalidTypeKind}},
		{"element mismatch", "class A {} class B {} B b; owned List<A> l = new List<A>(); void f() { l->push(b); }", []diag.Code{diag.SemaIncompatibleTypes}},
		{"list mismatch", "class A {} class B {} owned List<A> l = new List<B>();", []diag.Code{diag.SemaIncompatibleTypes}},
		{"sealed native base", "class X : Math {}", []diag.Code{diag.SemaBadBaseType}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestBaseTypeChecks(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"instance as base", "class A {} A a; class B : a {}", []diag.Code{diag.SemaBadBaseType}},
		{"primitive base", "class B : int {}", []diag.Code{diag.SemaBadBaseType}},
		{"struct from class", "class A {} struct B : A {}", []diag.Code{diag.SemaBadBaseType}},
		{"unknown base", "class B : Nope {}", []diag.Code{diag.SemaUnknownSymbol}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, checkSource(t, tc.src), tc.want...)
		})
	}
}

func TestRecursiveValueTypes(t *testing.T) {
	expectCodes(t, checkSource(t, "struct S { S s; }"), diag.SemaRecursiveValueType)
	expectCodes(t, checkSource(t, "struct A { B b; } struct B { A a; }"), diag.SemaRecursiveValueType)
	expectCodes(t, checkSource(t, "class A { A next; }"))
	expectCodes(t, checkSource(t, "struct A { int x = 0; } struct B { A a = A(); }"))
}

func TestSortedObjects(t *testing.T) {
	c := checkSource(t, "class C : B {} class B : A {} class A {} struct V { W w = W(); } struct W {}")
	expectCodes(t, c)

	var declared, sorted []string
	for _, obj := range c.res.Objects {
		declared = append(declared, obj.Name)
	}
	for _, obj := range c.res.SortedObjects {
		sorted = append(sorted, obj.Name)
	}
	if diff := cmp.Diff([]string{"C", "B", "A", "V", "W"}, declared); diff != "" {
		t.Fatalf("declaration order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "W", "V"}, sorted); diff != "" {
		t.Fatalf("sorted order (-want +got):\n%s", diff)
	}
}

func TestSymbolsTableAfterCheck(t *testing.T) {
	src := `
class Node { Node next; int value; over void f(); }
class Base { void f() {} ~Base() {} }
class Leaf : Base { over void f() {} ~Leaf() {} }
`
	c := checkSource(t, src)
	expectCodes(t, c, diag.SemaModifierOverMissingBase)
	if err := c.res.Table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	leaf := c.res.Objects[2]
	dtor := leaf.Scope.Find(parser.DestructorName)
	if dtor == nil || dtor.Overridden == nil || !dtor.IsVirtual() {
		t.Fatalf("derived destructor should override the base destructor")
	}
}
