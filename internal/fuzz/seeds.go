package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// languageSeeds covers every statement and declaration form plus a few
// known-bad inputs for error recovery.
var languageSeeds = []string{
	"",
	"int x = 1;",
	"struct P { int x; double y; } P p = P(1, 2.0);",
	"class A { int v; void f() {} } class B : A { over void f() {} } owned A a = new B();",
	"class Shape { void draw(); } owned Shape s = new Shape();",
	"class N { N next; owned N child; } owned N root = new N(null, null);",
	"struct A { B b; } struct B { A a; }",
	"class A : B {} class B : A {}",
	"int f(int a, int b) { if (a < b) { return a; } return b; } int m = f(1, 2);",
	"List<int> xs; int n = xs.count();",
	"double r = Math.sqrt(2.0) + Math.PI;",
	"int g() { while (true) { break; } return 0; }",
	"struct V {} V a; V b = move a; ref V r = b;",
	"class C { static int k = 0; int get() { return this.k; } }",
	"int x = ;",
	"class { }",
	"struct S { int a int b; }",
	"/* unterminated",
	"int y = 0x;",
	"f(((((;",
}

func addSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
