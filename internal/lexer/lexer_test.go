package lexer_test

import (
	"testing"

	"bitscript/internal/diag"
	"bitscript/internal/lexer"
	"bitscript/internal/source"
	"bitscript/internal/token"

	"github.com/google/go-cmp/cmp"
)

// lexAll прогоняет лексер по строке и возвращает токены вместе с диагностиками
func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.bs", []byte(input)))
	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestDeclarations(t *testing.T) {
	toks, bag := lexAll(t, "owned shared Foo foo = new Foo();")
	want := []token.Kind{
		token.KwOwned, token.KwShared, token.Ident, token.Ident, token.Assign,
		token.KwNew, token.Ident, token.LParen, token.RParen, token.Semicolon, token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[2].Text != "Foo" || toks[2].Span.Start != 13 || toks[2].Span.End != 16 {
		t.Fatalf("bad ident token %+v", toks[2])
	}
}

func TestOperators(t *testing.T) {
	toks, _ := lexAll(t, "a->b . c && d || !e == f != g <= h >= i << j >> k ~l ? m : n")
	want := []token.Kind{
		token.Ident, token.Arrow, token.Ident, token.Dot, token.Ident, token.AndAnd, token.Ident,
		token.OrOr, token.Bang, token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident,
		token.LtEq, token.Ident, token.GtEq, token.Ident, token.Shl, token.Ident, token.Shr,
		token.Ident, token.Tilde, token.Ident, token.Question, token.Ident, token.Colon, token.Ident,
		token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1234", token.IntLit},
		{"0xFF", token.IntLit},
		{"1.5", token.FloatLit},
		{"1.5f", token.FloatLit},
		{".25", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2f", token.FloatLit},
	}
	for _, tt := range tests {
		toks, bag := lexAll(t, tt.in)
		if toks[0].Kind != tt.kind || toks[0].Text != tt.in {
			t.Errorf("%q: got %v %q", tt.in, toks[0].Kind, toks[0].Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", tt.in)
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, in := range []string{"0x", "1e+", "12abc"} {
		toks, bag := lexAll(t, in)
		if toks[0].Kind != token.Invalid {
			t.Errorf("%q: expected invalid token, got %v", in, toks[0].Kind)
		}
		if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber", in)
		}
	}
}

func TestTriviaAttachedToNextToken(t *testing.T) {
	toks, bag := lexAll(t, "// header\n/* block */ class")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
	if toks[0].Kind != token.KwClass {
		t.Fatalf("expected class, got %v", toks[0].Kind)
	}
	var got []token.TriviaKind
	for _, tr := range toks[0].Leading {
		got = append(got, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trivia mismatch (-want +got):\n%s", diff)
	}
}

func TestUnterminatedComment(t *testing.T) {
	toks, bag := lexAll(t, "a /* never closed")
	if diff := cmp.Diff([]token.Kind{token.Ident, token.EOF}, kinds(toks)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("expected one LexUnterminatedComment, got %v", bag.Items())
	}
}

func TestUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "a $ b")
	if toks[1].Kind != token.Invalid || toks[1].Text != "$" {
		t.Fatalf("expected invalid '$', got %+v", toks[1])
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar")
	}
	if toks[2].Kind != token.Ident {
		t.Fatalf("lexing must continue after an unknown character")
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks, _ := lexAll(t, "int размер;")
	if toks[1].Kind != token.Ident || toks[1].Text != "размер" {
		t.Fatalf("expected unicode ident, got %+v", toks[1])
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("peek.bs", []byte("x y")))
	lx := lexer.New(file, lexer.Options{})
	if p := lx.Peek(); p.Text != "x" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "x" {
		t.Fatalf("next after peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "y" {
		t.Fatalf("second next = %q", n.Text)
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatalf("EOF must be sticky")
		}
	}
}
