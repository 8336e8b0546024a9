package token_test

import (
	"testing"

	"bitscript/internal/source"
	"bitscript/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		kind    token.Kind
		literal bool
		keyword bool
		op      bool
	}{
		{token.IntLit, true, false, false},
		{token.KwNull, true, true, false},
		{token.KwClass, false, true, false},
		{token.KwAs, false, true, false},
		{token.Arrow, false, false, true},
		{token.RBracket, false, false, true},
		{token.Ident, false, false, false},
	}
	for _, tt := range tests {
		tk := tok(tt.kind)
		if tk.IsLiteral() != tt.literal || tk.IsKeyword() != tt.keyword || tk.IsPunctOrOp() != tt.op {
			t.Errorf("%v: literal=%v keyword=%v op=%v", tt.kind, tk.IsLiteral(), tk.IsKeyword(), tk.IsPunctOrOp())
		}
	}
}

func TestModifierTokens(t *testing.T) {
	for _, k := range []token.Kind{token.KwOver, token.KwFinal, token.KwStatic} {
		if !tok(k).IsSymbolModifier() || tok(k).IsPointerModifier() {
			t.Errorf("%v must be a symbol modifier only", k)
		}
	}
	for _, k := range []token.Kind{token.KwOwned, token.KwShared, token.KwRef} {
		if !tok(k).IsPointerModifier() || tok(k).IsSymbolModifier() {
			t.Errorf("%v must be a pointer modifier only", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	for text, want := range map[string]token.Kind{"class": token.KwClass, "owned": token.KwOwned, "as": token.KwAs} {
		got, ok := token.LookupKeyword(text)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v, %v", text, got, ok)
		}
	}
	for _, text := range []string{"Class", "int", "List"} {
		if _, ok := token.LookupKeyword(text); ok {
			t.Errorf("%q must not be a keyword", text)
		}
	}
	if token.KwMove.String() != "move" || token.Arrow.String() != "->" {
		t.Errorf("unexpected kind names")
	}
}
