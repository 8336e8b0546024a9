package token

import (
	"bitscript/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwClass && t.Kind <= KwAs
}

// IsSymbolModifier reports whether the token is one of over/final/static.
func (t Token) IsSymbolModifier() bool {
	switch t.Kind {
	case KwOver, KwFinal, KwStatic:
		return true
	default:
		return false
	}
}

// IsPointerModifier reports whether the token is one of owned/shared/ref.
func (t Token) IsPointerModifier() bool {
	switch t.Kind {
	case KwOwned, KwShared, KwRef:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
