package lexer

import (
	"fmt"

	"bitscript/internal/diag"
	"bitscript/internal/token"
)

var singleByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	}

	if k, ok := singleByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	// неизвестный символ: съедаем руну целиком
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", lx.text(sp)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
