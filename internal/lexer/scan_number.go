package lexer

import (
	"bitscript/internal/diag"
	"bitscript/internal/token"
)

// Поддержка: 0, 123, 0x..., 1.0, .5, 1e-3, 1.5f.
// Суффикс 'f' делает литерал float, без суффикса дробный литерал — double.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
				digits++
			}
			if digits == 0 {
				return lx.badNumber(start, "expected hex digit after '0x'")
			}
			return lx.emitNumber(start, kind)
		}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть
	if lx.cursor.Peek() == '.' {
		if _, b1, ok := lx.cursor.Peek2(); ok && isDec(b1) {
			lx.cursor.Bump()
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == 'f' {
		lx.cursor.Bump()
		kind = token.FloatLit
	}

	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid suffix on number")
	}
	return lx.emitNumber(start, kind)
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
