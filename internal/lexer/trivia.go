package lexer

import (
	"bitscript/internal/diag"
	"bitscript/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыта — репорт и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}
		break
	}
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.holdTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.holdTrivia(token.TriviaBlockComment, start)
		return true

	default:
		// это не комментарий — вернёмся, пусть сканируется как оператор '/'
		lx.cursor.Reset(start)
		return false
	}
}
