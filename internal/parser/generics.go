package parser

import (
	"bitscript/internal/ast"
	"bitscript/internal/token"
)

// tryParseGeneric пытается разобрать "X<T, ...>" начиная с '<'.
// Разбор спекулятивный: если после закрывающей '>' не идёт токен, допустимый
// после типа, или по дороге была ошибка, позиция откатывается и '<' остаётся
// оператором сравнения.
func (p *Parser) tryParseGeneric(x ast.Expr) (ast.Expr, bool) {
	switch x.(type) {
	case *ast.SymbolExpr, *ast.MemberExpr:
	default:
		return nil, false
	}

	savedPos, savedToks, savedLast := p.pos, p.toks, p.lastSpan
	savedFailed := p.specFailed
	p.speculating++
	p.specFailed = false
	params, ok := p.parseTypeArgs()
	failed := p.specFailed || !ok || !p.genericFollows()
	p.speculating--
	p.specFailed = savedFailed

	if failed {
		p.pos, p.toks, p.lastSpan = savedPos, savedToks, savedLast
		return nil, false
	}
	return p.arenas.NewGeneric(x.Span().Cover(p.lastSpan), x, params), true
}

func (p *Parser) parseTypeArgs() ([]ast.Expr, bool) {
	p.advance() // '<'
	var params []ast.Expr
	for {
		param, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if p.eat(token.Comma) {
			continue
		}
		return params, p.closeAngle()
	}
}

// closeAngle съедает '>' и умеет расщеплять '>>' для вложенных List<List<int>>.
func (p *Parser) closeAngle() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Gt:
		p.advance()
		return true
	case token.Shr:
		first, second := tok, tok
		first.Kind, second.Kind = token.Gt, token.Gt
		first.Span.End = tok.Span.Start + 1
		second.Span.Start = tok.Span.Start + 1
		first.Text, second.Text = ">", ">"
		second.Leading = nil

		// копия, чтобы откат спекуляции вернул исходный поток
		toks := make([]token.Token, 0, len(p.toks)+1)
		toks = append(toks, p.toks[:p.pos]...)
		toks = append(toks, first, second)
		toks = append(toks, p.toks[p.pos+1:]...)
		p.toks = toks
		p.advance()
		return true
	default:
		return false
	}
}

// genericFollows проверяет, что после '>' стоит токен, допустимый после типа.
// '>' допустим только внутри объемлющего списка аргументов.
func (p *Parser) genericFollows() bool {
	switch p.peek().Kind {
	case token.Ident, token.LParen, token.RParen, token.Comma, token.Semicolon,
		token.Dot, token.Arrow, token.LBrace, token.Assign, token.Colon, token.EOF:
		return true
	case token.Gt, token.Shr:
		return p.speculating > 1
	default:
		return false
	}
}
