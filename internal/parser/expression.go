package parser

import (
	"fmt"
	"strconv"
	"strings"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/token"

	"fortio.org/safecast"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		tok := p.peek()
		prec, isRightAssoc := getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec || prec < 0 {
			break
		}
		opTok := p.advance()

		switch tok.Kind {
		case token.Question:
			left, ok = p.parseTernaryRest(left)
			if !ok {
				return nil, false
			}
			continue
		case token.KwAs:
			// правая часть — тип, бинарные операторы в нём не участвуют
			typ, ok := p.parseUnaryExpr()
			if !ok {
				p.err(diag.SynExpectType, p.peek().Span, "expected type after 'as'")
				return nil, false
			}
			left = p.arenas.NewCast(left.Span().Cover(typ.Span()), left, typ)
			continue
		}

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return nil, false
		}
		left = p.arenas.NewBinary(left.Span().Cover(right.Span()), binaryOps[opTok.Kind], opTok.Span, left, right)
	}
	return left, true
}

// parseTernaryRest разбирает "then : else" после уже съеденного '?'.
func (p *Parser) parseTernaryRest(cond ast.Expr) (ast.Expr, bool) {
	then, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return nil, false
	}
	els, ok := p.parseBinaryExpr(precTernary)
	if !ok {
		return nil, false
	}
	return p.arenas.NewTernary(cond.Span().Cover(els.Span()), cond, then, els), true
}

// parseUnaryExpr обрабатывает префиксы: операторы, move/copy и модификаторы владения
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	tok := p.peek()
	if op, ok := unaryOps[tok.Kind]; ok {
		p.advance()
		x, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}
		return p.arenas.NewUnary(tok.Span.Cover(x.Span()), op, tok.Span, x), true
	}
	if mod, ok := pointerModifiers[tok.Kind]; ok {
		p.advance()
		x, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}
		return p.arenas.NewModifier(tok.Span.Cover(x.Span()), mod, tok.Span, x), true
	}
	return p.parsePostfixExpr(true)
}

// parsePostfixExpr обрабатывает постфиксы: вызовы, доступ к членам, generic-аргументы.
// allowCall=false используется после 'new', где скобки принадлежат самому new.
func (p *Parser) parsePostfixExpr(allowCall bool) (ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			if !allowCall {
				return expr, true
			}
			p.advance()
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			expr = p.arenas.NewCall(expr.Span().Cover(p.lastSpan), expr, args)

		case token.Dot, token.Arrow:
			opTok := p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
			if !ok {
				return nil, false
			}
			expr = p.arenas.NewMember(expr.Span().Cover(name.Span), expr, opTok.Kind == token.Arrow,
				ast.Ident{Name: name.Text, Span: name.Span})

		case token.Lt:
			generic, ok := p.tryParseGeneric(expr)
			if !ok {
				return expr, true
			}
			expr = generic

		default:
			return expr, true
		}
	}
}

// parseArgs разбирает список аргументов после '(' до ')' включительно.
func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	var args []ast.Expr
	if p.eat(token.RParen) {
		return args, true
	}
	for {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if p.eat(token.Comma) {
			continue
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after arguments"); !ok {
			return nil, false
		}
		return args, true
	}
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.NewSymbol(tok.Span, tok.Text), true
	case token.KwThis:
		p.advance()
		return p.arenas.NewThis(tok.Span), true
	case token.KwNull:
		p.advance()
		return p.arenas.NewNull(tok.Span), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.NewBool(tok.Span, tok.Kind == token.KwTrue), true
	case token.IntLit:
		p.advance()
		return p.parseIntLiteral(tok)
	case token.FloatLit:
		p.advance()
		return p.parseFloatLiteral(tok)
	case token.LParen:
		p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
			return nil, false
		}
		return x, true
	case token.KwNew:
		return p.parseNewExpr()
	default:
		p.err(diag.SynExpectExpression, tok.Span, fmt.Sprintf("expected expression, found %s", describe(tok)))
		return nil, false
	}
}

func (p *Parser) parseNewExpr() (ast.Expr, bool) {
	newTok := p.advance()
	typ, ok := p.parsePostfixExpr(false)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after type in new expression"); !ok {
		return nil, false
	}
	args, ok := p.parseArgs()
	if !ok {
		return nil, false
	}
	return p.arenas.NewNew(newTok.Span.Cover(p.lastSpan), typ, args), true
}

func (p *Parser) parseIntLiteral(tok token.Token) (ast.Expr, bool) {
	v, err := strconv.ParseInt(tok.Text, 0, 64)
	if err == nil {
		if n, convErr := safecast.Conv[int32](v); convErr == nil {
			return p.arenas.NewInt(tok.Span, n), true
		}
	}
	p.err(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("integer literal %s out of range", tok.Text))
	return p.arenas.NewInt(tok.Span, 0), true
}

func (p *Parser) parseFloatLiteral(tok token.Token) (ast.Expr, bool) {
	text := tok.Text
	isFloat := strings.HasSuffix(text, "f")
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "f"), 64)
	if err != nil {
		p.err(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("invalid floating literal %s", text))
	}
	return p.arenas.NewFloat(tok.Span, v, isFloat), true
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.IntLit, token.FloatLit, token.Invalid:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return fmt.Sprintf("'%s'", tok.Kind)
	}
}
