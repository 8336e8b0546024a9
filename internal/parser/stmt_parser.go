package parser

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/token"
)

// parseStmt выбирает распознаватель по первому токену.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak, token.KwContinue:
		tok := p.advance()
		if _, ok := p.expectSemicolon(); !ok {
			return nil, false
		}
		sp := tok.Span.Cover(p.lastSpan)
		if tok.Kind == token.KwBreak {
			return p.arenas.NewBreak(sp), true
		}
		return p.arenas.NewContinue(sp), true
	case token.Semicolon:
		tok := p.advance()
		return p.arenas.NewBlock(tok.Span, nil), true
	default:
		return p.parseDeclOrExprStmt()
	}
}

func (p *Parser) expectSemicolon() (token.Token, bool) {
	if p.at(token.Semicolon) {
		return p.advance(), true
	}
	// якорим в конце предыдущего токена, так ошибка видна там, где ';' пропущена
	sp := p.lastSpan
	sp.Start = sp.End
	p.err(diag.SynExpectSemicolon, sp, "expected ';'")
	return token.Token{}, false
}

// parseBlock разбирает '{' stmt* '}'.
func (p *Parser) parseBlock() (*ast.Block, bool) {
	return p.parseBlockWith(false)
}

// parseBlockWith: members=true для тела класса, где допустимы конструкторы и деструкторы.
func (p *Parser) parseBlockWith(members bool) (*ast.Block, bool) {
	saved := p.memberLevel
	p.memberLevel = members
	defer func() { p.memberLevel = saved }()

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, false
	}
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'"); !ok {
		return nil, false
	}
	return p.arenas.NewBlock(open.Span.Cover(p.lastSpan), stmts), true
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	ifTok := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	var els ast.Stmt
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			els, ok = p.parseIf()
		} else {
			els, ok = p.parseBlock()
		}
		if !ok {
			return nil, false
		}
	}
	return p.arenas.NewIf(ifTok.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	whileTok := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return p.arenas.NewWhile(whileTok.Span.Cover(p.lastSpan), cond, body), true
}

func (p *Parser) parseCondition() (ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before condition"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after condition"); !ok {
		return nil, false
	}
	return cond, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	retTok := p.advance()
	var value ast.Expr
	if !p.at(token.Semicolon) {
		v, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		value = v
	}
	if _, ok := p.expectSemicolon(); !ok {
		return nil, false
	}
	return p.arenas.NewReturn(retTok.Span.Cover(p.lastSpan), value), true
}

// parseDeclOrExprStmt: модификаторы, затем объявление класса, деструктора,
// конструктора, либо выражение. Выражение, за которым идёт идентификатор, —
// это тип объявления переменной или функции.
func (p *Parser) parseDeclOrExprStmt() (ast.Stmt, bool) {
	start := p.peek().Span
	mods := p.parseSymbolMods()

	switch {
	case p.at(token.KwClass) || p.at(token.KwStruct):
		return p.parseObjectDecl(mods, start)
	case p.memberLevel && (p.at(token.Tilde) || (p.at(token.KwMove) && p.peekN(1).Kind == token.Tilde)):
		return p.parseDestructor(mods, start)
	case p.memberLevel && p.at(token.Ident) && p.peek().Text == p.currentClass() && p.peekN(1).Kind == token.LParen:
		return p.parseConstructor(mods, start)
	}

	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	if p.at(token.Ident) {
		name := p.advance()
		hdr := ast.DeclHeader{Name: ast.Ident{Name: name.Text, Span: name.Span}, Mods: mods.bits, ModList: mods.list}
		if p.at(token.LParen) {
			return p.parseFunctionRest(hdr, ast.FuncNormal, x, start)
		}
		return p.parseVariableRest(hdr, x, start)
	}

	if len(mods.list) > 0 {
		p.err(diag.SynModifierNotAllowed, mods.list[0].Span, "modifiers are only allowed on declarations")
	}
	if _, ok := p.expectSemicolon(); !ok {
		return nil, false
	}
	return p.arenas.NewExprStmt(x.Span(), x), true
}
