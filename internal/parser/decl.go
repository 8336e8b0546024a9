package parser

import (
	"fmt"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/source"
	"bitscript/internal/token"
)

// Reserved member names of special functions. They cannot clash with user
// identifiers and are never inherited.
const (
	ConstructorName     = "@constructor"
	CopyConstructorName = "@copy"
	DestructorName      = "@destructor"
	MoveDestructorName  = "@move"
)

type symbolMods struct {
	bits ast.SymbolMods
	list []ast.Modifier
}

var symbolModBits = map[token.Kind]ast.SymbolMods{
	token.KwOver:   ast.ModOver,
	token.KwFinal:  ast.ModFinal,
	token.KwStatic: ast.ModStatic,
}

func (p *Parser) parseSymbolMods() symbolMods {
	var mods symbolMods
	for {
		bit, ok := symbolModBits[p.peek().Kind]
		if !ok {
			return mods
		}
		tok := p.advance()
		if mods.bits.Has(bit) {
			p.err(diag.SynModifierNotAllowed, tok.Span, fmt.Sprintf("duplicate modifier '%s'", tok.Text))
			continue
		}
		mods.bits |= bit
		mods.list = append(mods.list, ast.Modifier{Bit: bit, Span: tok.Span})
	}
}

func (p *Parser) parseObjectDecl(mods symbolMods, start source.Span) (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name")
	if !ok {
		return nil, false
	}
	var base ast.Expr
	if p.eat(token.Colon) {
		base, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}

	p.classes = append(p.classes, name.Text)
	body, ok := p.parseBlockWith(true)
	p.classes = p.classes[:len(p.classes)-1]
	if !ok {
		return nil, false
	}
	p.eat(token.Semicolon)

	hdr := ast.DeclHeader{Name: ast.Ident{Name: name.Text, Span: name.Span}, Mods: mods.bits, ModList: mods.list}
	return p.arenas.NewObject(start.Cover(p.lastSpan), hdr, kw.Kind == token.KwStruct, base, body), true
}

func (p *Parser) parseConstructor(mods symbolMods, start source.Span) (ast.Stmt, bool) {
	name := p.advance()
	hdr := ast.DeclHeader{Name: ast.Ident{Name: ConstructorName, Span: name.Span}, Mods: mods.bits, ModList: mods.list}
	stmt, ok := p.parseFunctionRest(hdr, ast.FuncConstructor, nil, start)
	if !ok {
		return nil, false
	}
	fn := stmt.(*ast.FunctionDecl)
	if p.isCopyConstructor(fn) {
		fn.Kind = ast.FuncCopyConstructor
		fn.Name.Name = CopyConstructorName
	}
	return fn, true
}

// isCopyConstructor: ровно один аргумент типа "ref <ThisClass>".
func (p *Parser) isCopyConstructor(fn *ast.FunctionDecl) bool {
	if len(fn.Args) != 1 {
		return false
	}
	mod, ok := fn.Args[0].Type.(*ast.ModifierExpr)
	if !ok || mod.Modifier != ast.PtrRef {
		return false
	}
	sym, ok := mod.X.(*ast.SymbolExpr)
	return ok && sym.Name == p.currentClass()
}

func (p *Parser) parseDestructor(mods symbolMods, start source.Span) (ast.Stmt, bool) {
	kind := ast.FuncDestructor
	reserved := DestructorName
	if p.eat(token.KwMove) {
		kind = ast.FuncMoveDestructor
		reserved = MoveDestructorName
	}
	p.advance() // '~'
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name after '~'")
	if !ok {
		return nil, false
	}
	if name.Text != p.currentClass() {
		p.err(diag.SynUnexpectedToken, name.Span, fmt.Sprintf("destructor name %q does not match the enclosing class", name.Text))
	}
	hdr := ast.DeclHeader{Name: ast.Ident{Name: reserved, Span: name.Span}, Mods: mods.bits, ModList: mods.list}
	return p.parseFunctionRest(hdr, kind, nil, start)
}

// parseFunctionRest разбирает '(' args ')' и тело либо ';'.
func (p *Parser) parseFunctionRest(hdr ast.DeclHeader, kind ast.FuncKind, result ast.Expr, start source.Span) (ast.Stmt, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters"); !ok {
		return nil, false
	}
	var args []*ast.VariableDecl
	if !p.eat(token.RParen) {
		for {
			arg, ok := p.parseArgDecl()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if p.eat(token.Comma) {
				continue
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters"); !ok {
				return nil, false
			}
			break
		}
	}

	var body *ast.Block
	if !p.eat(token.Semicolon) {
		b, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		body = b
	}
	return p.arenas.NewFunction(start.Cover(p.lastSpan), hdr, kind, result, args, body), true
}

func (p *Parser) parseArgDecl() (*ast.VariableDecl, bool) {
	start := p.peek().Span
	mods := p.parseSymbolMods()
	typ, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
	if !ok {
		return nil, false
	}
	hdr := ast.DeclHeader{Name: ast.Ident{Name: name.Text, Span: name.Span}, Mods: mods.bits, ModList: mods.list}
	return p.arenas.NewVariable(start.Cover(name.Span), hdr, typ, nil), true
}

func (p *Parser) parseVariableRest(hdr ast.DeclHeader, typ ast.Expr, start source.Span) (ast.Stmt, bool) {
	var value ast.Expr
	if p.eat(token.Assign) {
		v, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		value = v
	}
	if _, ok := p.expectSemicolon(); !ok {
		return nil, false
	}
	return p.arenas.NewVariable(start.Cover(p.lastSpan), hdr, typ, value), true
}
