package parser

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/lexer"
	"bitscript/internal/source"
	"bitscript/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Stmts []ast.Stmt
	Span  source.Span
}

// Parser — состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	// classes — стек имён объемлющих классов; нужен для распознавания конструкторов
	classes []string

	// memberLevel — разбираем непосредственно тело класса
	memberLevel bool

	// speculating > 0: ошибки не репортятся, только помечается specFailed
	speculating int
	specFailed  bool
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	return ParseTokens(lx.All(), arenas, opts)
}

// ParseTokens разбирает уже полученный поток токенов; он должен заканчиваться EOF.
// Так драйвер лексит файлы параллельно, а узлы AST выделяет по порядку.
func ParseTokens(toks []token.Token, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		toks:   toks,
		arenas: arenas,
		opts:   opts,
	}
	start := p.peek().Span
	stmts := p.parseTopLevel()
	return Result{Stmts: stmts, Span: start.Cover(p.peek().Span)}
}

// JoinModule concatenates the statements of every parsed file into one module.
func JoinModule(arenas *ast.Builder, files []Result) *ast.Module {
	var stmts []ast.Stmt
	var sp source.Span
	for i, f := range files {
		stmts = append(stmts, f.Stmts...)
		if i == 0 {
			sp = f.Span
		}
	}
	body := arenas.NewBlock(sp, stmts)
	return arenas.NewModule(sp, body)
}

func (p *Parser) parseTopLevel() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.at(token.EOF) && !p.opts.Enough() {
		if p.at(token.RBrace) {
			tok := p.advance()
			p.err(diag.SynUnexpectedToken, tok.Span, "unexpected '}'")
			continue
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance съедает текущий токен; EOF никогда не съедается.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, p.peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.speculating > 0 {
		p.specFailed = true
		return
	}
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

// resyncStmt пропускает токены до ';' (включительно) или до '}' (не съедая).
func (p *Parser) resyncStmt() {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		}
		p.advance()
	}
}

func (p *Parser) currentClass() string {
	if len(p.classes) == 0 {
		return ""
	}
	return p.classes[len(p.classes)-1]
}
