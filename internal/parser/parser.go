package parser

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// MaxDepth bounds statement and expression nesting. It also caps the
// number of operators folded into one left-associative chain, since
// `1+1+...+1` nests on the left without recursing in the parser.
const MaxDepth = 256

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
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	toks     []token.Token // без trivia, всегда заканчивается EOF
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена

	depth        int
	deepReported bool
	errAt        uint32
	hasErr       bool
}

// ParseFile builds the compilation unit for tokens. Trivia is dropped here,
// so the raw lexer output may be passed directly. The parser never fails:
// syntax errors are reported and patched over with forged tokens.
func ParseFile(tokens []token.Token, arenas *ast.Builder, opts Options) (res Result) {
	toks := token.Filter(tokens)
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var at token.Token
		if len(toks) > 0 {
			at = toks[len(toks)-1]
			at.Span.Start = at.Span.End
		}
		eof := token.Forge(token.EOF, at)
		eof.Forged = false
		toks = append(toks, eof)
	}

	p := &Parser{
		toks:     toks,
		arenas:   arenas,
		opts:     opts,
		lastSpan: toks[0].Span.ZeroAt(),
	}
	res.Bag = diag.BagOf(opts.Reporter)

	defer func() {
		if r := recover(); r != nil {
			if opts.Reporter != nil {
				opts.Reporter.Report(diag.SynInternal, diag.SevError, p.peek().Span,
					fmt.Sprintf("internal parser error: %v", r), nil)
			}
			res.File = arenas.NewFile(source.Span{})
		}
	}()

	p.file = arenas.NewFile(toks[0].Span.ZeroAt())
	p.parseMembers()
	res.File = p.file
	return res
}

// parseMembers — основной цикл верхнего уровня: пока не EOF — parseMember.
func (p *Parser) parseMembers() {
	first := p.peek().Span
	for !p.at(token.EOF) {
		start := p.pos
		p.arenas.PushMember(p.file, p.parseMember())
		p.progress(start)
	}
	p.arenas.Files.Get(p.file).Span = first.Cover(p.peek().Span)
}

func (p *Parser) parseMember() ast.MemberID {
	if p.at(token.KwFunc) {
		return p.parseFunc()
	}
	stmt := p.parseStatement()
	return p.arenas.Members.NewGlobal(p.arenas.Stmts.Get(stmt).Span, stmt)
}

// progress forces a one-token skip when a list element consumed nothing.
func (p *Parser) progress(start int) {
	if p.pos == start {
		p.advance()
	}
}

// enter tracks nesting. Past MaxDepth the construct under the cursor is
// skipped and false is returned; the caller substitutes a placeholder.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= MaxDepth {
		return true
	}
	p.tooDeep(p.peek().Span)
	p.skipNested()
	return false
}

// tooDeep reports the nesting limit once per file.
func (p *Parser) tooDeep(span source.Span) {
	if p.deepReported {
		return
	}
	p.deepReported = true
	p.report(diag.SynNestingTooDeep, span,
		fmt.Sprintf("expression nested too deeply (limit %d)", MaxDepth))
}

func (p *Parser) leave() { p.depth-- }

// skipNested consumes the current token and, if it opens a group, everything
// up to and including the matching close.
func (p *Parser) skipNested() {
	level := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LParen, token.LBrace:
			level++
		case token.RParen, token.RBrace:
			level--
		}
		if level <= 0 {
			return
		}
	}
}
