// Package parser implements the SQL SELECT expression and statement
// grammar, producing ast.Value trees directly (no intermediate typed
// tree) via the precedence-climbing and recursive-descent functions in
// expression.go and select.go.
package parser

import (
	"sync"

	"github.com/freeeve/sqlast/ast"
	"github.com/freeeve/sqlast/lexer"
	"github.com/freeeve/sqlast/token"
)

// Parser consumes a lexer.Lexer and builds ast.Value trees.
type Parser struct {
	lx    *lexer.Lexer
	owned bool
	cur   token.Item
	depth int
}

var parserPool = sync.Pool{New: func() any { return &Parser{} }}

// Get returns a pooled Parser reset over input, with its own pooled
// Lexer.
func Get(input string) *Parser {
	p := parserPool.Get().(*Parser)
	p.lx = lexer.Get(input)
	p.owned = true
	p.depth = 0
	p.cur = p.lx.Next()
	return p
}

// Put returns p (and its owned lexer, if any) to their pools. p must
// not be used afterward.
func Put(p *Parser) {
	if p.owned && p.lx != nil {
		lexer.Put(p.lx)
	}
	p.lx = nil
	parserPool.Put(p)
}

// New allocates a fresh, unpooled Parser over input.
func New(input string) *Parser {
	lx := lexer.New(input)
	return &Parser{lx: lx, cur: lx.Next()}
}

// maxDepth bounds expression/clause nesting so pathological input
// fails with a parse error instead of exhausting the Go call stack.
const maxDepth = 200

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return &ParseError{Offset: p.cur.Start, Expected: "stack depth exceeded"}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// Parse parses exactly one SELECT statement, allowing an optional
// trailing semicolon, and returns the canonical AST value.
func (p *Parser) Parse() (ast.Value, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
	if !p.curIs(token.EOF) {
		return nil, p.errorf("Expected end of statement")
	}
	if lerr := p.lx.Err(); lerr != nil {
		return nil, lerr
	}
	return stmt, nil
}

func (p *Parser) advance() {
	p.cur = p.lx.Next()
}

func (p *Parser) curIs(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) peek() token.Item { return p.lx.Peek() }

// expect consumes the current token if it matches k, else fails with
// a parse error naming what was expected.
func (p *Parser) expect(k token.Kind, expected string) error {
	if !p.curIs(k) {
		return p.errorf(expected)
	}
	p.advance()
	return nil
}

// errorf builds a ParseError naming what was expected at the current
// token, unless the current token is ILLEGAL, in which case the
// underlying LexError is the more useful diagnosis and takes priority.
func (p *Parser) errorf(expected string) error {
	if p.cur.Kind == token.ILLEGAL {
		if lerr := p.lx.Err(); lerr != nil {
			return lerr
		}
	}
	return &ParseError{Offset: p.cur.Start, Expected: expected}
}

// isClauseKeyword reports whether the current token starts a SELECT
// clause (used to decide whether a bare identifier after an
// expression is an implicit alias or the next clause).
func (p *Parser) isClauseKeyword() bool {
	switch p.cur.Kind {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING, token.ORDER,
		token.LIMIT, token.OFFSET, token.UNION, token.INTERSECT, token.EXCEPT,
		token.COMMA, token.RPAREN, token.EOF, token.SEMICOLON,
		token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL,
		token.CROSS, token.NATURAL, token.ON, token.USING:
		return true
	}
	return false
}
