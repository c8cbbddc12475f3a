package parser

import (
	"strconv"
	"strings"

	"github.com/freeeve/sqlast/ast"
	"github.com/freeeve/sqlast/token"
)

// parseExpr parses a full expression starting at the lowest
// precedence (OR).
func (p *Parser) parseExpr() (ast.Value, error) {
	return p.parseExprPrec(1)
}

// parseExprPrec is the Pratt loop: consume a prefix, then fold in
// infix/postfix operators whose precedence is at least minPrec.
func (p *Parser) parseExprPrec(minPrec int) (ast.Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := p.infixPrecedence()
		if !ok || prec < minPrec {
			break
		}
		left, err = p.parseInfix(left, prec)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// infixPrecedence reports the binding power of the current token as
// an infix/postfix operator, low to high: OR=1, AND=2, comparisons and
// keyword operators=4, +/-=5, */ /%=6.
func (p *Parser) infixPrecedence() (int, bool) {
	switch p.cur.Kind {
	case token.OR:
		return 1, true
	case token.AND:
		return 2, true
	case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE,
		token.IS, token.LIKE, token.IN, token.BETWEEN:
		return 4, true
	case token.NOT:
		pk := p.peek()
		if pk.Kind == token.LIKE || pk.Kind == token.IN || pk.Kind == token.BETWEEN {
			return 4, true
		}
		return 0, false
	case token.PLUS, token.MINUS:
		return 5, true
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return 6, true
	}
	return 0, false
}

func (p *Parser) parseInfix(left ast.Value, prec int) (ast.Value, error) {
	switch p.cur.Kind {
	case token.OR:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.FlattenAppend("or", left, right), nil
	case token.AND:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.FlattenAppend("and", left, right), nil
	case token.PLUS:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.FlattenAppend("add", left, right), nil
	case token.MINUS:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("sub", left, right), nil
	case token.ASTERISK:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.FlattenAppend("mul", left, right), nil
	case token.SLASH:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("div", left, right), nil
	case token.PERCENT:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("mod", left, right), nil
	case token.EQ:
		p.advance()
		return p.binaryCompare("eq", left, prec)
	case token.NEQ:
		p.advance()
		return p.binaryCompare("neq", left, prec)
	case token.LT:
		p.advance()
		return p.binaryCompare("lt", left, prec)
	case token.LTE:
		p.advance()
		return p.binaryCompare("lte", left, prec)
	case token.GT:
		p.advance()
		return p.binaryCompare("gt", left, prec)
	case token.GTE:
		p.advance()
		return p.binaryCompare("gte", left, prec)
	case token.IS:
		p.advance()
		neg := false
		if p.curIs(token.NOT) {
			neg = true
			p.advance()
		}
		if err := p.expect(token.NULL, "Expected null"); err != nil {
			return nil, err
		}
		if neg {
			return ast.MakeOp("exists", left), nil
		}
		return ast.MakeOp("missing", left), nil
	case token.LIKE:
		p.advance()
		right, err := p.parseExprPrec(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("like", left, right), nil
	case token.IN:
		p.advance()
		list, err := p.parseInList()
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("in", left, list), nil
	case token.BETWEEN:
		p.advance()
		lo, hi, err := p.parseBetweenBounds()
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("between", left, lo, hi), nil
	case token.NOT:
		p.advance()
		switch p.cur.Kind {
		case token.LIKE:
			p.advance()
			right, err := p.parseExprPrec(prec + 1)
			if err != nil {
				return nil, err
			}
			return ast.MakeOp("nlike", left, right), nil
		case token.IN:
			p.advance()
			list, err := p.parseInList()
			if err != nil {
				return nil, err
			}
			return ast.MakeOp("nin", left, list), nil
		case token.BETWEEN:
			p.advance()
			lo, hi, err := p.parseBetweenBounds()
			if err != nil {
				return nil, err
			}
			return ast.MakeOp("not between", left, lo, hi), nil
		}
		return nil, p.errorf("Expected like, in or between")
	}
	return nil, p.errorf("Expected operator")
}

func (p *Parser) binaryCompare(name string, left ast.Value, prec int) (ast.Value, error) {
	right, err := p.parseExprPrec(prec + 1)
	if err != nil {
		return nil, err
	}
	return ast.MakeOp(name, left, right), nil
}

// parseInList parses `(expr, expr, ...)` for IN/NOT IN, collapsing to
// a literal string list when every element is a string literal.
func (p *Parser) parseInList() (ast.Value, error) {
	if err := p.expect(token.LPAREN, "Expected ("); err != nil {
		return nil, err
	}
	var raw []ast.Value
	for {
		v, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		raw = append(raw, v)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "Expected )"); err != nil {
		return nil, err
	}
	allStrings := len(raw) > 0
	unwrapped := make([]ast.Value, len(raw))
	for i, v := range raw {
		lit, ok := v.(*ast.Literal)
		if !ok {
			allStrings = false
			break
		}
		s, ok := lit.V.(string)
		if !ok {
			allStrings = false
			break
		}
		unwrapped[i] = s
	}
	if allStrings {
		return ast.CollapseLiteralList(unwrapped, true), nil
	}
	// Not every element is a string literal: emit a bare list, but
	// leave each element as parsed so string literals keep their
	// {"literal": ...} wrapper rather than collapsing to bare strings.
	return ast.CollapseLiteralList(raw, false), nil
}

// parseBetweenBounds parses `lo AND hi`, binding the bound expressions
// tighter than boolean AND so the inner AND is absorbed by BETWEEN
// rather than parsed as a conjunction.
func (p *Parser) parseBetweenBounds() (ast.Value, ast.Value, error) {
	lo, err := p.parseExprPrec(6)
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(token.AND, "Expected and"); err != nil {
		return nil, nil, err
	}
	hi, err := p.parseExprPrec(6)
	if err != nil {
		return nil, nil, err
	}
	return lo, hi, nil
}

func (p *Parser) parsePrefix() (ast.Value, error) {
	switch p.cur.Kind {
	case token.MINUS:
		p.advance()
		operand, err := p.parseExprPrec(7)
		if err != nil {
			return nil, err
		}
		switch v := operand.(type) {
		case int64:
			return -v, nil
		case float64:
			return -v, nil
		}
		return ast.MakeOp("neg", operand), nil
	case token.NOT:
		p.advance()
		operand, err := p.parseExprPrec(4)
		if err != nil {
			return nil, err
		}
		return ast.MakeOp("not", operand), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.cur.Kind {
	case token.INT:
		n, err := strconv.ParseInt(p.cur.Text, 10, 64)
		if err != nil {
			return nil, p.errorf("Expected integer")
		}
		p.advance()
		return n, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(p.cur.Text, 64)
		if err != nil {
			return nil, p.errorf("Expected number")
		}
		p.advance()
		return f, nil
	case token.STRING:
		v := ast.MakeLiteral(p.cur.Text)
		p.advance()
		return v, nil
	case token.NULL:
		p.advance()
		return nil, nil
	case token.ASTERISK:
		p.advance()
		return "*", nil
	case token.IDENT, token.QUOTED_IDENT:
		name := p.cur.Text
		p.advance()
		if p.curIs(token.LPAREN) {
			return p.parseFuncCall(name)
		}
		return name, nil
	case token.LPAREN:
		p.advance()
		if p.curIs(token.SELECT) {
			sub, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN, "Expected )"); err != nil {
				return nil, err
			}
			return sub, nil
		}
		inner, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, "Expected )"); err != nil {
			return nil, err
		}
		return inner, nil
	case token.CASE:
		return p.parseCaseExpr()
	}
	return nil, p.errorf("Expected {{expression1 [{[as] column_name1}]}")
}

// parseFuncCall parses the call arguments after name's opening paren
// has been observed (but not yet consumed).
func (p *Parser) parseFuncCall(name string) (ast.Value, error) {
	p.advance() // consume (
	lname := strings.ToLower(name)
	if lname == "count" && p.curIs(token.ASTERISK) {
		p.advance()
		if err := p.expect(token.RPAREN, "Expected )"); err != nil {
			return nil, err
		}
		return ast.MakeOp(lname, "*"), nil
	}
	if p.curIs(token.RPAREN) {
		p.advance()
		return ast.NewObject().Set(lname, ast.List{}), nil
	}
	var args []ast.Value
	for {
		a, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "Expected )"); err != nil {
		return nil, err
	}
	return ast.MakeOp(lname, args...), nil
}

// parseCaseExpr parses `CASE WHEN c THEN v [, ...] [ELSE e] END`. The
// operand list is always emitted as a list, never collapsed, even
// with a single WHEN/THEN and no ELSE.
func (p *Parser) parseCaseExpr() (ast.Value, error) {
	p.advance() // consume CASE
	var items ast.List
	for p.curIs(token.WHEN) {
		p.advance()
		cond, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.THEN, "Expected then"); err != nil {
			return nil, err
		}
		val, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		items = append(items, ast.NewObject().Set("when", cond).Set("then", val))
	}
	if len(items) == 0 {
		return nil, p.errorf("Expected when")
	}
	if p.curIs(token.ELSE) {
		p.advance()
		elseVal, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		items = append(items, elseVal)
	}
	if err := p.expect(token.END, "Expected end"); err != nil {
		return nil, err
	}
	return ast.NewObject().Set("case", items), nil
}
