package parser

import (
	"github.com/freeeve/sqlast/ast"
	"github.com/freeeve/sqlast/token"
)

var setOpNames = map[token.Kind]struct {
	all  string
	plain string
}{
	token.UNION:     {all: "union_all", plain: "union"},
	token.INTERSECT: {all: "intersect", plain: "intersect"},
	token.EXCEPT:    {all: "except", plain: "except"},
}

func (p *Parser) curIsSetOp() bool {
	_, ok := setOpNames[p.cur.Kind]
	return ok
}

// consumeSetOp consumes a UNION [ALL] / INTERSECT / EXCEPT keyword
// and returns its canonical operator name.
func (p *Parser) consumeSetOp() (string, error) {
	names, ok := setOpNames[p.cur.Kind]
	if !ok {
		return "", p.errorf("Expected union, intersect or except")
	}
	p.advance()
	if names.plain == "union" && p.curIs(token.ALL) {
		p.advance()
		return names.all, nil
	}
	return names.plain, nil
}

func isSetOpName(key string) bool {
	switch key {
	case "union", "union_all", "intersect", "except":
		return true
	}
	return false
}

// parseStatement parses a full SELECT statement: one or more simple
// selects combined by set operations, plus a trailing ORDER BY/LIMIT/
// OFFSET that binds to the whole statement rather than its last branch.
func (p *Parser) parseStatement() (ast.Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	first, err := p.parseSimpleSelect()
	if err != nil {
		return nil, err
	}
	var result ast.Value = first
	for p.curIsSetOp() {
		name, err := p.consumeSetOp()
		if err != nil {
			return nil, err
		}
		next, err := p.parseSimpleSelect()
		if err != nil {
			return nil, err
		}
		if obj, ok := result.(*ast.Object); ok && obj.Len() == 1 && obj.Keys()[0] == name {
			if lst, ok := obj.Get(name); ok {
				if l, ok := lst.(ast.List); ok {
					obj.Set(name, append(l, next))
					continue
				}
			}
		}
		result = ast.NewObject().Set(name, ast.List{result, next})
	}

	var top *ast.Object
	if obj, ok := result.(*ast.Object); ok && obj.Len() == 1 && isSetOpName(obj.Keys()[0]) {
		top = ast.NewObject().Set("from", obj)
	} else {
		top = result.(*ast.Object)
	}
	if err := p.parseTrailingClauses(top); err != nil {
		return nil, err
	}
	return top, nil
}

// parseSimpleSelect parses SELECT...FROM...WHERE...GROUP BY...HAVING,
// without the trailing ORDER BY/LIMIT/OFFSET (those are parsed once at
// the outer statement level so they can bind to a set-op wrapper
// instead of the last branch).
func (p *Parser) parseSimpleSelect() (ast.Value, error) {
	if err := p.expect(token.SELECT, "Expected select"); err != nil {
		return nil, err
	}
	top := ast.NewObject()
	if p.curIs(token.DISTINCT) || p.curIs(token.ALL) {
		p.advance()
	}
	proj, err := p.parseProjection()
	if err != nil {
		return nil, err
	}
	top.Set("select", proj)

	if p.curIs(token.FROM) {
		p.advance()
		sources, err := p.parseSources()
		if err != nil {
			return nil, err
		}
		top.Set("from", sources)
	}
	if p.curIs(token.WHERE) {
		p.advance()
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		top.Set("where", where)
	}
	if p.curIs(token.GROUP) {
		p.advance()
		if err := p.expect(token.BY, "Expected by"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderableList()
		if err != nil {
			return nil, err
		}
		top.Set("groupby", ast.CollapseList(items))
	}
	if p.curIs(token.HAVING) {
		p.advance()
		having, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		top.Set("having", having)
	}
	return top, nil
}

// parseTrailingClauses parses ORDER BY / LIMIT / OFFSET and sets them
// on top.
func (p *Parser) parseTrailingClauses(top *ast.Object) error {
	if p.curIs(token.ORDER) {
		p.advance()
		if err := p.expect(token.BY, "Expected by"); err != nil {
			return err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return err
		}
		top.Set("orderby", ast.CollapseList(items))
	}
	if p.curIs(token.LIMIT) {
		p.advance()
		n, err := p.parseExpr()
		if err != nil {
			return err
		}
		top.Set("limit", n)
	}
	if p.curIs(token.OFFSET) {
		p.advance()
		n, err := p.parseExpr()
		if err != nil {
			return err
		}
		top.Set("offset", n)
	}
	return nil
}

// parseProjection parses `*` or a comma-separated list of aliased
// expressions.
func (p *Parser) parseProjection() (ast.Value, error) {
	if p.curIs(token.ASTERISK) {
		p.advance()
		return "*", nil
	}
	var items []ast.Value
	for {
		item, err := p.parseProjItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return ast.CollapseList(items), nil
}

func (p *Parser) parseProjItem() (ast.Value, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	alias, err := p.parseOptionalAlias()
	if err != nil {
		return nil, err
	}
	return ast.WrapAlias(expr, alias), nil
}

// parseOptionalAlias consumes `[AS] name` if present. An implicit
// alias (no AS) is only recognized when the current token is a plain
// identifier and not the start of the next clause.
func (p *Parser) parseOptionalAlias() (string, error) {
	if p.curIs(token.AS) {
		p.advance()
		return p.parseAliasName()
	}
	if (p.curIs(token.IDENT) || p.curIs(token.QUOTED_IDENT)) && !p.isClauseKeyword() {
		return p.parseAliasName()
	}
	return "", nil
}

func (p *Parser) parseAliasName() (string, error) {
	if !p.curIs(token.IDENT) && !p.curIs(token.QUOTED_IDENT) {
		return "", p.errorf("Expected column_name")
	}
	name := p.cur.Text
	p.advance()
	return name, nil
}

// parseSources parses the FROM clause: comma-joined and/or JOIN-
// joined table sources.
func (p *Parser) parseSources() (ast.Value, error) {
	var items []ast.Value
	first, err := p.parseSourcePrimary()
	if err != nil {
		return nil, err
	}
	items = append(items, first)
	for {
		if p.curIs(token.COMMA) {
			p.advance()
			src, err := p.parseSourcePrimary()
			if err != nil {
				return nil, err
			}
			items = append(items, src)
			continue
		}
		if p.curIsJoinStart() {
			join, err := p.parseJoin()
			if err != nil {
				return nil, err
			}
			items = append(items, join)
			continue
		}
		break
	}
	return ast.CollapseList(items), nil
}

func (p *Parser) curIsJoinStart() bool {
	switch p.cur.Kind {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS, token.NATURAL:
		return true
	}
	return false
}

// parseSourcePrimary parses one table reference: a bare/quoted name or
// a parenthesized subquery, with an optional alias.
func (p *Parser) parseSourcePrimary() (ast.Value, error) {
	var src ast.Value
	if p.curIs(token.LPAREN) {
		p.advance()
		sub, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, "Expected )"); err != nil {
			return nil, err
		}
		src = sub
	} else if p.curIs(token.IDENT) || p.curIs(token.QUOTED_IDENT) {
		src = p.cur.Text
		p.advance()
	} else {
		return nil, p.errorf("Expected table_name")
	}
	alias, err := p.parseOptionalAlias()
	if err != nil {
		return nil, err
	}
	if alias == "" {
		return src, nil
	}
	return ast.NewObject().Set("name", alias).Set("value", src), nil
}

// parseJoin parses one `[kind] JOIN source (ON expr | USING (cols))`
// clause, returning `{"<kind> join": source, "on": expr}` or
// `{"join": source, "using": ident-or-list}`.
func (p *Parser) parseJoin() (ast.Value, error) {
	kind := ""
	natural := p.curIs(token.NATURAL)
	if natural {
		p.advance()
	}
	switch p.cur.Kind {
	case token.INNER:
		p.advance()
		kind = ""
	case token.LEFT:
		p.advance()
		kind = "left"
		if p.curIs(token.OUTER) {
			p.advance()
			kind = "left outer"
		}
	case token.RIGHT:
		p.advance()
		kind = "right"
		if p.curIs(token.OUTER) {
			p.advance()
			kind = "right outer"
		}
	case token.FULL:
		p.advance()
		kind = "full"
		if p.curIs(token.OUTER) {
			p.advance()
			kind = "full outer"
		}
	case token.CROSS:
		p.advance()
		kind = "cross"
	}
	if natural {
		kind = "natural " + kind
		kind = trimSpace(kind)
	}
	if err := p.expect(token.JOIN, "Expected join"); err != nil {
		return nil, err
	}
	joinKey := "join"
	if kind != "" {
		joinKey = kind + " join"
	}
	src, err := p.parseSourcePrimary()
	if err != nil {
		return nil, err
	}
	obj := ast.NewObject().Set(joinKey, src)
	if p.curIs(token.ON) {
		p.advance()
		on, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		obj.Set("on", on)
	} else if p.curIs(token.USING) {
		p.advance()
		if err := p.expect(token.LPAREN, "Expected ("); err != nil {
			return nil, err
		}
		var cols []ast.Value
		for {
			if !p.curIs(token.IDENT) && !p.curIs(token.QUOTED_IDENT) {
				return nil, p.errorf("Expected column_name")
			}
			cols = append(cols, p.cur.Text)
			p.advance()
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if err := p.expect(token.RPAREN, "Expected )"); err != nil {
			return nil, err
		}
		obj.Set("using", ast.CollapseList(cols))
	}
	return obj, nil
}

func trimSpace(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

// parseOrderableList parses a comma-separated expression list (used
// for GROUP BY) without ASC/DESC.
func (p *Parser) parseOrderableList() ([]ast.Value, error) {
	var items []ast.Value
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.WrapAlias(e, ""))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}

// parseOrderByList parses `expr [ASC|DESC] (, ...)*` into `{value,
// sort?}` objects.
func (p *Parser) parseOrderByList() ([]ast.Value, error) {
	var items []ast.Value
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		o := ast.NewObject().Set("value", e)
		if p.curIs(token.ASC) {
			p.advance()
			o.Set("sort", "asc")
		} else if p.curIs(token.DESC) {
			p.advance()
			o.Set("sort", "desc")
		}
		items = append(items, o)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}
