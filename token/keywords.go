package token

// keywords maps the lower-cased keyword spelling to its Kind. Lookup
// happens after scanning a full identifier run, same two-step
// scan-then-classify structure the lexer uses for everything else.
var keywords = map[string]Kind{
	"select": SELECT, "from": FROM, "where": WHERE,
	"and": AND, "or": OR, "not": NOT,
	"in": IN, "like": LIKE, "between": BETWEEN,
	"is": IS, "null": NULL, "as": AS,
	"distinct": DISTINCT, "all": ALL,
	"join": JOIN, "inner": INNER, "left": LEFT, "right": RIGHT,
	"full": FULL, "outer": OUTER, "cross": CROSS, "natural": NATURAL,
	"on": ON, "using": USING,
	"order": ORDER, "by": BY, "asc": ASC, "desc": DESC,
	"group": GROUP, "having": HAVING,
	"limit": LIMIT, "offset": OFFSET,
	"union": UNION, "intersect": INTERSECT, "except": EXCEPT,
	"case": CASE, "when": WHEN, "then": THEN, "else": ELSE, "end": END,
}

// LookupIdent classifies a lower-cased identifier run as a keyword
// Kind, or IDENT if it isn't one.
func LookupIdent(lowered string) Kind {
	if k, ok := keywords[lowered]; ok {
		return k
	}
	return IDENT
}
