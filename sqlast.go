// Package sqlast parses a subset of SQL SELECT statements into a
// JSON-isomorphic abstract syntax tree. See SPEC_FULL.md for the full
// grammar and canonicalization rules.
package sqlast

import (
	"github.com/freeeve/sqlast/ast"
	"github.com/freeeve/sqlast/lexer"
	"github.com/freeeve/sqlast/parser"
)

// Value is the root AST value type: nil, int64, float64, string,
// *Literal, List, or *Object.
type Value = ast.Value

// Object is an insertion-ordered, multi-key AST node.
type Object = ast.Object

// List is an ordered AST node sequence.
type List = ast.List

// Literal wraps a string (or string list) operand.
type Literal = ast.Literal

// LexError is returned for unterminated quoted forms or unrecognized
// characters; it carries the offending byte offset.
type LexError = lexer.LexError

// ParseError is returned for unexpected tokens, missing clauses, or
// unbalanced parentheses; it carries the offending byte offset and the
// expected token class.
type ParseError = parser.ParseError

// Parse parses one SQL SELECT statement and returns its canonical AST
// value, or a *LexError / *ParseError on malformed input.
func Parse(sql string) (Value, error) {
	p := parser.Get(sql)
	defer parser.Put(p)
	return p.Parse()
}

// MustParse parses sql and panics on error. Intended for tests and
// small tools, not for parsing untrusted input.
func MustParse(sql string) Value {
	v, err := Parse(sql)
	if err != nil {
		panic(err)
	}
	return v
}
