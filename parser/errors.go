package parser

import (
	"strconv"

	"github.com/freeeve/sqlast/token"
)

// ParseError reports an unexpected token, missing clause, unbalanced
// parenthesis, or unclosed CASE, carrying the offset of the first
// offending character and a short expectation string.
type ParseError struct {
	Offset   token.Pos
	Expected string
}

func (e *ParseError) Error() string {
	return e.Expected + " (at char " + strconv.Itoa(int(e.Offset)) + ")"
}
