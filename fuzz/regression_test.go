package fuzz

import (
	"testing"

	"github.com/freeeve/sqlast"
)

// TestFuzzRegressions pins down edge cases that previously panicked or
// hung the parser. Each case documents what broke; when fuzzing finds a
// new crash, add a case here rather than only fixing it silently.
func TestFuzzRegressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		note  string
	}{
		{
			name:  "function call with keyword argument start left open",
			input: "SELECT A(*IN",
			note:  "must not panic on an incomplete function call",
		},
		{
			name:  "function call left open before IS",
			input: "SELECT A(*IS",
			note:  "must not panic on an incomplete function call",
		},
		{
			name:  "function call left open before BETWEEN",
			input: "SELECT A(*BETWEEN",
			note:  "must not panic on an incomplete function call",
		},
		{
			name:  "function call left open before LIKE",
			input: "SELECT A(*LIKE",
			note:  "must not panic on an incomplete function call",
		},
		{
			name:  "double unary minus",
			input: "SELECT - -0 FROM t",
			note:  "nested prefix operators must not recurse incorrectly",
		},
		{
			name:  "unterminated quoted identifier",
			input: "SELECT \"abc FROM t",
			note:  "lexer must report a LexError, not run off the end of input",
		},
		{
			name:  "unterminated backtick identifier",
			input: "SELECT `abc FROM t",
			note:  "lexer must report a LexError, not run off the end of input",
		},
		{
			name:  "unterminated string literal",
			input: "SELECT 'abc FROM t",
			note:  "lexer must report a LexError",
		},
		{
			name:  "trailing dot after identifier",
			input: "SELECT a. FROM t",
			note:  "dotted identifier continuation must fail cleanly, not panic",
		},
		{
			name:  "deeply nested parens",
			input: "SELECT " + nestedParens(500) + "a" + closeParens(500),
			note:  "recursion guard must trip before the Go call stack does",
		},
		{
			name:  "between without AND",
			input: "SELECT a FROM t WHERE a BETWEEN 1",
			note:  "missing AND bound must error, not index past the token stream",
		},
		{
			name:  "empty input",
			input: "",
			note:  "empty statement must error, not panic on an empty token stream",
		},
		{
			name:  "case with no when clauses",
			input: "SELECT CASE END FROM t",
			note:  "a CASE with zero WHEN arms must error",
		},
		{
			name:  "union with nothing after it",
			input: "SELECT a FROM t UNION",
			note:  "dangling set operator must error cleanly",
		},
		{
			name:  "in list with trailing comma",
			input: "SELECT a FROM t WHERE a IN (1, 2,)",
			note:  "trailing comma in an IN list must error, not panic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("%s: Parse panicked: %v (%s)", tt.input, r, tt.note)
				}
			}()
			_, _ = sqlast.Parse(tt.input)
		})
	}
}

func nestedParens(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '('
	}
	return string(b)
}

func closeParens(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ')'
	}
	return string(b)
}
