// Package compat differentially tests sqlast's acceptance behavior
// against github.com/blastrain/vitess-sqlparser, a full MySQL-dialect
// grammar. The two parsers build unrelated trees, so the only
// meaningful comparison is accept/reject agreement: a statement sqlast
// accepts as a SELECT should not be something vitess calls invalid SQL,
// and vice versa, modulo the dialect features sqlast intentionally
// doesn't cover.
package compat

import (
	"fmt"

	vitess "github.com/blastrain/vitess-sqlparser/sqlparser"

	"github.com/freeeve/sqlast"
)

// Verdict is the accept/reject outcome of running one query through
// both parsers.
type Verdict struct {
	Query        string
	SqlastOK     bool
	SqlastErr    error
	VitessOK     bool
	VitessErr    error
}

// Agrees reports whether both parsers reached the same accept/reject
// conclusion.
func (v Verdict) Agrees() bool { return v.SqlastOK == v.VitessOK }

// Check runs query through both parsers and reports their verdicts.
func Check(query string) Verdict {
	_, sqlastErr := sqlast.Parse(query)
	_, vitessErr := vitess.Parse(query)
	return Verdict{
		Query:     query,
		SqlastOK:  sqlastErr == nil,
		SqlastErr: sqlastErr,
		VitessOK:  vitessErr == nil,
		VitessErr: vitessErr,
	}
}

// CheckAll runs Check over every query in queries and returns the
// verdicts that disagree.
func CheckAll(queries []string) []Verdict {
	var disagreements []Verdict
	for _, q := range queries {
		v := Check(q)
		if !v.Agrees() {
			disagreements = append(disagreements, v)
		}
	}
	return disagreements
}

func (v Verdict) String() string {
	return fmt.Sprintf("query=%q sqlast_ok=%v (%v) vitess_ok=%v (%v)",
		v.Query, v.SqlastOK, v.SqlastErr, v.VitessOK, v.VitessErr)
}
