package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseSQL(t *testing.T, sql string) string {
	t.Helper()
	p := New(sql)
	v, err := p.Parse()
	require.NoError(t, err, "parsing %q", sql)
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestSelectStar(t *testing.T) {
	require.JSONEq(t, `{"select":"*","from":"dual"}`, parseSQL(t, "select * from dual"))
}

func TestImplicitAliasNotConfusedWithNextClause(t *testing.T) {
	require.JSONEq(t,
		`{"select":{"value":"a","name":"b"},"from":"dual","where":{"eq":["a",1]}}`,
		parseSQL(t, "select a b from dual where a = 1"))
}

func TestGroupByHavingOrderByLimitOffset(t *testing.T) {
	got := parseSQL(t, "select a, count(1) as n from t group by a having n > 1 order by n desc limit 10 offset 5")
	require.JSONEq(t,
		`{"select":[{"value":"a"},{"value":{"count":1},"name":"n"}],"from":"t","groupby":{"value":"a"},`+
			`"having":{"gt":["n",1]},"orderby":{"value":"n","sort":"desc"},"limit":10,"offset":5}`,
		got)
}

func TestJoinKindSpellings(t *testing.T) {
	cases := []struct{ kw, key string }{
		{"JOIN", "join"},
		{"INNER JOIN", "join"},
		{"LEFT JOIN", "left join"},
		{"LEFT OUTER JOIN", "left outer join"},
		{"RIGHT JOIN", "right join"},
		{"RIGHT OUTER JOIN", "right outer join"},
		{"FULL JOIN", "full join"},
		{"FULL OUTER JOIN", "full outer join"},
		{"CROSS JOIN", "cross join"},
	}
	for _, c := range cases {
		sql := "select a from t1 " + c.kw + " t2 on t1.id = t2.id"
		got := parseSQL(t, sql)
		want := `{"select":{"value":"a"},"from":["t1",{"` + c.key + `":"t2","on":{"eq":["t1.id","t2.id"]}}]}`
		require.JSONEq(t, want, got, sql)
	}
}

func TestUnionAllVsPlain(t *testing.T) {
	require.JSONEq(t,
		`{"from":{"union":[{"select":{"value":"a"},"from":"t1"},{"select":{"value":"a"},"from":"t2"}]}}`,
		parseSQL(t, "select a from t1 union select a from t2"))
	require.JSONEq(t,
		`{"from":{"union_all":[{"select":{"value":"a"},"from":"t1"},{"select":{"value":"a"},"from":"t2"}]}}`,
		parseSQL(t, "select a from t1 union all select a from t2"))
}

func TestThreeWayUnionFlattens(t *testing.T) {
	got := parseSQL(t, "select a from t1 union select a from t2 union select a from t3")
	require.JSONEq(t,
		`{"from":{"union":[{"select":{"value":"a"},"from":"t1"},{"select":{"value":"a"},"from":"t2"},{"select":{"value":"a"},"from":"t3"}]}}`,
		got)
}

func TestSubqueryInFrom(t *testing.T) {
	got := parseSQL(t, "select x from (select a as x from t1) sub")
	require.JSONEq(t,
		`{"select":{"value":"x"},"from":{"name":"sub","value":{"select":{"value":"a","name":"x"},"from":"t1"}}}`,
		got)
}

func TestErrorOnMissingFromSource(t *testing.T) {
	p := New("select a from")
	_, err := p.Parse()
	require.Error(t, err)
}

func TestTrailingSemicolonAllowed(t *testing.T) {
	require.JSONEq(t, `{"select":"*","from":"dual"}`, parseSQL(t, "select * from dual;"))
}

func TestUnexpectedTrailingTokenErrors(t *testing.T) {
	p := New("select * from dual d garbage")
	_, err := p.Parse()
	require.Error(t, err)
}
