package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v Value) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestMakeOpArityCollapse(t *testing.T) {
	require.JSONEq(t, `{"neg":"a"}`, marshal(t, MakeOp("neg", "a")))
	require.JSONEq(t, `{"eq":["a","b"]}`, marshal(t, MakeOp("eq", "a", "b")))
	require.JSONEq(t, `{"between":["a",1,2]}`, marshal(t, MakeOp("between", "a", int64(1), int64(2))))
}

func TestFlattenAppendChainsAssociative(t *testing.T) {
	left := MakeOp("add", "a", "b")
	chained := FlattenAppend("add", left, "c")
	require.JSONEq(t, `{"add":["a","b","c"]}`, marshal(t, chained))

	// non-associative op never flattens, always nests fresh
	left2 := MakeOp("sub", "a", "b")
	nested := FlattenAppend("sub", left2, "c")
	require.JSONEq(t, `{"sub":[{"sub":["a","b"]},"c"]}`, marshal(t, nested))
}

func TestWrapAlias(t *testing.T) {
	require.JSONEq(t, `{"value":"a"}`, marshal(t, WrapAlias("a", "")))
	require.JSONEq(t, `{"value":"a","name":"b"}`, marshal(t, WrapAlias("a", "b")))
}

func TestCollapseList(t *testing.T) {
	require.Equal(t, "a", CollapseList([]Value{"a"}))
	require.JSONEq(t, `["a","b"]`, marshal(t, CollapseList([]Value{"a", "b"})))
}

func TestCollapseLiteralList(t *testing.T) {
	allStr := CollapseLiteralList([]Value{"r", "g", "b"}, true)
	require.JSONEq(t, `{"literal":["r","g","b"]}`, marshal(t, allStr))

	mixed := CollapseLiteralList([]Value{int64(10), int64(11)}, false)
	require.JSONEq(t, `[10,11]`, marshal(t, mixed))
}

func TestLiteralMarshal(t *testing.T) {
	require.JSONEq(t, `{"literal":"test"}`, marshal(t, MakeLiteral("test")))
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject().Set("b", 1).Set("a", 2).Set("b", 3)
	require.Equal(t, []string{"b", "a"}, o.Keys())
	require.Equal(t, `{"b":3,"a":2}`, marshal(t, o))
}
