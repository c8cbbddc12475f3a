package ast

// Associative holds the canonical operator names that flatten
// left-to-right chains into one n-ary node instead of nesting.
var Associative = map[string]bool{
	"add": true, "mul": true, "and": true, "or": true,
}

// MakeLiteral wraps v as a literal operand.
func MakeLiteral(v Value) *Literal { return &Literal{V: v} }

// MakeOp builds the canonical operator node for name over operands.
// A single operand collapses to a scalar value (covers unary neg/
// missing/exists/not and single-argument function calls); two or more
// wrap as a List. This one rule reproduces every arity-collapse case
// in the canonicalization rules.
func MakeOp(name string, operands ...Value) Value {
	if len(operands) == 1 {
		return NewObject().Set(name, operands[0])
	}
	return NewObject().Set(name, List(operands))
}

// FlattenAppend combines left and right under operator name. If left
// is already a single-key operator node for name holding a List, right
// is appended in place; otherwise a fresh two-operand node is built.
// Used by the expression parser to fold associative chains (add, mul,
// and, or) into one n-ary node in source order.
func FlattenAppend(name string, left, right Value) Value {
	if Associative[name] {
		if obj, ok := left.(*Object); ok && obj.Len() == 1 && obj.Keys()[0] == name {
			if lst, ok := obj.Get(name); ok {
				if l, ok := lst.(List); ok {
					obj.Set(name, append(l, right))
					return obj
				}
			}
		}
	}
	return MakeOp(name, left, right)
}

// WrapAlias attaches an optional alias to expr as {"value": expr,
// "name"?: alias}. With no alias it returns {"value": expr} and omits
// the "name" key.
func WrapAlias(expr Value, alias string) Value {
	o := NewObject().Set("value", expr)
	if alias != "" {
		o.Set("name", alias)
	}
	return o
}

// CollapseList returns items[0] when there's exactly one item, else a
// List of all items. Drives the singleton-collapse invariant for
// select/from/groupby/orderby.
func CollapseList(items []Value) Value {
	if len(items) == 1 {
		return items[0]
	}
	out := make(List, len(items))
	copy(out, items)
	return out
}

// CollapseLiteralList wraps items as a *Literal holding a string slice
// when every item is a plain string (all-literal IN list); otherwise
// returns a bare List.
func CollapseLiteralList(items []Value, allStrings bool) Value {
	if allStrings {
		strs := make([]Value, len(items))
		copy(strs, items)
		return MakeLiteral(List(strs))
	}
	out := make(List, len(items))
	copy(out, items)
	return out
}
