// Package ast defines the JSON-isomorphic value tree produced by the
// parser: nil, numbers, strings (identifiers), literal wrappers,
// lists, and insertion-ordered objects.
package ast

import (
	"encoding/json"
)

// Value is any node in the AST: nil, bool, int64, float64, a bare
// string (identifier), *Literal, List, or *Object.
type Value = any

// Literal wraps a string scalar or a slice of string scalars to mark
// it as a literal operand, distinguishing it from a bare identifier
// string in operand position. Marshals as {"literal": V}.
type Literal struct {
	V Value
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Value{"literal": l.V})
}

// List is an ordered sequence of AST values.
type List []Value

// Object is an insertion-ordered, key-unique string→Value map. One
// key names an operator node; several name a clause container.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: map[string]Value{}}
}

// Set assigns key to v, appending key to the insertion order the
// first time it's seen. Returns o for chaining.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return o
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Len returns the number of keys in o.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys of o in insertion order. Callers must not
// mutate the returned slice.
func (o *Object) Keys() []string { return o.keys }

func (o *Object) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range o.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}
