// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a value tree for the JSON data model. It is the
// in-memory form consumed by the TOON encoder and produced by the decoder.
//
// The concrete types of a Value are Null, Bool, Int, Float, String, Array,
// and Object. An Object is an ordered collection of members with unique keys;
// its order is the order in which keys were first set.
package ast

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/toon/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string

	// String renders a human-readable representation of the value.
	String() string
}

type null struct{}

// Null represents the null constant.
var Null Value = null{}

func (null) JSON() string   { return "null" }
func (null) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string   { return strconv.FormatBool(bool(b)) }
func (b Bool) String() string { return b.JSON() }

// An Int is an integer value.
type Int int64

func (z Int) JSON() string   { return strconv.FormatInt(int64(z), 10) }
func (z Int) String() string { return z.JSON() }

// A Float is a floating-point value. Non-finite values render as null, since
// JSON has no representation for them.
type Float float64

func (f Float) JSON() string {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "null"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f Float) String() string { return f.JSON() }

// A String is a string value.
type String string

// JSON renders s as a quoted JSON string.
func (s String) JSON() string { return `"` + string(escape.QuoteJSON(mem.S(string(s)))) + `"` }

// String returns s unquoted.
func (s String) String() string { return string(s) }

// Len returns the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Array is a sequence of values.
type Array []Value

func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elt := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonOf(elt))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// Len returns the number of elements in a.
func (a Array) Len() int { return len(a) }

// An Object is a collection of key-value members.
type Object []*Member

func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// Len returns the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i := o.Index(key); i >= 0 {
		return o[i]
	}
	return nil
}

// Index returns the offset of the member of o with the given key, or -1.
func (o Object) Index(key string) int {
	return slices.IndexFunc(o, func(m *Member) bool { return m.Key == key })
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Set sets the value of key in o. If key is already present, its value is
// replaced in place; otherwise a new member is added at the end.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	*o = append(*o, &Member{Key: key, Value: v})
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m Member) JSON() string { return String(m.Key).JSON() + ":" + jsonOf(m.Value) }

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be a string, int, float, bool, nil, or ast.Value.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// ArrayOf constructs an array of the given values, each converted with ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}

// ToValue converts a Go value into an ast.Value. It accepts nil, bool, all
// integer and floating-point types, string, ast.Value, []any, and
// map[string]any; map keys are sorted since Go maps are unordered. ToValue
// panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		return ArrayOf(t...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make(Object, len(keys))
		for i, k := range keys {
			out[i] = Field(k, t[k])
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

func jsonOf(v Value) string {
	if v == nil {
		return "null"
	}
	return v.JSON()
}
