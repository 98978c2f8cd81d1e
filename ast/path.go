// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Path traverses a sequential path through the structure of a value starting
// at v, where path elements are either strings (denoting object keys) or
// integers (denoting offsets into arrays).  If the path is valid, the element
// reached is returned. In case of error, the input v is returned along with
// the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves an object member with that name.
//
// If a path element is an integer, the corresponding value must be an array,
// and the integer resolves to an index in the array. Negative indices count
// backward from the end of the array (-1 is last, -2 second last, etc.).
//
// If a path element is a function, the function is executed and its result
// becomes the next object in the sequence. The function must have a signature
//
//	func(ast.Value) (ast.Value, error)
//
// If the function fails, the traversal reports its error.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(Object)
			if !ok {
				return v, fmt.Errorf("cannot traverse %T with %q", cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return v, fmt.Errorf("key %q not found", t)
			}
			cur = m.Value
		case int:
			arr, ok := cur.(Array)
			if !ok {
				return v, fmt.Errorf("cannot traverse %T with %v", cur, t)
			}
			i, ok := fixArrayBound(len(arr), t)
			if !ok {
				return v, fmt.Errorf("array index %d out of bounds (n=%d)", t, len(arr))
			}
			cur = arr[i]
		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return v, err
			}
			cur = next
		default:
			return v, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// ParsePath parses a path expression into elements suitable for Path.
// The syntax is a small subset of JSONPath:
//
//	path = ["$"] [name] {step}
//	step = "." name
//	step = "[" index "]"
//	step = "['" text "']"
//
// A name is a run of letters, digits, underscores, and hyphens, and an index
// is an integer, possibly negative. Quoted text may contain any character
// except the sequence "']". An empty path selects the root.
func ParsePath(s string) ([]any, error) {
	s, _ = strings.CutPrefix(s, "$")
	var out []any
	if name := nameRE.FindString(s); name != "" {
		out = append(out, name)
		s = s[len(name):]
	}
	for s != "" {
		if t, ok := strings.CutPrefix(s, "."); ok {
			name := nameRE.FindString(t)
			if name == "" {
				return nil, fmt.Errorf("invalid name at %q", t)
			}
			out = append(out, name)
			s = t[len(name):]
		} else if t, ok := strings.CutPrefix(s, "['"); ok {
			i := strings.Index(t, "']")
			if i < 0 {
				return nil, errors.New("missing close quote")
			}
			out = append(out, t[:i])
			s = t[i+2:]
		} else if t, ok := strings.CutPrefix(s, "["); ok {
			m := indexRE.FindString(t)
			if m == "" {
				return nil, fmt.Errorf("invalid index at %q", t)
			}
			u, ok := strings.CutPrefix(t[len(m):], "]")
			if !ok {
				return nil, errors.New("missing close bracket")
			}
			n, err := strconv.Atoi(m)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
			s = u
		} else {
			return nil, fmt.Errorf("invalid path step %q", s)
		}
	}
	return out, nil
}

var (
	nameRE  = regexp.MustCompile(`^[\w-]+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
)
