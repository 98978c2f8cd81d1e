// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/toon/ast"
)

// Encode renders v as TOON text using the settings from opts. If opts == nil,
// the settings from DefaultOptions are used. In case of error, the concrete
// type of the error is *EncodeError.
func Encode(v ast.Value, opts *Options) (string, error) {
	o := resolve(opts)
	e := &encoder{opts: o, exclude: mapset.New(o.FoldingExclude...)}
	lines, err := e.encodeValue(v, "")
	if err != nil {
		return "", err
	}
	out := renderLines(lines, o.Indent)
	if o.NewlineFinal {
		out += "\n"
	}
	return out, nil
}

// An encoder renders values into lines of text. Each method returns a
// fragment whose first line is at depth 0; the caller shifts the fragment to
// where it belongs.
type encoder struct {
	opts    Options
	exclude mapset.Set[string]
}

// A shape classifies how a value is rendered.
type shape int

const (
	shapeScalar         shape = iota // null, bool, number, string
	shapeEmptyArray                  // [0]:
	shapePrimitiveArray              // [n]: a,b,c
	shapeTabularArray                // [n]{f1,f2}: plus one row per element
	shapeMixedArray                  // [n]: plus one "- " item per element
	shapeEmptyObject                 // {}
	shapeObject                      // key: value lines
)

// classify reports the shape of v, or an error if v is not part of the tree
// model.
func (e *encoder) classify(v ast.Value, path string) (shape, error) {
	if isScalar(v) {
		return shapeScalar, nil
	}
	switch t := v.(type) {
	case ast.Object:
		if len(t) == 0 {
			return shapeEmptyObject, nil
		}
		return shapeObject, nil
	case ast.Array:
		switch {
		case len(t) == 0:
			return shapeEmptyArray, nil
		case allScalar(t):
			return shapePrimitiveArray, nil
		case e.isTabular(t):
			return shapeTabularArray, nil
		default:
			return shapeMixedArray, nil
		}
	}
	return 0, e.fail(path, ErrUnsupportedType, "unsupported value type %T", v)
}

func allScalar(arr ast.Array) bool {
	for _, v := range arr {
		if !isScalar(v) {
			return false
		}
	}
	return true
}

// isTabular reports whether arr has enough elements to prefer the tabular
// form, and every element is a non-empty object with the same keys in the
// same order and only scalar values.
func (e *encoder) isTabular(arr ast.Array) bool {
	if len(arr) < e.opts.MinRowsTabular {
		return false
	}
	first, ok := arr[0].(ast.Object)
	if !ok || len(first) == 0 {
		return false
	}
	for _, elt := range arr {
		obj, ok := elt.(ast.Object)
		if !ok || len(obj) != len(first) {
			return false
		}
		for i, m := range obj {
			if m.Key != first[i].Key || !isScalar(m.Value) {
				return false
			}
		}
	}
	return true
}

func (e *encoder) encodeValue(v ast.Value, path string) ([]line, error) {
	s, err := e.classify(v, path)
	if err != nil {
		return nil, err
	}
	switch s {
	case shapeScalar:
		tok, _ := encodeScalar(v, e.opts.Delimiter)
		return []line{{text: tok}}, nil
	case shapeEmptyObject:
		return []line{{text: "{}"}}, nil
	case shapeObject:
		return e.encodeObject(v.(ast.Object), path)
	default:
		return e.encodeArray("", v.(ast.Array), s, path)
	}
}

func (e *encoder) encodeObject(obj ast.Object, path string) ([]line, error) {
	var out []line
	for _, m := range obj {
		key, v, folded := e.foldKey(path, m.Key, m.Value)
		kpath := joinPath(path, key)
		ktext := e.encodeKey(key, folded)

		s, err := e.classify(v, kpath)
		if err != nil {
			return nil, err
		}
		switch s {
		case shapeScalar:
			tok, _ := encodeScalar(v, e.opts.Delimiter)
			out = append(out, line{text: ktext + ": " + tok})
		case shapeEmptyObject:
			out = append(out, line{text: ktext + ": {}"})
		case shapeObject:
			sub, err := e.encodeObject(v.(ast.Object), kpath)
			if err != nil {
				return nil, err
			}
			out = append(out, line{text: ktext + ":"})
			out = append(out, shiftLines(sub, 1)...)
		default:
			sub, err := e.encodeArray(ktext, v.(ast.Array), s, kpath)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
	}
	return out, nil
}

// encodeKey renders an object key. A folded path is written bare. When dotted
// paths are meaningful to the options, a literal key that looks like one is
// quoted so it is not expanded on the way back in.
func (e *encoder) encodeKey(key string, folded bool) string {
	if folded {
		return key
	}
	if (e.opts.KeyFolding == FoldSafe || e.opts.ExpandPaths) && isDottedPath(key) {
		return Quote(key)
	}
	return encodeString(key, e.opts.Delimiter)
}

// encodeArray renders arr, whose shape is s, with its header attached to the
// (already encoded) key text.
func (e *encoder) encodeArray(key string, arr ast.Array, s shape, path string) ([]line, error) {
	d := e.opts.Delimiter
	switch s {
	case shapeEmptyArray:
		return []line{{text: e.header(key, 0, nil)}}, nil

	case shapePrimitiveArray:
		toks := make([]string, len(arr))
		for i, v := range arr {
			toks[i], _ = encodeScalar(v, d)
		}
		return []line{{text: e.header(key, len(arr), nil) + " " + strings.Join(toks, string(rune(d)))}}, nil

	case shapeTabularArray:
		return e.encodeTabular(key, arr, path)
	}

	out := []line{{text: e.header(key, len(arr), nil)}}
	for i, elt := range arr {
		frag, err := e.encodeValue(elt, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, line{depth: 1, text: "- " + frag[0].text})
		out = append(out, shiftLines(frag[1:], 2)...)
	}
	return out, nil
}

// encodeTabular renders arr as a header naming the keys of its first element,
// followed by one row of values per element.
func (e *encoder) encodeTabular(key string, arr ast.Array, path string) ([]line, error) {
	if len(arr) == 0 {
		return nil, e.fail(path, ErrTabular, "empty tabular array")
	}
	first, ok := arr[0].(ast.Object)
	if !ok {
		return nil, e.fail(indexPath(path, 0), ErrTabular, "row is %T, not an object", arr[0])
	}
	fields := first.Keys()
	d := e.opts.Delimiter

	out := []line{{text: e.header(key, len(arr), fields)}}
	cells := make([]string, len(fields))
	for i, elt := range arr {
		rpath := indexPath(path, i)
		row, ok := elt.(ast.Object)
		if !ok {
			return nil, e.fail(rpath, ErrTabular, "row is %T, not an object", elt)
		} else if len(row) != len(fields) {
			return nil, e.fail(rpath, ErrTabular, "row has %d keys, header has %d", len(row), len(fields))
		}
		for j, f := range fields {
			m := row.Find(f)
			if m == nil {
				return nil, e.fail(rpath, ErrTabular, "row is missing key %q", f)
			}
			tok, ok := encodeScalar(m.Value, d)
			if !ok {
				return nil, e.fail(joinPath(rpath, f), ErrTabular, "cell is %T, not a scalar", m.Value)
			}
			cells[j] = tok
		}
		out = append(out, line{depth: 1, text: strings.Join(cells, string(rune(d)))})
	}
	return out, nil
}

// header renders an array header with the given count, preceded by key (if
// non-empty) and followed by the given field names (if non-nil).
func (e *encoder) header(key string, n int, fields []string) string {
	d := e.opts.Delimiter
	var sb strings.Builder
	sb.WriteString(key)
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(n))
	sb.WriteString(d.suffix())
	sb.WriteByte(']')
	if fields != nil {
		sb.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(byte(d))
			}
			sb.WriteString(encodeString(f, d))
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(':')
	return sb.String()
}

func (e *encoder) fail(path string, err error, msg string, args ...any) error {
	return &EncodeError{Path: path, Message: fmt.Sprintf(msg, args...), err: err}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string { return fmt.Sprintf("%s[%d]", path, i) }
