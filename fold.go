// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"regexp"
	"strings"

	"github.com/creachadair/toon/ast"
)

var safeIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isIdent reports whether s is a safe identifier, which may appear bare as a
// key or as a segment of a dotted key path.
func isIdent(s string) bool { return safeIdent.MatchString(s) }

// isDottedPath reports whether s consists of two or more safe identifiers
// separated by periods.
func isDottedPath(s string) bool {
	segs := strings.Split(s, ".")
	if len(segs) < 2 {
		return false
	}
	for _, seg := range segs {
		if !isIdent(seg) {
			return false
		}
	}
	return true
}

// foldKey collapses a chain of single-member objects beneath key into a
// dotted key path. The parent is the path of the object containing key, as
// reported in errors. It returns the folded key, the value at the end of the
// chain, and whether any folding occurred. Folding stops at a value that is
// not an object with exactly one member, at a member key that is not a safe
// identifier, at the configured depth limit, or at an excluded path.
func (e *encoder) foldKey(parent, key string, v ast.Value) (string, ast.Value, bool) {
	if e.opts.KeyFolding != FoldSafe || !isIdent(key) {
		return key, v, false
	}
	path, n := key, 1
	for !e.excluded(joinPath(parent, path)) {
		if d := e.opts.FlattenDepth; d > 0 && n >= d {
			break
		}
		obj, ok := v.(ast.Object)
		if !ok || len(obj) != 1 || !isIdent(obj[0].Key) {
			break
		}
		path += "." + obj[0].Key
		v = obj[0].Value
		n++
	}
	return path, v, n > 1
}

// excluded reports whether path or any of its prefixes ending at a segment
// boundary is in the folding exclusion set.
func (e *encoder) excluded(path string) bool {
	if e.exclude.IsEmpty() {
		return false
	}
	for i := 0; i < len(path); i++ {
		if (path[i] == '.' || path[i] == '[') && e.exclude.Has(path[:i]) {
			return true
		}
	}
	return e.exclude.Has(path)
}

// expandPath assigns v under key in obj and returns the updated object.
// If key is a dotted path of safe identifiers, nested objects are created
// or reused for each segment but the last. An existing member on the path
// that is not an object is replaced.
func expandPath(obj ast.Object, key string, v ast.Value) ast.Object {
	if !isDottedPath(key) {
		obj.Set(key, v)
		return obj
	}
	return expandSegments(obj, strings.Split(key, "."), v)
}

func expandSegments(obj ast.Object, segs []string, v ast.Value) ast.Object {
	if len(segs) == 1 {
		obj.Set(segs[0], v)
		return obj
	}
	var inner ast.Object
	if m := obj.Find(segs[0]); m != nil {
		inner, _ = m.Value.(ast.Object)
	}
	obj.Set(segs[0], expandSegments(inner, segs[1:], v))
	return obj
}
