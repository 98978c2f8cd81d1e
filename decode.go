// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/creachadair/toon/ast"
	"github.com/creachadair/toon/internal/escape"

	"go4.org/mem"
)

// Decode parses TOON text into a value using the settings from opts. If
// opts == nil, the settings from DefaultOptions are used.
//
// Empty input (containing only blank lines) decodes as an empty object if
// opts.SpecStrict is true, otherwise as ast.Null. If the input is malformed
// and opts.ThrowOnDecodeError is true, the concrete type of the error is
// *DecodeError; if it is false, Decode returns ast.Null and no error.
func Decode(text string, opts *Options) (ast.Value, error) {
	o := resolve(opts)
	v, err := decodeText(text, &o)
	if err != nil {
		if !o.ThrowOnDecodeError {
			return ast.Null, nil
		}
		return nil, err
	}
	return v, nil
}

func decodeText(text string, o *Options) (_ ast.Value, err error) {
	lines, err := scanLines(text, o.Indent)
	if err != nil {
		return nil, err
	} else if len(lines) == 0 {
		if o.SpecStrict {
			return ast.Object{}, nil
		}
		return ast.Null, nil
	}
	defer recoverDecodeError(&err)
	p := &parser{lines: lines, opts: o}
	return p.document(), nil
}

func recoverDecodeError(errp *error) {
	if x := recover(); x != nil {
		derr, ok := x.(*DecodeError)
		if !ok {
			panic(x)
		}
		*errp = derr
	}
}

// A parser decodes a sequence of lines. Each parse method takes the index of
// the line where it starts and returns the index of the first line it did
// not consume. Errors are reported by panicking with a *DecodeError, which
// is recovered by decodeText.
type parser struct {
	lines []line
	opts  *Options
}

// document parses all the lines of p as a single value.
func (p *parser) document() ast.Value {
	v, next := p.parseValue(0, 0)
	if next < len(p.lines) {
		p.fail(next, ErrExtraInput, "unexpected %q after value", p.lines[next].text)
	}
	return v
}

// subdocument parses frag as a standalone document. The lines of frag must
// be re-based so that the first has depth 0.
func (p *parser) subdocument(frag []line) ast.Value {
	return (&parser{lines: frag, opts: p.opts}).document()
}

// parseValue parses a value whose first line is at pos and must have the
// given depth.
func (p *parser) parseValue(depth, pos int) (ast.Value, int) {
	if pos >= len(p.lines) {
		p.fail(pos, ErrEndOfInput, "expected value")
	}
	ln := p.lines[pos]
	if ln.depth != depth {
		p.fail(pos, ErrIndent, "indentation level %d, want %d", ln.depth, depth)
	}
	if strings.HasPrefix(ln.text, "[") && ln.text != "[]" {
		return p.parseArray(depth, pos, p.parseHeader(pos, ln.text))
	}
	if _, ok := p.keyLine(pos); ok {
		return p.parseObject(depth, pos)
	}
	return p.scalar(pos, ln.text), pos + 1
}

// parseObject parses the members of an object whose key lines have the given
// depth, starting at pos.
func (p *parser) parseObject(depth, pos int) (ast.Value, int) {
	obj := ast.Object{}
	for pos < len(p.lines) {
		ln := p.lines[pos]
		if ln.depth < depth {
			break
		} else if ln.depth > depth {
			p.fail(pos, ErrIndent, "unexpected indentation level %d, want %d", ln.depth, depth)
		}
		k, ok := p.keyLine(pos)
		if !ok {
			p.fail(pos, ErrSyntax, "expected key, got %q", ln.text)
		}

		var v ast.Value
		switch {
		case k.header != "":
			v, pos = p.parseArray(depth, pos, p.parseHeader(pos, k.header))
		case k.rest != "":
			v = p.subdocument([]line{{num: ln.num, col: ln.col + k.restOff, text: k.rest}})
			pos++
		case pos+1 < len(p.lines) && p.lines[pos+1].depth > depth:
			v, pos = p.parseValue(depth+1, pos+1)
		default:
			v = ast.Null
			pos++
		}

		if p.opts.ExpandPaths && !k.quoted {
			obj = expandPath(obj, k.key, v)
		} else {
			obj.Set(k.key, v)
		}
	}
	return obj, pos
}

// parseArray parses the array whose header h is on the line at pos, which
// has the given depth. Rows and items are at depth+1.
func (p *parser) parseArray(depth, pos int, h header) (ast.Value, int) {
	if h.fields == nil && h.inline != "" {
		toks := splitDelimited(h.inline, h.delim)
		if len(toks) != h.count {
			p.fail(pos, ErrLength, "array has %d values, header declares %d", len(toks), h.count)
		}
		arr := make(ast.Array, len(toks))
		for i, tok := range toks {
			arr[i] = p.scalar(pos, tok)
		}
		return arr, pos + 1
	} else if h.fields != nil && h.inline != "" {
		p.fail(pos, ErrHeader, "unexpected %q after tabular header", h.inline)
	}

	// The count is untrusted, so do not allocate more than the input can fill.
	arr := make(ast.Array, 0, min(h.count, len(p.lines)-pos-1))
	next := pos + 1
	for next < len(p.lines) && p.lines[next].depth > depth {
		if len(arr) == h.count {
			p.fail(next, ErrLength, "more than %d elements in array", h.count)
		} else if d := p.lines[next].depth; d != depth+1 {
			p.fail(next, ErrIndent, "indentation level %d, want %d", d, depth+1)
		}
		var v ast.Value
		if h.fields != nil {
			v, next = p.parseRow(next, h), next+1
		} else {
			v, next = p.parseItem(next)
		}
		arr = append(arr, v)
	}
	if len(arr) != h.count {
		p.fail(pos, ErrLength, "array has %d elements, header declares %d", len(arr), h.count)
	}
	return arr, next
}

// parseRow parses the tabular row at pos into an object with the fields of h.
func (p *parser) parseRow(pos int, h header) ast.Value {
	cells := splitDelimited(p.lines[pos].text, h.delim)
	if len(cells) != len(h.fields) {
		p.fail(pos, ErrLength, "row has %d values, header declares %d", len(cells), len(h.fields))
	}
	obj := make(ast.Object, 0, len(cells))
	for i, cell := range cells {
		obj.Set(h.fields[i], p.scalar(pos, cell))
	}
	return obj
}

// parseItem parses the list item at pos along with any deeper lines that
// follow it. The remainder of the item line and the deeper lines are decoded
// as a document of their own.
func (p *parser) parseItem(pos int) (ast.Value, int) {
	ln := p.lines[pos]
	if ln.text == "-" {
		return ast.Object{}, pos + 1
	} else if !strings.HasPrefix(ln.text, "- ") {
		p.fail(pos, ErrSyntax, "expected list item, got %q", ln.text)
	}
	end := pos + 1
	for end < len(p.lines) && p.lines[end].depth > ln.depth {
		end++
	}

	rest := strings.TrimLeft(ln.text[2:], " ")
	frag := make([]line, 0, end-pos)
	frag = append(frag, line{num: ln.num, col: ln.col + len(ln.text) - len(rest), text: rest})
	for _, sub := range p.lines[pos+1 : end] {
		sub.depth -= ln.depth + 1
		frag = append(frag, sub)
	}
	return p.subdocument(frag), end
}

// A header is the parsed form of an array header.
type header struct {
	count  int
	delim  Delimiter
	fields []string // nil unless tabular
	inline string   // text after the colon
}

// parseHeader parses the array header s, which begins with "[", from the
// line at pos.
func (p *parser) parseHeader(pos int, s string) header {
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 1 {
		p.fail(pos, ErrHeader, "missing array length in %q", s)
	}
	n, err := strconv.Atoi(s[1:i])
	if err != nil {
		p.fail(pos, ErrHeader, "invalid array length: %v", err)
	}

	h := header{count: n, delim: p.opts.Delimiter}
	if i < len(s) && s[i] != ']' {
		if d := Delimiter(s[i]); d.Valid() {
			h.delim = d
		}
		i++
	}
	if i >= len(s) || s[i] != ']' {
		p.fail(pos, ErrHeader, "missing %q in header %q", ']', s)
	}
	i++

	if i < len(s) && s[i] == '{' {
		end := indexUnquoted(s[i:], '}')
		if end < 0 {
			p.fail(pos, ErrHeader, "unterminated field list in header %q", s)
		}
		list := s[i+1 : i+end]
		if strings.TrimSpace(list) == "" {
			p.fail(pos, ErrHeader, "empty field list in header %q", s)
		}
		for _, f := range splitDelimited(list, h.delim) {
			h.fields = append(h.fields, p.key(pos, f))
		}
		i += end + 1
	}
	if i >= len(s) || s[i] != ':' {
		p.fail(pos, ErrHeader, "missing %q in header %q", ':', s)
	}
	h.inline = strings.TrimLeft(s[i+1:], " ")
	return h
}

// A keyLine is the parsed form of a line that begins with an object key.
type keyLine struct {
	key     string // decoded key
	quoted  bool   // whether the key was quoted
	header  string // array header following the key, if any
	rest    string // text after the colon, if no header
	restOff int    // offset of rest in the line
}

// keyLine reports whether the line at pos begins with an object key, and if
// so returns its parts.
func (p *parser) keyLine(pos int) (keyLine, bool) {
	k, ok, err := splitKey(p.lines[pos].text)
	if err != nil {
		p.fail(pos, ErrSyntax, "invalid key: %v", err)
	}
	return k, ok
}

// splitKey reports whether text begins with a quoted or bare key followed
// immediately by a colon or an array header. It reports an error only for a
// quoted key with an invalid escape.
func splitKey(text string) (keyLine, bool, error) {
	var k keyLine
	var i int
	if strings.HasPrefix(text, `"`) {
		end := escape.Closing(mem.S(text[1:]))
		if end < 0 {
			return k, false, nil
		}
		i = end + 2
		k.quoted = true
	} else {
		i = strings.IndexAny(text, ":[")
		if i <= 0 || strings.IndexFunc(text[:i], isKeyBreak) >= 0 {
			return k, false, nil
		}
		k.key = text[:i]
	}
	if i >= len(text) {
		return k, false, nil
	}
	switch text[i] {
	case ':':
		k.rest = strings.TrimLeft(text[i+1:], " ")
		k.restOff = len(text) - len(k.rest)
	case '[':
		k.header = text[i:]
	default:
		return k, false, nil
	}
	if k.quoted {
		key, err := Unquote(text[:i])
		if err != nil {
			return k, false, err
		}
		k.key = key
	}
	return k, true, nil
}

func isKeyBreak(r rune) bool { return r == '"' || unicode.IsSpace(r) }

// key decodes a field name from a tabular header.
func (p *parser) key(pos int, s string) string {
	if !strings.HasPrefix(s, `"`) {
		return s
	}
	key, err := Unquote(s)
	if err != nil {
		p.fail(pos, ErrHeader, "invalid field name %s: %v", s, err)
	}
	return key
}

// scalar decodes a single token from the line at pos.
func (p *parser) scalar(pos int, tok string) ast.Value {
	v, err := decodeScalar(tok, p.opts)
	if err != nil {
		p.fail(pos, ErrSyntax, "invalid token %s: %v", tok, err)
	}
	return v
}

// fail reports a decoding error at the line at pos, or at the end of the
// input if pos is past the last line.
func (p *parser) fail(pos int, err error, msg string, args ...any) {
	var loc LineCol
	if pos < len(p.lines) {
		loc = LineCol{Line: p.lines[pos].num, Column: p.lines[pos].col}
	} else if n := len(p.lines); n > 0 {
		last := p.lines[n-1]
		loc = LineCol{Line: last.num, Column: last.col + len(last.text)}
	}
	panic(&DecodeError{
		Location: loc,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

// indexUnquoted returns the offset of the first c in s that is not inside a
// quoted string, or -1.
func indexUnquoted(s string, c byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && quoted:
			i++
		case s[i] == '"':
			quoted = !quoted
		case s[i] == c && !quoted:
			return i
		}
	}
	return -1
}
