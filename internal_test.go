// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"errors"
	"testing"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/toon/ast"
	"github.com/google/go-cmp/cmp"
)

func TestIsBare(t *testing.T) {
	tests := []struct {
		input string
		delim Delimiter
		want  bool
	}{
		{"", Comma, false},
		{"-", Comma, false},
		{"- a", Comma, false},
		{"-a", Comma, true},
		{"null", Comma, false},
		{"Null", Comma, true},
		{"true", Comma, false},
		{"false", Comma, false},
		{"0", Comma, false},
		{"-1.5e10", Comma, false},
		{"007", Comma, false},
		{"1.", Comma, true},
		{"v1.2", Comma, true},
		{"a b", Comma, false},
		{"a\tb", Pipe, false},
		{"a\x01b", Comma, false},
		{"a,b", Comma, false},
		{"a,b", Pipe, true},
		{"a|b", Pipe, false},
		{"a|b", Comma, true},
		{"k:v", Comma, false},
		{"{x", Comma, false},
		{"x]", Comma, false},
		{`say"`, Comma, false},
		{`a\b`, Comma, false},
		{"héllo", Comma, true},
		{"#tag", Comma, true},
	}
	for _, test := range tests {
		if got := isBare(test.input, test.delim); got != test.want {
			t.Errorf("isBare(%q, %v): got %v, want %v", test.input, test.delim, got, test.want)
		}
	}
}

func TestDecodeScalar(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{"null", ast.Null},
		{"true", ast.Bool(true)},
		{"false", ast.Bool(false)},
		{"[]", ast.Array{}},
		{"{}", ast.Object{}},
		{"0", ast.Int(0)},
		{"-17", ast.Int(-17)},
		{"2.5", ast.Float(2.5)},
		{"-1E2", ast.Float(-100)},
		{"9223372036854775808", ast.Float(9223372036854775808)},
		{"01", ast.String("01")},
		{"1.", ast.String("1.")},
		{"+1", ast.String("+1")},
		{"abc", ast.String("abc")},
		{`""`, ast.String("")},
		{`"a\"b\\c\n"`, ast.String("a\"b\\c\n")},
	}
	o := DefaultOptions()
	for _, test := range tests {
		got, err := decodeScalar(test.input, &o)
		if err != nil {
			t.Errorf("decodeScalar(%q): unexpected error: %v", test.input, err)
		} else if diff := cmp.Diff(got, test.want); diff != "" {
			t.Errorf("decodeScalar(%q) (-got, +want):\n%s", test.input, diff)
		}
	}

	for _, bad := range []string{`"`, `"abc`, `"a\x"`, `"a"b"`} {
		if got, err := decodeScalar(bad, &o); err == nil {
			t.Errorf("decodeScalar(%q): got %v, want error", bad, got)
		}
	}
}

func TestSplitDelimited(t *testing.T) {
	tests := []struct {
		input string
		delim Delimiter
		want  []string
	}{
		{"", Comma, []string{""}},
		{"a", Comma, []string{"a"}},
		{"a,b,c", Comma, []string{"a", "b", "c"}},
		{" a , b ", Comma, []string{"a", "b"}},
		{`"a,b",c`, Comma, []string{`"a,b"`, "c"}},
		{`"a\",b",c`, Comma, []string{`"a\",b"`, "c"}},
		{"a|b,c", Pipe, []string{"a", "b,c"}},
		{"a\tb c", Tab, []string{"a", "b c"}},
		{"a,,b", Comma, []string{"a", "", "b"}},
	}
	for _, test := range tests {
		got := splitDelimited(test.input, test.delim)
		if diff := cmp.Diff(got, test.want); diff != "" {
			t.Errorf("splitDelimited(%q) (-got, +want):\n%s", test.input, diff)
		}
	}
}

var lineOpt = cmp.AllowUnexported(line{})

func TestScanLines(t *testing.T) {
	got, err := scanLines("a:\r\n  b: 1  \n\n    - c\r\rd", 2)
	if err != nil {
		t.Fatalf("scanLines: unexpected error: %v", err)
	}
	want := []line{
		{num: 1, col: 0, depth: 0, text: "a:"},
		{num: 2, col: 2, depth: 1, text: "b: 1"},
		{num: 4, col: 4, depth: 2, text: "- c"},
		{num: 6, col: 0, depth: 0, text: "d"},
	}
	if diff := cmp.Diff(got, want, lineOpt); diff != "" {
		t.Errorf("scanLines (-got, +want):\n%s", diff)
	}

	for _, bad := range []string{"a:\n b", "a:\n  \tb", "\tx"} {
		_, err := scanLines(bad, 2)
		if !errors.Is(err, ErrIndent) {
			t.Errorf("scanLines(%q): got %v, want %v", bad, err, ErrIndent)
		}
	}
}

func TestRenderLines(t *testing.T) {
	lines := []line{
		{text: "a:"},
		{depth: 1, text: "b[2]:"},
		{depth: 2, text: "- x"},
		{depth: 3, text: "y: 1"},
		{text: "z"},
	}
	const want = "a:\n   b[2]:\n      - x\n         y: 1\nz"
	if got := renderLines(lines, 3); got != want {
		t.Errorf("renderLines: got %q, want %q", got, want)
	}
	if got := renderLines(nil, 2); got != "" {
		t.Errorf("renderLines(nil): got %q, want empty", got)
	}

	shifted := shiftLines([]line{{depth: 0}, {depth: 2}}, 2)
	if shifted[0].depth != 2 || shifted[1].depth != 4 {
		t.Errorf("shiftLines: got %+v", shifted)
	}
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		input string
		want  keyLine
		ok    bool
	}{
		{"a: 1", keyLine{key: "a", rest: "1", restOff: 3}, true},
		{"a:", keyLine{key: "a", restOff: 2}, true},
		{"a:   x y", keyLine{key: "a", rest: "x y", restOff: 5}, true},
		{"a.b[2]: x,y", keyLine{key: "a.b", header: "[2]: x,y"}, true},
		{`"a b": c`, keyLine{key: "a b", quoted: true, rest: "c", restOff: 7}, true},
		{`"x:y"[0]:`, keyLine{key: "x:y", quoted: true, header: "[0]:"}, true},
		{`"a\"b":`, keyLine{key: `a"b`, quoted: true, restOff: 7}, true},

		{"abc", keyLine{}, false},
		{"a b: c", keyLine{}, false},
		{": c", keyLine{}, false},
		{"[2]: a", keyLine{}, false},
		{`"abc"`, keyLine{}, false},
		{`"abc" : 1`, keyLine{}, false},
		{`"abc`, keyLine{}, false},
		{`a"b: c`, keyLine{}, false},
	}
	for _, test := range tests {
		got, ok, err := splitKey(test.input)
		if err != nil {
			t.Errorf("splitKey(%q): unexpected error: %v", test.input, err)
			continue
		}
		if ok != test.ok {
			t.Errorf("splitKey(%q): got ok=%v, want %v", test.input, ok, test.ok)
		} else if ok {
			if diff := cmp.Diff(got, test.want, cmp.AllowUnexported(keyLine{})); diff != "" {
				t.Errorf("splitKey(%q) (-got, +want):\n%s", test.input, diff)
			}
		}
	}

	if _, _, err := splitKey(`"a\x": 1`); err == nil {
		t.Error("splitKey with a bad escape: got nil, want error")
	}
}

func TestFoldKey(t *testing.T) {
	chain := ast.Object{ast.Field("b", ast.Object{ast.Field("c", ast.Object{ast.Field("d", 1)})})}
	tests := []struct {
		name    string
		parent  string
		key     string
		depth   int
		exclude []string
		want    string
	}{
		{"Unlimited", "", "a", -1, nil, "a.b.c.d"},
		{"Depth3", "", "a", 3, nil, "a.b.c"},
		{"Depth1", "", "a", 1, nil, "a"},
		{"Depth0", "", "a", 0, nil, "a.b.c.d"},
		{"ExcludeInner", "", "a", -1, []string{"a.b.c"}, "a.b.c"},
		{"ExcludeOther", "", "a", -1, []string{"b", "a.c"}, "a.b.c.d"},
		{"ExcludeKey", "", "a", -1, []string{"a"}, "a"},
		{"ExcludeParent", "x", "a", -1, []string{"x"}, "a"},
		{"ExcludeNested", "x", "a", -1, []string{"x.a.b"}, "a.b"},
		{"ExcludeLocal", "x", "a", -1, []string{"a.b"}, "a.b.c.d"},
		{"ExcludeArray", "p[0]", "a", -1, []string{"p"}, "a"},
		{"ExcludeIndexed", "p[0]", "a", -1, []string{"p[0].a.b"}, "a.b"},
		{"ExcludeSibling", "x", "a", -1, []string{"xa", "x.ab"}, "a.b.c.d"},
		{"UnsafeKey", "", "a-z", -1, nil, "a-z"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := &encoder{
				opts:    Options{KeyFolding: FoldSafe, FlattenDepth: test.depth},
				exclude: mapset.New(test.exclude...),
			}
			got, _, folded := e.foldKey(test.parent, test.key, chain)
			if got != test.want {
				t.Errorf("foldKey: got %q, want %q", got, test.want)
			}
			if folded != (got != test.key) {
				t.Errorf("foldKey: folded=%v for %q", folded, got)
			}
		})
	}

	e := &encoder{opts: Options{KeyFolding: FoldOff, FlattenDepth: -1}}
	if got, _, folded := e.foldKey("", "a", chain); folded || got != "a" {
		t.Errorf("foldKey with folding off: got (%q, %v), want (a, false)", got, folded)
	}
}

func TestExpandPath(t *testing.T) {
	var obj ast.Object
	obj = expandPath(obj, "a.b", ast.Int(1))
	obj = expandPath(obj, "a.c.d", ast.Int(2))
	obj = expandPath(obj, "x", ast.Int(3))
	obj = expandPath(obj, "x.y", ast.Int(4))
	obj = expandPath(obj, "p.-q", ast.Int(5))
	obj = expandPath(obj, ".r", ast.Int(6))

	const want = `{"a":{"b":1,"c":{"d":2}},"x":{"y":4},"p.-q":5,".r":6}`
	if got := obj.JSON(); got != want {
		t.Errorf("expandPath: got %s, want %s", got, want)
	}
}

func TestEncodeTabularErrors(t *testing.T) {
	tests := []struct {
		name  string
		input ast.Array
		path  string
	}{
		{"Empty", ast.Array{}, "t"},
		{"NotObject", ast.Array{ast.Int(1)}, "t[0]"},
		{"SecondNotObject", ast.Array{ast.Object{ast.Field("a", 1)}, ast.String("x")}, "t[1]"},
		{"MissingKey", ast.Array{
			ast.Object{ast.Field("a", 1)},
			ast.Object{ast.Field("b", 2)},
		}, "t[1]"},
		{"ExtraKey", ast.Array{
			ast.Object{ast.Field("a", 1)},
			ast.Object{ast.Field("a", 2), ast.Field("b", 3)},
		}, "t[1]"},
		{"NotScalar", ast.Array{
			ast.Object{ast.Field("a", ast.Array{})},
		}, "t[0].a"},
	}
	e := &encoder{opts: DefaultOptions()}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := e.encodeTabular("t", test.input, "t")
			if !errors.Is(err, ErrTabular) {
				t.Fatalf("encodeTabular: got %v, want %v", err, ErrTabular)
			}
			var eerr *EncodeError
			if !errors.As(err, &eerr) {
				t.Fatalf("encodeTabular: error is %T, want *EncodeError", err)
			} else if eerr.Path != test.path {
				t.Errorf("encodeTabular: path is %q, want %q", eerr.Path, test.path)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  shape
	}{
		{nil, shapeScalar},
		{ast.Null, shapeScalar},
		{ast.String("x"), shapeScalar},
		{ast.Array{}, shapeEmptyArray},
		{ast.ArrayOf[any](1, "a", nil), shapePrimitiveArray},
		{ast.Array{ast.Object{ast.Field("a", 1)}}, shapeTabularArray},
		{ast.Array{ast.Object{}}, shapeMixedArray},
		{ast.Array{ast.Object{ast.Field("a", 1)}, ast.Int(2)}, shapeMixedArray},
		{ast.Object{}, shapeEmptyObject},
		{ast.Object{ast.Field("a", 1)}, shapeObject},
	}
	e := &encoder{opts: DefaultOptions()}
	for _, test := range tests {
		got, err := e.classify(test.input, "")
		if err != nil {
			t.Errorf("classify(%v): unexpected error: %v", test.input, err)
		} else if got != test.want {
			t.Errorf("classify(%v): got %v, want %v", test.input, got, test.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if diff := cmp.Diff(resolve(nil), DefaultOptions()); diff != "" {
		t.Errorf("resolve(nil) (-got, +want):\n%s", diff)
	}
	got := resolve(&Options{Indent: -3, Delimiter: 'x', FlattenDepth: -9})
	want := Options{Indent: DefaultIndent, Delimiter: Comma, FlattenDepth: -1}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("resolve (-got, +want):\n%s", diff)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input interface{ String() string }
		want  string
	}{
		{Comma, "comma"},
		{Tab, "tab"},
		{Pipe, "pipe"},
		{Delimiter(';'), `Delimiter(';')`},
		{FoldOff, "off"},
		{FoldSafe, "safe"},
		{FoldMode(9), "FoldMode(9)"},
		{LineCol{Line: 3, Column: 14}, "3:14"},
	}
	for _, test := range tests {
		if got := test.input.String(); got != test.want {
			t.Errorf("String: got %q, want %q", got, test.want)
		}
	}
}
