// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/creachadair/toon/ast"
)

var (
	// numericLike matches strings a reader could mistake for a number,
	// including forms with redundant leading zeroes. Such strings are quoted.
	numericLike = regexp.MustCompile(`^-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

	// numericToken matches the bare tokens the decoder treats as numbers.
	numericToken = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)
)

// isScalar reports whether v is null, a Boolean, a number, or a string.
// A nil value counts as null.
func isScalar(v ast.Value) bool {
	switch v.(type) {
	case nil, ast.Bool, ast.Int, ast.Float, ast.String:
		return true
	}
	return v == ast.Null
}

// encodeScalar renders a scalar value as a token, quoting strings as needed
// for delimiter d. It reports false if v is not a scalar.
func encodeScalar(v ast.Value, d Delimiter) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "null", true
	case ast.Bool:
		return strconv.FormatBool(bool(t)), true
	case ast.Int:
		return strconv.FormatInt(int64(t), 10), true
	case ast.Float:
		return formatFloat(float64(t)), true
	case ast.String:
		return encodeString(string(t), d), true
	}
	if v == ast.Null {
		return "null", true
	}
	return "", false
}

// formatFloat renders f in its shortest decimal form without an exponent.
// Non-finite values have no representation and become null.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	} else if f == 0 {
		return "0" // includes negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// encodeString renders s bare if that is unambiguous, otherwise quoted.
func encodeString(s string, d Delimiter) string {
	if isBare(s, d) {
		return s
	}
	return Quote(s)
}

// isBare reports whether s can be written without quotation marks in a
// context where d is the active delimiter.
func isBare(s string, d Delimiter) bool {
	switch s {
	case "", "-", "null", "true", "false":
		return false
	}
	if strings.HasPrefix(s, "- ") || numericLike.MatchString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == rune(d) {
			return false
		}
		switch r {
		case ':', '{', '}', '[', ']', '"', '\\':
			return false
		}
	}
	return true
}

// decodeScalar converts a single token into a value.
func decodeScalar(tok string, o *Options) (ast.Value, error) {
	switch tok {
	case "null":
		return ast.Null, nil
	case "true":
		return ast.Bool(true), nil
	case "false":
		return ast.Bool(false), nil
	case "[]":
		return ast.Array{}, nil
	case "{}":
		return ast.Object{}, nil
	}
	if strings.HasPrefix(tok, `"`) {
		s, err := Unquote(tok)
		if err != nil {
			return nil, err
		}
		return ast.String(s), nil
	}
	if numericToken.MatchString(tok) {
		if o.NumbersAsStrings {
			return ast.String(tok), nil
		}
		return parseNumber(tok), nil
	}
	return ast.String(tok), nil
}

// parseNumber converts a numeric token to an Int if it has no fraction or
// exponent and fits in 64 bits, otherwise to a Float. Tokens out of the
// range of a float64 saturate to infinity.
func parseNumber(tok string) ast.Value {
	if !strings.ContainsAny(tok, ".eE") {
		if z, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return ast.Int(z)
		}
	}
	f, _ := strconv.ParseFloat(tok, 64)
	return ast.Float(f)
}

// splitDelimited splits s at each occurrence of d outside a quoted string,
// and trims surrounding spaces from each piece.
func splitDelimited(s string, d Delimiter) []string {
	var out []string
	start, quoted := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && quoted:
			i++ // skip the escaped byte
		case c == '"':
			quoted = !quoted
		case c == byte(d) && !quoted:
			out = append(out, strings.Trim(s[start:i], " "))
			start = i + 1
		}
	}
	return append(out, strings.Trim(s[start:], " "))
}
