// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of TOON and JSON strings.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// Unquote decodes the body of a quoted TOON string. The input must have the
// enclosing double quotation marks already removed.
//
// The escapes \\, \", \n, \r, and \t are replaced with their unescaped
// equivalents. Unquote reports an error for an incomplete or unknown escape.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		switch c := src.At(0); c {
		case '"', '\\':
			dec = append(dec, c)
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		default:
			return nil, fmt.Errorf("invalid escape %q", `\`+string(rune(c)))
		}
		src = src.SliceFrom(1)

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
	}
}

// Closing returns the offset in src of the first double quotation mark that
// is not escaped by a backslash, or -1 if there is none. The input should
// begin just after an opening quotation mark.
func Closing(src mem.RO) int {
	for i := 0; i < src.Len(); i++ {
		switch src.At(i) {
		case '\\':
			i++ // skip the escaped byte
		case '"':
			return i
		}
	}
	return -1
}
