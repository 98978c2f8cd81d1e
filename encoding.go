// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"errors"
	"strings"

	"github.com/creachadair/toon/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a quoted TOON string. Backslash, double quote,
// newline, carriage return, and tab are escaped, and double quotation marks
// are added.
func Quote(src string) string { return `"` + string(escape.Quote(mem.S(src))) + `"` }

// Unquote decodes a quoted TOON string. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error for an incomplete or unknown escape, or if src is
// not enclosed in quotation marks.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	body := mem.S(src[1 : len(src)-1])
	if escape.Closing(body) >= 0 {
		return "", errors.New("unescaped quotation mark")
	}
	dec, err := escape.Unquote(body)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
