// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/creachadair/mds/mstr"
)

// A line is a single non-blank line of TOON text.
type line struct {
	num   int    // source line number, 1-based; 0 for encoder output
	col   int    // byte offset of text in the source line
	depth int    // indentation level
	text  string // content, without indentation or trailing space
}

// scanLines splits text into lines, and reports an error if the indentation
// of any line is not a multiple of indent spaces. Line endings may be LF,
// CRLF, or CR. Blank lines are discarded.
func scanLines(text string, indent int) ([]line, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []line
	for i, raw := range mstr.Lines(text) {
		s := strings.TrimRightFunc(raw, unicode.IsSpace)
		if s == "" {
			continue
		}
		n := len(s) - len(strings.TrimLeft(s, " "))
		if s[n] == '\t' {
			return nil, &DecodeError{
				Location: LineCol{Line: i + 1, Column: n},
				Message:  "tab in indentation",
				err:      ErrIndent,
			}
		} else if n%indent != 0 {
			return nil, &DecodeError{
				Location: LineCol{Line: i + 1, Column: n},
				Message:  fmt.Sprintf("indentation %d is not a multiple of %d", n, indent),
				err:      ErrIndent,
			}
		}
		out = append(out, line{num: i + 1, col: n, depth: n / indent, text: s[n:]})
	}
	return out, nil
}

// renderLines joins lines into text, indenting each by indent spaces per
// level.
func renderLines(lines []line, indent int) string {
	var sb strings.Builder
	var pad []string
	for i, ln := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for len(pad) <= ln.depth {
			pad = append(pad, strings.Repeat(" ", len(pad)*indent))
		}
		sb.WriteString(pad[ln.depth])
		sb.WriteString(ln.text)
	}
	return sb.String()
}

// shiftLines adds n to the depth of each line in place, and returns lines.
func shiftLines(lines []line, n int) []line {
	for i := range lines {
		lines[i].depth += n
	}
	return lines
}
