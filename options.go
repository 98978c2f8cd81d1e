// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import "fmt"

// A Delimiter separates the values of an inline array or a tabular row.
type Delimiter byte

// Constants defining the supported delimiters.
const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

// Valid reports whether d is one of the supported delimiters.
func (d Delimiter) Valid() bool { return d == Comma || d == Tab || d == Pipe }

func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	}
	return fmt.Sprintf("Delimiter(%q)", rune(d))
}

// suffix returns the marker written into an array header for d. The default
// comma delimiter is implicit.
func (d Delimiter) suffix() string {
	if d == Comma {
		return ""
	}
	return string(rune(d))
}

// A FoldMode selects whether the encoder folds chains of single-key objects
// into dotted keys.
type FoldMode int

// Constants defining the key folding modes.
const (
	FoldOff  FoldMode = iota // never fold
	FoldSafe                 // fold chains whose keys are all safe identifiers
)

func (m FoldMode) String() string {
	switch m {
	case FoldOff:
		return "off"
	case FoldSafe:
		return "safe"
	}
	return fmt.Sprintf("FoldMode(%d)", int(m))
}

// Default option values.
const (
	DefaultIndent         = 2
	DefaultMinRowsTabular = 1
)

// Options carry the settings for a single call to Encode or Decode. The
// codec reads but never modifies them. A nil *Options is equivalent to the
// result of DefaultOptions.
type Options struct {
	// Indent is the number of spaces per indentation level. Values less than
	// 1 are replaced by DefaultIndent.
	Indent int

	// Delimiter separates the values of inline arrays and tabular rows.
	// An unsupported value is replaced by Comma.
	Delimiter Delimiter

	// MinRowsTabular is the minimum number of uniform objects in an array for
	// the encoder to prefer the tabular form.
	MinRowsTabular int

	// NewlineFinal, if true, makes the encoder end its output with a newline.
	NewlineFinal bool

	// KeyFolding selects whether the encoder folds single-key object chains
	// into dotted keys.
	KeyFolding FoldMode

	// FlattenDepth is the maximum number of segments in a folded key.
	// Zero or a negative value means there is no limit, and 1 disables
	// folding.
	FlattenDepth int

	// FoldingExclude lists key paths the encoder must not fold through.
	// Paths are written from the root of the value, as in "a.b" or
	// "items[0].meta", and excluding a path also excludes everything
	// beneath it.
	FoldingExclude []string

	// ExpandPaths, if true, makes the decoder expand unquoted dotted keys into
	// nested objects.
	ExpandPaths bool

	// ThrowOnDecodeError, if true, makes Decode report malformed input as an
	// error. If false, Decode returns a null value and no error instead.
	ThrowOnDecodeError bool

	// NumbersAsStrings, if true, makes the decoder return numeric tokens as
	// strings with their original text.
	NumbersAsStrings bool

	// SpecStrict, if true, makes Decode return an empty object for empty
	// input. Otherwise empty input decodes as null.
	SpecStrict bool
}

// DefaultOptions returns the default option settings.
func DefaultOptions() Options {
	return Options{
		Indent:             DefaultIndent,
		Delimiter:          Comma,
		MinRowsTabular:     DefaultMinRowsTabular,
		KeyFolding:         FoldOff,
		FlattenDepth:       -1,
		ThrowOnDecodeError: true,
		SpecStrict:         true,
	}
}

// StrictBaseline returns a copy of o with the settings that strict
// conformance requires: no trailing newline, no key folding, unlimited
// flatten depth, and no path expansion. Other fields are unchanged.
func (o Options) StrictBaseline() Options {
	o.NewlineFinal = false
	o.KeyFolding = FoldOff
	o.FlattenDepth = -1
	o.ExpandPaths = false
	return o
}

// resolve returns a normalized copy of the options at opts.
func resolve(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}
	o := *opts
	if o.Indent < 1 {
		o.Indent = DefaultIndent
	}
	if !o.Delimiter.Valid() {
		o.Delimiter = Comma
	}
	if o.FlattenDepth < 0 {
		o.FlattenDepth = -1
	}
	return o
}
