// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by EncodeError and DecodeError. Use errors.Is to
// check which kind of failure occurred.
var (
	// ErrUnsupportedType reports a value outside the tree model.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrTabular reports a tabular array whose rows do not match its header.
	ErrTabular = errors.New("invalid tabular array")

	// ErrIndent reports indentation that is not a multiple of the indent
	// width, or a line at an unexpected depth.
	ErrIndent = errors.New("invalid indentation")

	// ErrEndOfInput reports input that ends where a value is required.
	ErrEndOfInput = errors.New("unexpected end of input")

	// ErrHeader reports a malformed array header.
	ErrHeader = errors.New("invalid array header")

	// ErrLength reports an array or row whose length differs from its
	// declared count.
	ErrLength = errors.New("length mismatch")

	// ErrSyntax reports a malformed line or token.
	ErrSyntax = errors.New("syntax error")

	// ErrExtraInput reports input remaining after a complete document.
	ErrExtraInput = errors.New("extra input after value")
)

// EncodeError is the concrete type of errors reported by Encode.
type EncodeError struct {
	Path    string // dotted path of the offending value, "" for the root
	Message string

	err error
}

// Error satisfies the error interface.
func (e *EncodeError) Error() string {
	if e.Path == "" {
		return "encode: " + e.Message
	}
	return fmt.Sprintf("encode %s: %s", e.Path, e.Message)
}

// Unwrap supports error wrapping.
func (e *EncodeError) Unwrap() error { return e.err }

// DecodeError is the concrete type of errors reported by Decode.
type DecodeError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *DecodeError) Unwrap() error { return e.err }
