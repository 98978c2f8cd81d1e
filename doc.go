// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package toon implements an encoder and decoder for TOON, a line-oriented
// text notation for the JSON data model that uses indentation in place of
// braces and writes uniform arrays of objects as tables.
//
// Values are represented using the types of the [ast] package. An object
// is written one member per line, with nested objects indented beneath
// their key:
//
//	id: 42
//	owner:
//	  name: Alice
//	  active: true
//
// # Arrays
//
// Every array begins with a header giving its length in brackets. The form
// of the rest depends on the elements. An array of scalars is written inline:
//
//	tags[3]: red,green,blue
//
// An array of objects that share the same keys in the same order, and whose
// values are all scalars, is written as a table:
//
//	users[2]{id,name}:
//	  1,Alice
//	  2,Bob
//
// Any other array is written as a list of items:
//
//	mixed[3]:
//	  - 1
//	  - name: Carol
//	    role: admin
//	  - [2]: x,y
//
// The values of an inline array or a table row are separated by a comma by
// default. If Options.Delimiter is a tab or a vertical bar, the delimiter is
// also written in the header, just before the closing bracket:
//
//	nums[3|]: 1|2|3
//
// # Strings
//
// A string is written without quotation marks unless it would be mistaken
// for something else: a number, a Boolean, null, a key, a header, a list
// item, or a value containing the active delimiter. Quoted strings use five
// escapes: \\ \" \n \r and \t.
//
// # Encoding and Decoding
//
// Use Encode to render a value, and Decode to parse text:
//
//	text, err := toon.Encode(v, nil)
//	...
//	w, err := toon.Decode(text, nil)
//
// Both accept an *Options value to adjust the settings of a single call.
// A nil *Options means DefaultOptions. In case of error, Encode reports an
// error of concrete type *EncodeError and Decode an error of concrete type
// *DecodeError. Use errors.Is with the sentinel errors of this package to
// check for a particular kind of failure.
//
// # Key Folding
//
// If Options.KeyFolding is FoldSafe, the encoder writes a chain of objects
// that each have a single member as one dotted key:
//
//	a.b.c: 1
//
// If Options.ExpandPaths is true, the decoder expands an unquoted dotted key
// back into nested objects. Quoted keys are never expanded.
package toon
