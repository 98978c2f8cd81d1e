// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

// FromJSON parses a single JSON value from data, preserving the order of
// object members. The input may use the JWCC extensions (comments and
// trailing commas), which are removed before parsing. Numbers without a
// fraction or exponent that fit in 64 bits become Int; other numbers become
// Float. Data after the first value is an error. Duplicate keys keep the
// position of their first occurrence and the value of their last.
func FromJSON(data []byte) (Value, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	v, err := parseJSON(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return v, errors.New("extra data after value")
	}
	return v, nil
}

func parseJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	} else if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj Object
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key %v", kt)
				}
				v, err := parseJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if obj == nil {
				obj = Object{}
			}
			return obj, closeJSON(dec, '}')
		case '[':
			arr := Array{}
			for dec.More() {
				v, err := parseJSON(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			return arr, closeJSON(dec, ']')
		default:
			return nil, fmt.Errorf("unexpected %q", rune(t))
		}
	case string:
		return String(t), nil
	case json.Number:
		return parseNumber(string(t))
	case bool:
		return Bool(t), nil
	case nil:
		return Null, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func closeJSON(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	} else if tok != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

// parseNumber converts the text of a JSON number into an Int if it has no
// fraction or exponent and fits, otherwise a Float.
func parseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if z, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(z), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return Float(f), nil
}
