// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config constructs toon.Options from loosely-typed settings, such
// as those read from a YAML, TOML, or JSON configuration file.
//
// Settings are given as layers of key-value maps. The first layer holds
// global settings and later layers hold explicit overrides:
//
//	opts, err := config.FromMap(global, map[string]any{"indent": 4})
//
// The recognized keys are:
//
//	Key                     Type          Default
//	indent                  int           2
//	delimiter               string        "," (also "\t", "|", "comma", "tab", "pipe")
//	min_rows_tabular        int           1
//	newline_final           bool          false
//	key_folding             string        "off" (or "safe")
//	flatten_depth           int           -1 (0 or less is unlimited)
//	folding_exclude         []string      none
//	expand_paths            bool          false
//	throw_on_decode_error   bool          true
//	numbers_as_strings      bool          false
//	spec_strict             bool          true
//
// When spec_strict is true, the strict baseline (see toon.Options.StrictBaseline)
// is applied after the global layer, so explicit overrides can still enable
// key folding or path expansion.
package config

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creachadair/toon"
	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Keys recognized in a settings layer.
const (
	KeyIndent             = "indent"
	KeyDelimiter          = "delimiter"
	KeyMinRowsTabular     = "min_rows_tabular"
	KeyNewlineFinal       = "newline_final"
	KeyKeyFolding         = "key_folding"
	KeyFlattenDepth       = "flatten_depth"
	KeyFoldingExclude     = "folding_exclude"
	KeyExpandPaths        = "expand_paths"
	KeyThrowOnDecodeError = "throw_on_decode_error"
	KeyNumbersAsStrings   = "numbers_as_strings"
	KeySpecStrict         = "spec_strict"
)

// FromMap returns the default options updated by the given layers of
// settings. The first layer is the global layer; the rest are overrides,
// applied in order. The value of spec_strict is taken from the last layer
// that sets it.
//
// An unrecognized delimiter is replaced by a comma. Any other unrecognized
// key or value of the wrong type is an error.
func FromMap(layers ...map[string]any) (toon.Options, error) {
	strict := true
	for _, layer := range layers {
		if v, ok := layer[KeySpecStrict]; ok {
			b, ok := v.(bool)
			if !ok {
				return toon.Options{}, typeError(KeySpecStrict, "bool", v)
			}
			strict = b
		}
	}

	opts := toon.DefaultOptions()
	for i, layer := range layers {
		if err := apply(&opts, layer); err != nil {
			return toon.Options{}, err
		}
		if i == 0 && strict {
			opts = opts.StrictBaseline()
		}
	}
	opts.SpecStrict = strict
	return opts, nil
}

// Load reads a settings file and returns the options it describes, with
// overrides applied on top. The format of the file is chosen by its
// extension: .yaml or .yml for YAML, .toml for TOML, and .json, .jsonc, or
// .hujson for JSON with optional comments and trailing commas.
func Load(path string, overrides map[string]any) (toon.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return toon.Options{}, err
	}
	global, err := parseFile(path, data)
	if err != nil {
		return toon.Options{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return FromMap(global, overrides)
}

func parseFile(path string, data []byte) (map[string]any, error) {
	m := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case ".json", ".jsonc", ".hujson":
		v, err := hujson.Parse(data)
		if err != nil {
			return nil, err
		}
		v.Standardize()
		if err := json.Unmarshal(v.Pack(), &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	return m, nil
}

// apply updates opts with the settings in layer. Keys are visited in sorted
// order so that errors are reported deterministically.
func apply(opts *toon.Options, layer map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(layer)) {
		v := layer[key]
		var ok bool
		switch key {
		case KeyIndent:
			opts.Indent, ok = toInt(v)
		case KeyDelimiter:
			var s string
			if s, ok = v.(string); ok {
				opts.Delimiter = parseDelimiter(s)
			}
		case KeyMinRowsTabular:
			opts.MinRowsTabular, ok = toInt(v)
		case KeyNewlineFinal:
			opts.NewlineFinal, ok = v.(bool)
		case KeyKeyFolding:
			var s string
			if s, ok = v.(string); ok {
				switch strings.ToLower(s) {
				case "off", "":
					opts.KeyFolding = toon.FoldOff
				case "safe":
					opts.KeyFolding = toon.FoldSafe
				default:
					return fmt.Errorf("config: key %q: unknown folding mode %q", key, s)
				}
			}
		case KeyFlattenDepth:
			opts.FlattenDepth, ok = toInt(v)
		case KeyFoldingExclude:
			opts.FoldingExclude, ok = toStrings(v)
		case KeyExpandPaths:
			opts.ExpandPaths, ok = v.(bool)
		case KeyThrowOnDecodeError:
			opts.ThrowOnDecodeError, ok = v.(bool)
		case KeyNumbersAsStrings:
			opts.NumbersAsStrings, ok = v.(bool)
		case KeySpecStrict:
			ok = true // handled by FromMap
		default:
			return fmt.Errorf("config: unknown key %q", key)
		}
		if !ok {
			return typeError(key, wantType[key], v)
		}
	}
	return nil
}

var wantType = map[string]string{
	KeyIndent:             "int",
	KeyDelimiter:          "string",
	KeyMinRowsTabular:     "int",
	KeyNewlineFinal:       "bool",
	KeyKeyFolding:         "string",
	KeyFlattenDepth:       "int",
	KeyFoldingExclude:     "list of strings",
	KeyExpandPaths:        "bool",
	KeyThrowOnDecodeError: "bool",
	KeyNumbersAsStrings:   "bool",
}

func typeError(key, want string, got any) error {
	return fmt.Errorf("config: key %q: got %T, want %s", key, got, want)
}

// parseDelimiter maps a delimiter setting to a toon.Delimiter. Unknown
// settings map to toon.Comma.
func parseDelimiter(s string) toon.Delimiter {
	switch strings.ToLower(s) {
	case "\t", "tab":
		return toon.Tab
	case "|", "pipe":
		return toon.Pipe
	}
	return toon.Comma
}

// toInt converts the numeric types produced by the supported file decoders
// to an int. Floating-point values must be integral.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int(t), true
		}
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, len(t))
		for i, elt := range t {
			s, ok := elt.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
