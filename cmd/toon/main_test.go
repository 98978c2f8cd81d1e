// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/toon"
	"github.com/google/go-cmp/cmp"
)

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	writeConfig := func(name, text string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0600); err != nil {
			t.Fatalf("Write config: %v", err)
		}
		return path
	}
	basic := writeConfig("basic.yaml", "indent: 4\ndelimiter: pipe\n")
	folded := writeConfig("folded.yaml", "key_folding: safe\nflatten_depth: 2\n")

	with := func(f func(*toon.Options)) toon.Options {
		o := toon.DefaultOptions()
		f(&o)
		return o
	}
	tests := []struct {
		name   string
		config string
		args   []string
		want   toon.Options
	}{
		{"Defaults", "", nil, toon.DefaultOptions()},
		{"FlagsOnly", "", []string{"-delimiter", "tab", "-min-rows", "3", "-numbers-as-strings"},
			with(func(o *toon.Options) {
				o.Delimiter = toon.Tab
				o.MinRowsTabular = 3
				o.NumbersAsStrings = true
			})},
		{"ConfigOnly", basic, nil, with(func(o *toon.Options) {
			o.Indent = 4
			o.Delimiter = toon.Pipe
		})},
		{"FlagsOverConfig", basic, []string{"-indent", "3", "-fold"},
			with(func(o *toon.Options) {
				o.Indent = 3
				o.Delimiter = toon.Pipe
				o.KeyFolding = toon.FoldSafe
			})},
		{"UnsetFlagsKeepConfig", basic, []string{"-compact", "-newline"},
			with(func(o *toon.Options) {
				o.Indent = 4
				o.Delimiter = toon.Pipe
				o.NewlineFinal = true
			})},
		{"StrictBaseline", folded, nil, toon.DefaultOptions()},
		{"NotStrict", folded, []string{"-strict=false"}, with(func(o *toon.Options) {
			o.KeyFolding = toon.FoldSafe
			o.FlattenDepth = 2
			o.SpecStrict = false
		})},
		{"FoldOffOverConfig", folded, []string{"-strict=false", "-fold=false"},
			with(func(o *toon.Options) {
				o.FlattenDepth = 2
				o.SpecStrict = false
			})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := flag.NewFlagSet("toon", flag.ContinueOnError)
			fs.Bool("compact", false, "unrelated flag")
			registerCodecFlags(fs)
			if err := fs.Parse(test.args); err != nil {
				t.Fatalf("Parse %q: %v", test.args, err)
			}
			got, err := loadOptions(fs, test.config)
			if err != nil {
				t.Fatalf("loadOptions: unexpected error: %v", err)
			}
			if diff := cmp.Diff(got, test.want); diff != "" {
				t.Errorf("loadOptions (-got, +want):\n%s", diff)
			}
		})
	}

	t.Run("MissingConfig", func(t *testing.T) {
		fs := flag.NewFlagSet("toon", flag.ContinueOnError)
		registerCodecFlags(fs)
		if err := fs.Parse([]string{"-fold"}); err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if _, err := loadOptions(fs, filepath.Join(dir, "missing.yaml")); err == nil {
			t.Error("loadOptions with a missing config file: got nil, want error")
		}
	})
}
