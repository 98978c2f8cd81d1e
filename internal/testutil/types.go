// Package testutil defines support code for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/toon/ast"
)

// MustParse parses src as JSON, which may include comments and trailing
// commas, and fails t if that is not possible.
func MustParse(t testing.TB, src string) ast.Value {
	t.Helper()
	v, err := ast.FromJSON([]byte(src))
	if err != nil {
		t.Fatalf("Parse %q: %v", src, err)
	}
	return v
}

// A Case is a pair of fixture files, one holding a JSON value and the other
// the TOON text for that value with default options.
type Case struct {
	Name  string    // base name of the files, without extension
	Value ast.Value // the parsed contents of name.json
	Text  string    // the contents of name.toon, without a trailing newline
}

// LoadCases reads the fixture pairs in dir. Every file name.json must have a
// matching name.toon.
func LoadCases(t testing.TB, dir string) []Case {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("List fixtures: %v", err)
	} else if len(paths) == 0 {
		t.Fatalf("No fixtures found in %q", dir)
	}
	var out []Case
	for _, path := range paths {
		jdata, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Read fixture: %v", err)
		}
		base := strings.TrimSuffix(path, ".json")
		tdata, err := os.ReadFile(base + ".toon")
		if err != nil {
			t.Fatalf("Read fixture: %v", err)
		}
		out = append(out, Case{
			Name:  filepath.Base(base),
			Value: MustParse(t, string(jdata)),
			Text:  strings.TrimSuffix(string(tdata), "\n"),
		})
	}
	return out
}
