// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program toon converts between JSON and TOON text.
//
// Usage:
//
//	toon [flags] encode [file]   # JSON (or JWCC) to TOON
//	toon [flags] decode [file]   # TOON to JSON
//	toon [flags] stats [file]    # compare the sizes of JSON and TOON
//
// If no file is named, input is read from stdin. Codec settings are read
// from the file named by -config, if any, and then from the flags that are
// set explicitly on the command line.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/toon"
	"github.com/creachadair/toon/ast"
	"github.com/creachadair/toon/config"
	json "github.com/goccy/go-json"
)

var (
	configPath = flag.String("config", "", "Read codec settings from this YAML, TOML, or JSON file")
	selectPath = flag.String("select", "", "Select the value at this path (e.g., users[0].name)")
	compact    = flag.Bool("compact", false, "Write decoded JSON without indentation")
)

// codecFlags maps the names of flags that override codec settings to the
// corresponding configuration keys.
var codecFlags = map[string]string{
	"indent":             config.KeyIndent,
	"delimiter":          config.KeyDelimiter,
	"min-rows":           config.KeyMinRowsTabular,
	"newline":            config.KeyNewlineFinal,
	"fold":               config.KeyKeyFolding,
	"flatten-depth":      config.KeyFlattenDepth,
	"expand":             config.KeyExpandPaths,
	"strict":             config.KeySpecStrict,
	"numbers-as-strings": config.KeyNumbersAsStrings,
}

// registerCodecFlags defines the flags for codec settings on fs.
func registerCodecFlags(fs *flag.FlagSet) {
	fs.Int("indent", toon.DefaultIndent, "Spaces per indentation level")
	fs.String("delimiter", "comma", "Array delimiter (comma, tab, pipe)")
	fs.Int("min-rows", toon.DefaultMinRowsTabular, "Minimum rows for a tabular array")
	fs.Bool("newline", false, "End encoded output with a newline")
	fs.Bool("fold", false, "Fold single-key object chains into dotted keys")
	fs.Int("flatten-depth", -1, "Maximum segments in a folded key (-1 for no limit)")
	fs.Bool("expand", false, "Expand dotted keys into nested objects when decoding")
	fs.Bool("strict", true, "Apply the strict baseline to configured settings")
	fs.Bool("numbers-as-strings", false, "Decode numbers as strings")
}

func init() {
	registerCodecFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage: %[1]s [flags] encode|decode|stats [file]

Convert JSON to TOON (encode), TOON to JSON (decode), or report the size
of a JSON document in both notations (stats).

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("toon: ")

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	opts, err := loadOptions(flag.CommandLine, *configPath)
	if err != nil {
		log.Fatalf("Options: %v", err)
	}
	input, err := readInput(flag.Arg(1))
	if err != nil {
		log.Fatalf("Reading input: %v", err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "encode":
		v := mustSelect(mustParseJSON(input))
		text, err := toon.Encode(v, &opts)
		if err != nil {
			log.Fatalf("Encode: %v", err)
		}
		writeOutput(text, opts.NewlineFinal)

	case "decode":
		v, err := toon.Decode(string(input), &opts)
		if err != nil {
			log.Fatalf("Decode: %v", err)
		}
		v = mustSelect(v)
		out := []byte(v.JSON())
		if !*compact {
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				log.Fatalf("Formatting output: %v", err)
			}
			out = buf.Bytes()
		}
		writeOutput(string(out), false)

	case "stats":
		v := mustSelect(mustParseJSON(input))
		text, err := toon.Encode(v, &opts)
		if err != nil {
			log.Fatalf("Encode: %v", err)
		}
		compactJSON := v.JSON()
		fmt.Printf("json:    %d bytes (input)\n", len(input))
		fmt.Printf("compact: %d bytes\n", len(compactJSON))
		fmt.Printf("toon:    %d bytes (%.1f%% of compact JSON)\n",
			len(text), 100*float64(len(text))/float64(max(len(compactJSON), 1)))

	default:
		log.Fatalf("Unknown command %q (want encode, decode, or stats)", cmd)
	}
}

// loadOptions constructs codec options from the config file at path, if it
// is not empty, and the codec flags set explicitly in fs. Flags take
// precedence over the file.
func loadOptions(fs *flag.FlagSet, path string) (toon.Options, error) {
	overrides := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		key, ok := codecFlags[f.Name]
		if !ok {
			return
		}
		v := f.Value.(flag.Getter).Get()
		if key == config.KeyKeyFolding {
			if v.(bool) {
				v = "safe"
			} else {
				v = "off"
			}
		}
		overrides[key] = v
	})
	if path != "" {
		return config.Load(path, overrides)
	}
	return config.FromMap(nil, overrides)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func mustParseJSON(data []byte) ast.Value {
	v, err := ast.FromJSON(data)
	if err != nil {
		log.Fatalf("Parse JSON: %v", err)
	}
	return v
}

func mustSelect(v ast.Value) ast.Value {
	if *selectPath == "" {
		return v
	}
	path, err := ast.ParsePath(*selectPath)
	if err != nil {
		log.Fatalf("Invalid -select path: %v", err)
	}
	out, err := ast.Path(v, path...)
	if err != nil {
		log.Fatalf("Select %q: %v", *selectPath, err)
	}
	return out
}

// writeOutput writes text to stdout with a trailing newline, unless the text
// already ends with one.
func writeOutput(text string, hasNewline bool) {
	if !hasNewline {
		text += "\n"
	}
	if _, err := io.WriteString(os.Stdout, text); err != nil {
		log.Fatalf("Writing output: %v", err)
	}
}
