// internal/sheetio/sheetio.go
// Package sheetio loads and saves samplesheet documents as JSON or YAML.
// The format is always caller-specified, never sniffed from the file.
package sheetio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tidyss-core/samplesheet"
	"tidyss/internal/filelock"
	"tidyss/internal/jsonutil"
)

// Supported samplesheet formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for any format other than json or yaml,
// before any I/O is attempted.
var ErrUnsupportedFormat = errors.New("unsupported samplesheet format")

// Format registries (format → handler), first checked on every call.
var (
	encoders = map[string]func(io.Writer, *samplesheet.Map) error{
		FormatJSON: encodeJSON,
		FormatYAML: encodeYAML,
	}
	decoders = map[string]func([]byte, *samplesheet.Map) error{
		FormatJSON: func(data []byte, doc *samplesheet.Map) error { return json.Unmarshal(data, doc) },
		FormatYAML: func(data []byte, doc *samplesheet.Map) error { return yaml.Unmarshal(data, doc) },
	}
)

func encodeJSON(w io.Writer, doc *samplesheet.Map) error {
	return jsonutil.EncodePretty(w, doc)
}

func encodeYAML(w io.Writer, doc *samplesheet.Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Write serializes doc to w in the requested format.
func Write(w io.Writer, doc *samplesheet.Map, format string) error {
	enc, ok := encoders[format]
	if !ok {
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return enc(w, doc)
}

// Save writes doc to path under a file lock with an atomic rename.
func Save(path string, doc *samplesheet.Map, format string) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc, format); err != nil {
		return err
	}
	return filelock.LockAndWrite(path, buf.Bytes())
}

// Load reads the document at path in the requested format.
func Load(path, format string) (*samplesheet.Map, error) {
	dec, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := samplesheet.NewMap()
	if err := dec(data, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
