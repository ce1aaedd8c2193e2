package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// ParseFormat parses "json" or "yaml" ("yml" is accepted too).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document format %q", s)
}

// =============================================================================
// Reading
// =============================================================================

// ReadFile reads and validates the document at path. The format follows
// the file extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rerrors.Wrap(rerrors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes and validates a document from r. Unknown fields are
// rejected so that misspelled modifiers do not pass silently. Read does
// not close r.
func Read(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "decode json document")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, rerrors.New(rerrors.ErrCodeInvalidFormat, "empty yaml document")
			}
			return nil, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "decode yaml document")
		}
	default:
		return nil, rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Parse is Read for in-memory data.
func Parse(data []byte, format Format) (*Document, error) {
	return Read(bytes.NewReader(data), format)
}

// =============================================================================
// Writing
// =============================================================================

// Marshal encodes the document. JSON output is indented.
func Marshal(doc *Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(doc, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the document to w.
func Write(doc *Document, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return rerrors.Wrap(rerrors.ErrCodeInternal, err, "encode json document")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return rerrors.Wrap(rerrors.ErrCodeInternal, err, "encode yaml document")
		}
		return enc.Close()
	default:
		return rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	return nil
}

// WriteFile writes the document to path in the format of its extension.
func WriteFile(doc *Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
