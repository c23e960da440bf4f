// Package swagger is a mutable view of a Swagger 2.0 description backed by
// yaml.v3 nodes, so that key order and formatting survive a round trip and
// only description fields change.
package swagger

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is a parsed description. It is not safe for concurrent use.
type Document struct {
	file   *yaml.Node
	root   *yaml.Node
	logger *slog.Logger
}

// Parse decodes a YAML or JSON document and checks its top-level shape.
func Parse(data []byte, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var file yaml.Node
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSpec, err)
	}
	if file.Kind != yaml.DocumentNode || len(file.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedSpec)
	}

	root := deref(file.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrMalformedSpec)
	}
	for _, key := range []string{"paths", "definitions"} {
		if v := lookup(root, key); v != nil && v.Kind != yaml.MappingNode && v.ShortTag() != "!!null" {
			return nil, fmt.Errorf("%w: %s is not a mapping", ErrMalformedSpec, key)
		}
	}

	return &Document{file: &file, root: root, logger: logger}, nil
}

// Marshal serializes the document in the given format.
func (d *Document) Marshal(format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := writeJSON(&buf, d.root, 0); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		buf.WriteByte('\n')
	case FormatYAML, "":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.file); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return buf.Bytes(), nil
}

// Definitions returns the declared Definitions in document order.
func (d *Document) Definitions() []Entry {
	return entries(lookup(d.root, "definitions"))
}

// Definition returns the schema of a named Definition.
func (d *Document) Definition(name string) (*yaml.Node, bool) {
	n := lookup(lookup(d.root, "definitions"), name)
	return n, n != nil
}
