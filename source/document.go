package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/c360studio/semtag/swagger"
)

// ReadDocument reads and parses the document at path.
func ReadDocument(path string, logger *slog.Logger) (*swagger.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := swagger.Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// FormatFor returns the configured format, or the one implied by the
// output path when none is configured.
func FormatFor(path, configured string) swagger.Format {
	if configured != "" {
		return swagger.Format(configured)
	}
	return swagger.FormatFromPath(path)
}

// WriteDocument serializes doc and replaces the file at path atomically.
// It returns the bytes written.
func WriteDocument(doc *swagger.Document, path string, format swagger.Format) ([]byte, error) {
	data, err := doc.Marshal(format)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := atomicwriter.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return data, nil
}

// OutputPath decides where the annotated copy of input goes. In place
// rewrites the input; otherwise the file keeps its base name under dir.
func OutputPath(input, dir string, inPlace bool) (string, error) {
	switch {
	case inPlace:
		return input, nil
	case dir != "":
		return filepath.Join(dir, filepath.Base(input)), nil
	default:
		return "", fmt.Errorf("no output directory for %s", input)
	}
}

// ContentHash returns the hex SHA-256 of content.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
