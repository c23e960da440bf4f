// Package source finds, reads, writes and watches Swagger document files.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoInputs is returned when the given patterns match no document.
var ErrNoInputs = errors.New("no input documents")

// Extensions lists the file extensions treated as documents when expanding
// glob patterns.
var Extensions = []string{".yaml", ".yml", ".json"}

// ResolveInputs expands file names and glob patterns (with ** support) into
// a sorted, de-duplicated list of absolute document paths. Plain file names
// must exist; glob matches are filtered to regular files with a document
// extension.
func ResolveInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	sort.Strings(out)
	return out, nil
}

func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory: %s", absPath)
		}
		return []string{absPath}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		if !isDocument(match) {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		absPath, err := filepath.Abs(match)
		if err != nil {
			return nil, err
		}
		files = append(files, absPath)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %s", ErrNoInputs, pattern)
	}
	return files, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func isDocument(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
