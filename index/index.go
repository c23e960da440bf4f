// Package index builds the Definition/Property index of a document.
package index

import (
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtag/phrase"
	"github.com/c360studio/semtag/swagger"
	"github.com/c360studio/semtag/tag"
	"github.com/c360studio/semtag/vocabulary"
)

// Property is a named, typed field of a Definition.
type Property struct {
	Name       string
	Normalized phrase.Phrase
	Type       swagger.Type
}

// Definition is a named data model of the document.
type Definition struct {
	Name       string
	Normalized phrase.Phrase
	Properties []Property
}

// Index maps normalized Definition names to Definitions. Iteration order is
// by normalized name, then original name.
type Index struct {
	byKey   map[string]*Definition
	ordered []*Definition
}

// Build indexes every Definition of doc. All names are learned first so
// that segmentation can use words introduced anywhere in the document.
// On a normalized-name collision the later Definition wins. Definitions and
// properties whose names a tag cannot carry are left out.
func Build(doc *swagger.Document, vocab *vocabulary.Vocabulary, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}

	defs := doc.Definitions()
	for _, d := range defs {
		vocab.Learn(d.Key)
		for _, p := range swagger.Classify(d.Value).Properties {
			vocab.Learn(p.Key)
		}
	}

	ix := &Index{byKey: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if !(tag.Tag{Class: d.Key}).Representable() {
			logger.Debug("Definition name cannot be tagged", slog.String("definition", d.Key))
			continue
		}
		def := &Definition{
			Name:       d.Key,
			Normalized: vocab.Normalize(d.Key),
		}
		for _, p := range collectProperties(doc, d.Value, swagger.Path{"definitions", d.Key}, vocab) {
			if !(tag.Tag{Class: d.Key, Property: p.Name}).Representable() {
				logger.Debug("Property name cannot be tagged",
					slog.String("definition", d.Key),
					slog.String("property", p.Name))
				continue
			}
			def.Properties = append(def.Properties, p)
		}
		key := def.Normalized.String()
		if prev, ok := ix.byKey[key]; ok {
			logger.Debug("Definition name collision",
				slog.String("key", key),
				slog.String("replaced", prev.Name),
				slog.String("by", def.Name))
		}
		ix.byKey[key] = def
	}

	ix.ordered = make([]*Definition, 0, len(ix.byKey))
	for _, def := range ix.byKey {
		ix.ordered = append(ix.ordered, def)
	}
	sort.Slice(ix.ordered, func(i, j int) bool {
		a, b := ix.ordered[i], ix.ordered[j]
		ka, kb := a.Normalized.String(), b.Normalized.String()
		if ka != kb {
			return ka < kb
		}
		return a.Name < b.Name
	})
	return ix
}

// collectProperties gathers the immediate properties of a schema, merging
// allOf branches and following references but not descending into nested
// objects or arrays.
func collectProperties(doc *swagger.Document, n *yaml.Node, path swagger.Path, vocab *vocabulary.Vocabulary) []Property {
	var props []Property
	seen := make(map[string]bool)
	doc.Walk(n, path, swagger.Flags{FollowRef: true}, func(s swagger.Schema, _ swagger.Path) {
		for _, p := range s.Properties {
			if seen[p.Key] {
				continue
			}
			seen[p.Key] = true
			props = append(props, Property{
				Name:       p.Key,
				Normalized: vocab.Normalize(p.Key),
				Type:       swagger.Classify(p.Value).Type,
			})
		}
	})
	return props
}

// Definitions returns every Definition in iteration order.
func (ix *Index) Definitions() []*Definition {
	return ix.ordered
}

// Lookup finds a Definition by normalized name.
func (ix *Index) Lookup(p phrase.Phrase) (*Definition, bool) {
	def, ok := ix.byKey[p.String()]
	return def, ok
}

// ByName finds a Definition by its original name.
func (ix *Index) ByName(name string) (*Definition, bool) {
	for _, def := range ix.ordered {
		if def.Name == name {
			return def, true
		}
	}
	return nil, false
}

// Len returns the number of indexed Definitions.
func (ix *Index) Len() int {
	return len(ix.ordered)
}
