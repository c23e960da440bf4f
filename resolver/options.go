package resolver

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/semtag/tag"
)

// OperationStyle selects what goes into the operation segment of a guessed
// operation tag.
type OperationStyle string

const (
	// StyleVerb writes the lexicon verb, e.g. <meqa Pet..update>.
	StyleVerb OperationStyle = "verb"
	// StyleMethod writes the HTTP method the verb implies, e.g. <meqa Pet..put>.
	StyleMethod OperationStyle = "method"
)

// SiteKind classifies the places a tag can be written to.
type SiteKind string

const (
	SiteParameter SiteKind = "parameter"
	SiteLeaf      SiteKind = "leaf"
	SiteObject    SiteKind = "object"
	SiteOperation SiteKind = "operation"
)

// Observer is told about every site the resolver examines and every tag it
// writes.
type Observer interface {
	Visited(kind SiteKind)
	Tagged(kind SiteKind, t tag.Tag, cost float64)
}

// Options tune matching.
type Options struct {
	// SimilarityThreshold is the score a description word must exceed to
	// count as an operation verb.
	SimilarityThreshold float64
	// MinObjectProperties is the fewest properties a schema needs before
	// whole-object Definition detection is attempted.
	MinObjectProperties int
	// OperationStyle selects the operation segment of guessed operation tags.
	OperationStyle OperationStyle

	Observer Observer
	Logger   *slog.Logger
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.33,
		MinObjectProperties: 3,
		OperationStyle:      StyleVerb,
	}
}

// WithDefaults fills zero-valued tuning fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.SimilarityThreshold == 0 {
		o.SimilarityThreshold = def.SimilarityThreshold
	}
	if o.MinObjectProperties == 0 {
		o.MinObjectProperties = def.MinObjectProperties
	}
	if o.OperationStyle == "" {
		o.OperationStyle = def.OperationStyle
	}
	return o
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be between 0 and 1, got %v", o.SimilarityThreshold)
	}
	if o.MinObjectProperties < 1 {
		return fmt.Errorf("min object properties must be positive, got %d", o.MinObjectProperties)
	}
	switch o.OperationStyle {
	case StyleVerb, StyleMethod:
	default:
		return fmt.Errorf("unknown operation style %q", o.OperationStyle)
	}
	return nil
}

type nopObserver struct{}

func (nopObserver) Visited(SiteKind) {}
func (nopObserver) Tagged(SiteKind, tag.Tag, float64) {}
