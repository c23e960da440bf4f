// Package nlp provides the language capabilities the tagger relies on:
// lemmatization, word costs for segmenting concatenated identifiers, and a
// word similarity measure used to guess operation verbs.
package nlp

import "errors"

// ErrModelUnavailable is returned when a language model cannot be initialized,
// for example because its word list is missing or empty.
var ErrModelUnavailable = errors.New("language model unavailable")

// Model is the pluggable language resource.
type Model interface {
	// Lemmatize reduces a lowercase word to its canonical form.
	Lemmatize(word string) string

	// WordCost returns the segmentation cost of a known word. Lower is more
	// probable. ok is false for words the model does not know.
	WordCost(word string) (cost float64, ok bool)

	// MaxWordLen is the length, in runes, of the longest known word.
	MaxWordLen() int

	// Similarity scores two words in [0, 1].
	Similarity(a, b string) float64
}
