// Package phrase scores how well a normalized key phrase is covered by a
// normalized target phrase.
package phrase

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Phrase is a sequence of normalized words.
type Phrase []string

// Parse splits a space separated phrase.
func Parse(s string) Phrase {
	return Phrase(strings.Fields(s))
}

// String joins the words with single spaces. It is the key used by indexes.
func (p Phrase) String() string {
	return strings.Join(p, " ")
}

// Equal reports whether both phrases hold the same words in the same order.
func (p Phrase) Equal(o Phrase) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Set returns the distinct words of p.
func (p Phrase) Set() mapset.Set[string] {
	return mapset.NewThreadUnsafeSet[string](p...)
}

// Covers reports whether every word of key appears somewhere in p.
func (p Phrase) Covers(key Phrase) bool {
	if len(key) == 0 {
		return false
	}
	return key.Set().IsSubset(p.Set())
}

// Contains reports whether key appears in p as a contiguous run of words.
func (p Phrase) Contains(key Phrase) bool {
	if len(key) == 0 || len(key) > len(p) {
		return false
	}
	for i := 0; i+len(key) <= len(p); i++ {
		if p[i : i+len(key)].Equal(key) {
			return true
		}
	}
	return false
}
