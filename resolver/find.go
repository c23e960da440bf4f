package resolver

import (
	"github.com/c360studio/semtag/index"
	"github.com/c360studio/semtag/phrase"
	"github.com/c360studio/semtag/swagger"
)

// Query describes what FindBest looks for.
type Query struct {
	// Phrase must cover a Definition's normalized name.
	Phrase phrase.Phrase
	// Property is matched against property names. When nil and Literal is
	// empty, Phrase serves as the property phrase too.
	Property phrase.Phrase
	// Literal, when set, is compared verbatim with property names first.
	Literal string
	// Type filters properties. TypeNone accepts every non-object property.
	Type swagger.Type
	// Exclude names a Definition that may not be returned.
	Exclude string
}

// Match is a resolved Definition and property with its ranking cost.
type Match struct {
	Definition string
	Property   string
	Cost       float64
}

// FindBest returns the Definition/property pair with the lowest combined
// cost. Candidates are visited in index order, so ties go to the first.
func (r *Resolver) FindBest(q Query) (Match, bool) {
	shared := q.Property == nil && q.Literal == ""
	propPhrase := q.Property
	if shared {
		propPhrase = q.Phrase
	}

	var best Match
	found := false
	for _, def := range r.index.Definitions() {
		if def.Name == q.Exclude {
			continue
		}
		defCost, ok := phrase.MatchCost(q.Phrase, def.Normalized)
		if !ok {
			continue
		}
		prop, propCost, ok := bestProperty(def, q, propPhrase, shared)
		if !ok {
			continue
		}
		if total := defCost + propCost; !found || total < best.Cost {
			best = Match{Definition: def.Name, Property: prop, Cost: total}
			found = true
			if total == 0 {
				break
			}
		}
	}
	return best, found
}

func bestProperty(def *index.Definition, q Query, propPhrase phrase.Phrase, shared bool) (string, float64, bool) {
	name := ""
	lowest := 0.0
	for _, p := range def.Properties {
		if !typeAllowed(q.Type, p.Type) {
			continue
		}
		if q.Literal != "" && q.Literal == p.Name {
			return p.Name, 0, true
		}
		cost, ok := phrase.MatchCost(propPhrase, p.Normalized)
		if !ok {
			continue
		}
		// a shared phrase should not spend the Definition's own words twice
		if shared && def.Normalized.Covers(p.Normalized) {
			cost++
		}
		if name == "" || cost < lowest {
			name, lowest = p.Name, cost
		}
	}
	return name, lowest, name != ""
}

func typeAllowed(filter, prop swagger.Type) bool {
	if filter == swagger.TypeNone {
		return prop != swagger.TypeObject
	}
	return filter.Compatible(prop)
}
