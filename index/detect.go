package index

import (
	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtag/swagger"
)

// MatchSchema finds the Definition a whole schema stands for. A direct
// reference to #/definitions/Name answers immediately. Otherwise the schema's
// property names must number at least minProperties, and the Definition whose
// property set is the smallest superset of them wins.
func (ix *Index) MatchSchema(doc *swagger.Document, n *yaml.Node, minProperties int) (*Definition, bool) {
	s := swagger.Classify(n)
	if s.Kind == swagger.KindReference {
		if ref, err := swagger.ParseRef(s.Ref); err == nil && ref.Container == "definitions" {
			return ix.ByName(ref.Name)
		}
	}

	want := mapset.NewThreadUnsafeSet[string]()
	doc.Walk(n, nil, swagger.Flags{FollowRef: true}, func(s swagger.Schema, _ swagger.Path) {
		for _, p := range s.Properties {
			want.Add(p.Key)
		}
	})
	if want.Cardinality() < minProperties || want.Cardinality() == 0 {
		return nil, false
	}

	var found *Definition
	for _, def := range ix.ordered {
		have := mapset.NewThreadUnsafeSet[string]()
		for _, p := range def.Properties {
			have.Add(p.Name)
		}
		if !have.IsSuperset(want) {
			continue
		}
		if found == nil || len(def.Properties) < len(found.Properties) {
			found = def
		}
	}
	return found, found != nil
}

// ReferencedDefinitions lists the Definitions a schema refers to directly or
// through array items, without expanding the referents.
func ReferencedDefinitions(doc *swagger.Document, n *yaml.Node) []string {
	var names []string
	seen := make(map[string]bool)
	doc.Walk(n, nil, swagger.Flags{FollowArray: true}, func(s swagger.Schema, _ swagger.Path) {
		if s.Kind != swagger.KindReference {
			return
		}
		ref, err := swagger.ParseRef(s.Ref)
		if err != nil || ref.Container != "definitions" || seen[ref.Name] {
			return
		}
		seen[ref.Name] = true
		names = append(names, ref.Name)
	})
	return names
}
