package swagger

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// maxWalkDepth bounds recursion on documents whose references form a cycle
// under the chosen flags. Walk does not keep a visited set.
const maxWalkDepth = 64

// Path is the sequence of keys leading from the document root, or from a
// caller chosen origin, to a schema. It is never mutated in place.
type Path []string

// With returns a new path extended by key.
func (p Path) With(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Last returns the final key, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Flags select which edges of the schema graph Walk follows.
type Flags struct {
	FollowArray  bool
	FollowRef    bool
	FollowObject bool
}

// VisitFunc is called for every schema Walk reaches.
type VisitFunc func(s Schema, path Path)

// Walk calls visit for n and then descends according to its Kind:
// union members share the current path, local references continue at the
// referent with the path replaced by the reference location, array items
// keep the path and object properties extend it by the property name.
// References that cannot be resolved end the branch silently.
func (d *Document) Walk(n *yaml.Node, path Path, flags Flags, visit VisitFunc) {
	d.walk(n, path, flags, visit, 0)
}

func (d *Document) walk(n *yaml.Node, path Path, flags Flags, visit VisitFunc, depth int) {
	n = deref(n)
	if n == nil || depth > maxWalkDepth {
		return
	}

	s := Classify(n)
	visit(s, path)

	switch s.Kind {
	case KindUnion:
		for _, m := range s.Members {
			d.walk(m, path, flags, visit, depth+1)
		}
	case KindReference:
		if !flags.FollowRef {
			return
		}
		ref, target, err := d.Resolve(s.Ref)
		if err != nil {
			d.logger.Debug("Reference not followed",
				slog.String("ref", s.Ref),
				slog.String("error", err.Error()))
			return
		}
		d.walk(target, ref.Path(), flags, visit, depth+1)
	case KindArray:
		if flags.FollowArray {
			d.walk(s.Items, path, flags, visit, depth+1)
		}
	case KindObject:
		if !flags.FollowObject {
			return
		}
		for _, p := range s.Properties {
			d.walk(p.Value, path.With(p.Key), flags, visit, depth+1)
		}
	}
}
