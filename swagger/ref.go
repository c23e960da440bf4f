package swagger

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ref is a parsed local reference of the form #/container/name.
type Ref struct {
	Container string
	Name      string
}

// Path returns the document location of the referenced node.
func (r Ref) Path() Path {
	return Path{r.Container, r.Name}
}

// ParseRef parses a local two segment reference.
func ParseRef(ref string) (Ref, error) {
	if !strings.HasPrefix(ref, "#/") {
		return Ref{}, fmt.Errorf("%w: %q is not local", ErrUnresolvableRef, ref)
	}
	parts := strings.Split(ref[2:], "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("%w: %q is not #/container/name", ErrUnresolvableRef, ref)
	}
	return Ref{Container: unescape(parts[0]), Name: unescape(parts[1])}, nil
}

// unescape decodes JSON pointer escapes.
func unescape(s string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}

// Resolve returns the node a local reference points at.
func (d *Document) Resolve(ref string) (Ref, *yaml.Node, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return Ref{}, nil, err
	}
	target := lookup(lookup(d.root, r.Container), r.Name)
	if target == nil {
		return Ref{}, nil, fmt.Errorf("%w: %q has no referent", ErrUnresolvableRef, ref)
	}
	return r, target, nil
}
