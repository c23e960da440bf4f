package swagger

import "gopkg.in/yaml.v3"

// deref follows YAML aliases.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// lookup returns the value stored under key in a mapping node.
func lookup(n *yaml.Node, key string) *yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

// scalar returns the string value under key, or "" when absent or not a scalar.
func scalar(n *yaml.Node, key string) string {
	v := lookup(n, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

// Entry is one key/value pair of a mapping node.
type Entry struct {
	Key   string
	Value *yaml.Node
}

// entries returns the pairs of a mapping node in document order.
func entries(n *yaml.Node) []Entry {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, Entry{Key: n.Content[i].Value, Value: deref(n.Content[i+1])})
	}
	return out
}

// items returns the elements of a sequence node.
func items(n *yaml.Node) []*yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]*yaml.Node, 0, len(n.Content))
	for _, c := range n.Content {
		out = append(out, deref(c))
	}
	return out
}

// Description returns the description field of a mapping node.
func Description(n *yaml.Node) string {
	return scalar(n, "description")
}

// SetDescription replaces or adds the description field of a mapping node.
// Non-mapping nodes are left untouched.
func SetDescription(n *yaml.Node, desc string) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "description" {
			v := n.Content[i+1]
			v.Kind = yaml.ScalarNode
			v.Tag = "!!str"
			v.Value = desc
			v.Alias = nil
			v.Content = nil
			return
		}
	}
	n.Content = append(n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "description"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: desc},
	)
}

// HasEnum reports whether a node declares an enumerated value domain.
func HasEnum(n *yaml.Node) bool {
	return lookup(n, "enum") != nil
}

// Field returns the scalar value stored under key.
func Field(n *yaml.Node, key string) string {
	return scalar(n, key)
}
