package swagger

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Methods lists the operation keys of a path item, in visiting order.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// PathItem is one entry of the paths mapping.
type PathItem struct {
	Template   string
	Node       *yaml.Node
	Parameters []*yaml.Node
	Operations []Operation
}

// Operation is one HTTP method of a path item.
type Operation struct {
	Method     string
	Node       *yaml.Node
	Parameters []*yaml.Node
	Responses  []Response
}

// Response is one entry of an operation's responses mapping.
type Response struct {
	Code   string
	Node   *yaml.Node
	Schema *yaml.Node
}

// Success reports whether the response code is 2xx.
func (r Response) Success() bool {
	code, err := strconv.Atoi(r.Code)
	return err == nil && code >= 200 && code < 300
}

// Paths returns every path item in document order.
func (d *Document) Paths() []PathItem {
	var out []PathItem
	for _, e := range entries(lookup(d.root, "paths")) {
		if !isMapping(e.Value) {
			continue
		}
		item := PathItem{
			Template:   e.Key,
			Node:       e.Value,
			Parameters: mappings(lookup(e.Value, "parameters")),
		}
		for _, m := range Methods {
			op := lookup(e.Value, m)
			if !isMapping(op) {
				continue
			}
			item.Operations = append(item.Operations, Operation{
				Method:     m,
				Node:       op,
				Parameters: mappings(lookup(op, "parameters")),
				Responses:  responses(lookup(op, "responses")),
			})
		}
		out = append(out, item)
	}
	return out
}

func mappings(seq *yaml.Node) []*yaml.Node {
	var out []*yaml.Node
	for _, n := range items(seq) {
		if isMapping(n) {
			out = append(out, n)
		}
	}
	return out
}

func responses(n *yaml.Node) []Response {
	var out []Response
	for _, e := range entries(n) {
		if !isMapping(e.Value) {
			continue
		}
		out = append(out, Response{Code: e.Key, Node: e.Value, Schema: lookup(e.Value, "schema")})
	}
	return out
}

// Segments splits a path template into its non-empty segments.
func Segments(template string) []string {
	var out []string
	for _, s := range strings.Split(template, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsVariable reports whether a path segment is a {parameter}.
func IsVariable(segment string) bool {
	return strings.HasPrefix(segment, "{")
}

// Resource returns the last literal segment of a path template.
func Resource(template string) string {
	segs := Segments(template)
	for i := len(segs) - 1; i >= 0; i-- {
		if !IsVariable(segs[i]) {
			return segs[i]
		}
	}
	return ""
}

// Preceding returns, for the path variable named param, the literal segment
// right before it and the whole template prefix before it.
func Preceding(template, param string) (segment, prefix string, ok bool) {
	token := "{" + param + "}"
	i := strings.Index(template, token)
	if i <= 0 {
		return "", "", false
	}
	prefix = strings.TrimRight(template[:i], "/")
	segs := Segments(prefix)
	for j := len(segs) - 1; j >= 0; j-- {
		if !IsVariable(segs[j]) {
			return segs[j], prefix, true
		}
	}
	return "", prefix, prefix != ""
}

// ParamSchema returns the schema of a body parameter, or nil.
func ParamSchema(param *yaml.Node) *yaml.Node {
	return lookup(param, "schema")
}
