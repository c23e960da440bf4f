package swagger

import "gopkg.in/yaml.v3"

// Type is a JSON Schema primitive type name. TypeNone is used for schemas
// without a declared type and, in matching, for "no type filter".
type Type string

const (
	TypeNone    Type = ""
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeFile    Type = "file"
	TypeNull    Type = "null"
)

// Numeric reports whether t is integer or number.
func (t Type) Numeric() bool {
	return t == TypeInteger || t == TypeNumber
}

// Scalar reports whether t is one of the leaf types the tagger annotates.
func (t Type) Scalar() bool {
	return t == TypeInteger || t == TypeNumber || t == TypeString
}

// Compatible reports whether a value of type t may be tagged with a property
// of type prop. Integer and number are interchangeable.
func (t Type) Compatible(prop Type) bool {
	return t == prop || (t.Numeric() && prop.Numeric())
}

// Kind is the structural variant of a schema node.
type Kind int

const (
	KindPrimitive Kind = iota
	KindReference
	KindUnion
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindUnion:
		return "union"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "primitive"
	}
}

// Schema is a classified schema node. Exactly the fields of its Kind are set.
type Schema struct {
	Node *yaml.Node
	Kind Kind
	Type Type

	// Ref is the $ref string of a KindReference.
	Ref string
	// Members are the allOf branches of a KindUnion.
	Members []*yaml.Node
	// Items is the item schema of a KindArray; nil when undeclared.
	Items *yaml.Node
	// Properties are the declared properties of a KindObject, in order.
	Properties []Entry
}

// Classify determines the variant of a schema node. allOf takes precedence
// over $ref, which takes precedence over the declared type. A node with
// properties but no type is an object.
func Classify(n *yaml.Node) Schema {
	n = deref(n)
	s := Schema{Node: n, Kind: KindPrimitive, Type: Type(scalar(n, "type"))}
	if !isMapping(n) {
		return s
	}

	if all := lookup(n, "allOf"); all != nil {
		s.Kind = KindUnion
		s.Members = items(all)
		return s
	}
	if ref := lookup(n, "$ref"); ref != nil {
		s.Kind = KindReference
		s.Ref = ref.Value
		return s
	}

	props := lookup(n, "properties")
	switch {
	case s.Type == TypeArray:
		s.Kind = KindArray
		s.Items = lookup(n, "items")
	case s.Type == TypeObject || (s.Type == TypeNone && props != nil):
		s.Kind = KindObject
		s.Properties = entries(props)
	}
	return s
}
