// Package tag reads and writes the <meqa ...> annotations embedded in
// description fields.
//
// Grammar:
//
//	<meqa ClassName[.Property[.Operation]] [success] [fail] [weak]>
package tag

import (
	"strings"
)

const (
	opener = "<meqa"
	closer = ">"
)

// Flags qualify the outcome an annotation applies to.
type Flags uint8

const (
	FlagSuccess Flags = 1 << iota
	FlagFail
	FlagWeak
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagSuccess, "success"},
	{FlagFail, "fail"},
	{FlagWeak, "weak"},
}

// Tag links a site to a Definition, one of its properties and an operation.
type Tag struct {
	Class     string
	Property  string
	Operation string
	Flags     Flags
}

// String returns the canonical annotation.
func (t Tag) String() string {
	var b strings.Builder
	b.WriteString(opener)
	b.WriteByte(' ')
	b.WriteString(t.Class)
	if t.Property != "" || t.Operation != "" {
		b.WriteByte('.')
		b.WriteString(t.Property)
	}
	if t.Operation != "" {
		b.WriteByte('.')
		b.WriteString(t.Operation)
	}
	for _, f := range flagNames {
		if t.Flags&f.flag != 0 {
			b.WriteByte(' ')
			b.WriteString(f.name)
		}
	}
	b.WriteString(closer)
	return b.String()
}

// Representable reports whether t reads back unchanged from its String
// form. Names holding a dot, whitespace or the closer, or spelled like a
// flag, cannot be written.
func (t Tag) Representable() bool {
	got, ok := Parse(t.String())
	return ok && got == t
}

// Append adds the annotation to desc, separated by a single space.
func Append(desc string, t Tag) string {
	desc = strings.TrimRight(desc, " \t")
	if desc == "" {
		return t.String()
	}
	return desc + " " + t.String()
}

// Parse returns the first valid annotation found in desc.
func Parse(desc string) (Tag, bool) {
	for _, s := range spans(desc) {
		if t, ok := parseBody(desc[s.start+len(opener) : s.end-len(closer)]); ok {
			return t, true
		}
	}
	return Tag{}, false
}

// Strip removes every annotation span, valid or not, from desc.
func Strip(desc string) string {
	ss := spans(desc)
	if len(ss) == 0 {
		return desc
	}
	var b strings.Builder
	prev := 0
	for _, s := range ss {
		b.WriteString(desc[prev:s.start])
		prev = s.end
	}
	b.WriteString(desc[prev:])
	return strings.TrimSpace(b.String())
}

type span struct{ start, end int }

// spans finds "<meqa" ... ">" ranges. The opener must be followed by
// whitespace or the closer so that words like "<meqaX" are not taken.
func spans(desc string) []span {
	var out []span
	for from := 0; from < len(desc); {
		i := strings.Index(desc[from:], opener)
		if i < 0 {
			break
		}
		start := from + i
		rest := desc[start+len(opener):]
		if rest == "" {
			break
		}
		if c := rest[0]; c != ' ' && c != '\t' && c != '>' {
			from = start + len(opener)
			continue
		}
		j := strings.Index(rest, closer)
		if j < 0 {
			break
		}
		end := start + len(opener) + j + len(closer)
		out = append(out, span{start, end})
		from = end
	}
	return out
}

func parseBody(body string) (Tag, bool) {
	var t Tag
	ref := ""
	for _, tok := range strings.Fields(body) {
		if f, ok := parseFlags(tok); ok {
			t.Flags |= f
			continue
		}
		if ref != "" {
			return Tag{}, false
		}
		ref = tok
	}
	if ref == "" {
		return Tag{}, false
	}

	parts := strings.Split(ref, ".")
	if len(parts) > 3 || parts[0] == "" {
		return Tag{}, false
	}
	t.Class = parts[0]
	if len(parts) > 1 {
		t.Property = parts[1]
	}
	if len(parts) > 2 {
		t.Operation = parts[2]
	}
	return t, true
}

// parseFlags accepts a flag word or a comma separated list of flag words.
func parseFlags(tok string) (Flags, bool) {
	var f Flags
	for _, w := range strings.Split(tok, ",") {
		if w == "" {
			continue
		}
		found := false
		for _, fn := range flagNames {
			if w == fn.name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return f, f != 0
}
