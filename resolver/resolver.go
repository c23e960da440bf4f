// Package resolver decides which <meqa ...> tag, if any, each site of a
// Swagger document receives.
//
// A site is a parameter, a primitive schema leaf, a whole request or
// response schema, or an operation. Sites that already carry a tag or
// declare an enum are never touched, which makes repeated runs stable.
package resolver

import (
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtag/description"
	"github.com/c360studio/semtag/index"
	"github.com/c360studio/semtag/nlp"
	"github.com/c360studio/semtag/phrase"
	"github.com/c360studio/semtag/swagger"
	"github.com/c360studio/semtag/tag"
	"github.com/c360studio/semtag/vocabulary"
)

// Resolver matches document sites against an index of Definitions and
// writes the winning tags into the sites' descriptions.
type Resolver struct {
	doc      *swagger.Document
	vocab    *vocabulary.Vocabulary
	index    *index.Index
	model    nlp.Model
	opts     Options
	observer Observer
	logger   *slog.Logger
}

// New creates a Resolver. Zero-valued options fall back to DefaultOptions.
func New(doc *swagger.Document, vocab *vocabulary.Vocabulary, ix *index.Index, model nlp.Model, opts Options) *Resolver {
	opts = opts.WithDefaults()
	r := &Resolver{
		doc:      doc,
		vocab:    vocab,
		index:    ix,
		model:    model,
		opts:     opts,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// ShouldTag reports whether a site is still open for tagging: it carries no
// parseable tag and declares no enum.
func ShouldTag(n *yaml.Node) bool {
	if _, ok := tag.Parse(swagger.Description(n)); ok {
		return false
	}
	return !swagger.HasEnum(n)
}

// Resource returns the Definition named by the last literal segment of a
// path template.
func (r *Resolver) Resource(template string) (*index.Definition, bool) {
	name := swagger.Resource(template)
	if name == "" {
		return nil, false
	}
	return r.index.Lookup(r.vocab.Normalize(name))
}

// ResponseDefinitions lists the Definitions a response schema refers to,
// through arrays but without expanding the referents.
func (r *Resolver) ResponseDefinitions(resp swagger.Response) []string {
	if resp.Schema == nil {
		return nil
	}
	return index.ReferencedDefinitions(r.doc, resp.Schema)
}

// ResponseDefinition returns the single Definition the successful responses
// of an operation refer to. Operations whose responses mention none or
// several Definitions have no answer.
func (r *Resolver) ResponseDefinition(op swagger.Operation) (*index.Definition, bool) {
	var names []string
	seen := make(map[string]bool)
	for _, resp := range op.Responses {
		if !resp.Success() {
			continue
		}
		for _, name := range r.ResponseDefinitions(resp) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	if len(names) != 1 {
		return nil, false
	}
	return r.index.ByName(names[0])
}

// ResolveParameter tags one parameter of the operation at template. Path
// variables are matched against the Definition named before them, body
// parameters are resolved through their schema, and every other parameter
// is matched on its name and then on its description.
func (r *Resolver) ResolveParameter(template, method string, param *yaml.Node) bool {
	if !ShouldTag(param) {
		return false
	}
	name := swagger.Field(param, "name")
	in := swagger.Field(param, "in")

	if schema := swagger.ParamSchema(param); schema != nil {
		tagged := false
		r.observer.Visited(SiteObject)
		if def, ok := r.index.MatchSchema(r.doc, schema, r.opts.MinObjectProperties); ok {
			tagged = r.apply(param, SiteObject, tag.Tag{Class: def.Name}, 0)
		}
		var likely phrase.Phrase
		if def, ok := r.Resource(template); ok {
			likely = def.Normalized
		}
		return r.ResolveSchema(schema, swagger.Path{name}, likely, "") > 0 || tagged
	}

	r.observer.Visited(SiteParameter)
	typ := swagger.Type(swagger.Field(param, "type"))
	if in == "path" {
		typ = swagger.TypeNone
		if m, ok := r.resolvePathVariable(template, name); ok {
			return r.applyMatch(param, SiteParameter, m)
		}
	}

	m, ok := r.FindBest(Query{Phrase: r.vocab.Normalize(name), Type: typ})
	if !ok {
		m, ok = r.matchDescription(swagger.Description(param), typ, "")
	}
	if !ok {
		r.logger.Debug("Parameter left untagged",
			slog.String("path", template),
			slog.String("method", method),
			slog.String("parameter", name))
		return false
	}
	return r.applyMatch(param, SiteParameter, m)
}

// resolvePathVariable tries the literal segment right before the variable as
// the class phrase first and the whole preceding prefix second.
func (r *Resolver) resolvePathVariable(template, name string) (Match, bool) {
	segment, prefix, ok := swagger.Preceding(template, name)
	if !ok || name == "" {
		return Match{}, false
	}
	q := Query{Property: r.vocab.Normalize(name), Literal: name}
	if segment != "" {
		q.Phrase = r.vocab.Normalize(segment)
		if m, ok := r.FindBest(q); ok {
			return m, true
		}
	}
	if prefix == segment {
		return Match{}, false
	}
	q.Phrase = r.vocab.Normalize(prefix)
	return r.FindBest(q)
}

// ResolveSchema tags the primitive leaves of a schema. References are not
// followed, so shared Definitions are only tagged in their own right.
// likelyClass, when set, is tried as the class phrase for leaves whose own
// name names no Definition. exclude keeps a Definition from matching its
// own leaves. It returns the number of tags written.
func (r *Resolver) ResolveSchema(n *yaml.Node, path swagger.Path, likelyClass phrase.Phrase, exclude string) int {
	count := 0
	flags := swagger.Flags{FollowArray: true, FollowObject: true}
	r.doc.Walk(n, path, flags, func(s swagger.Schema, p swagger.Path) {
		if s.Kind != swagger.KindPrimitive || !s.Type.Scalar() || !ShouldTag(s.Node) {
			return
		}
		r.observer.Visited(SiteLeaf)
		if m, ok := r.resolveLeaf(s, p, likelyClass, exclude); ok && r.applyMatch(s.Node, SiteLeaf, m) {
			count++
		}
	})
	return count
}

func (r *Resolver) resolveLeaf(s swagger.Schema, p swagger.Path, likelyClass phrase.Phrase, exclude string) (Match, bool) {
	name := r.vocab.Normalize(p.Last())
	if m, ok := r.FindBest(Query{Phrase: name, Type: s.Type, Exclude: exclude}); ok {
		return m, true
	}
	if len(likelyClass) > 0 && len(name) > 0 {
		q := Query{Phrase: likelyClass, Property: name, Type: s.Type, Exclude: exclude}
		if m, ok := r.FindBest(q); ok {
			return m, true
		}
	}
	return r.matchDescription(swagger.Description(s.Node), s.Type, exclude)
}

// matchDescription tries each sentence of desc as a combined phrase and
// keeps the cheapest result.
func (r *Resolver) matchDescription(desc string, typ swagger.Type, exclude string) (Match, bool) {
	var best Match
	found := false
	for _, sentence := range description.Sentences(desc) {
		m, ok := r.FindBest(Query{Phrase: r.vocab.Normalize(sentence), Type: typ, Exclude: exclude})
		if ok && (!found || m.Cost < best.Cost) {
			best, found = m, true
		}
	}
	return best, found
}

// ResolveResponses tags the responses of one operation. Successful
// responses may be tagged as a whole with the Definition their schema
// stands for; the leaves of every response schema are resolved with the
// resource as likely class for successful ones.
func (r *Resolver) ResolveResponses(op swagger.Operation, resource *index.Definition) int {
	count := 0
	for _, resp := range op.Responses {
		if resp.Schema == nil {
			continue
		}
		var likely phrase.Phrase
		if resp.Success() {
			if resource != nil {
				likely = resource.Normalized
			}
			if ShouldTag(resp.Node) {
				r.observer.Visited(SiteObject)
				def, ok := r.index.MatchSchema(r.doc, resp.Schema, r.opts.MinObjectProperties)
				if ok && r.apply(resp.Node, SiteObject, tag.Tag{Class: def.Name}, 0) {
					count++
				}
			}
		}
		count += r.ResolveSchema(resp.Schema, swagger.Path{resp.Code}, likely, "")
	}
	return count
}

// ResolveDefinition tags the leaves of a Definition schema without letting
// the Definition match its own properties.
func (r *Resolver) ResolveDefinition(name string, n *yaml.Node) int {
	return r.ResolveSchema(n, swagger.Path{name}, nil, name)
}

func (r *Resolver) applyMatch(n *yaml.Node, kind SiteKind, m Match) bool {
	return r.apply(n, kind, tag.Tag{Class: m.Definition, Property: m.Property}, m.Cost)
}

// apply writes t into the description of n. A tag that would not read back
// as itself is dropped, since the site would look untagged on the next run.
func (r *Resolver) apply(n *yaml.Node, kind SiteKind, t tag.Tag, cost float64) bool {
	if !t.Representable() {
		r.logger.Debug("Tag cannot be written",
			slog.String("kind", string(kind)),
			slog.String("tag", t.String()))
		return false
	}
	swagger.SetDescription(n, tag.Append(swagger.Description(n), t))
	r.observer.Tagged(kind, t, cost)
	r.logger.Debug("Tagged site",
		slog.String("kind", string(kind)),
		slog.String("tag", t.String()),
		slog.Float64("cost", cost))
	return true
}
