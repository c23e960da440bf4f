package resolver

import (
	"log/slog"

	"github.com/c360studio/semtag/description"
	"github.com/c360studio/semtag/index"
	"github.com/c360studio/semtag/swagger"
	"github.com/c360studio/semtag/tag"
)

// Verb is an operation verb and the HTTP method it implies.
type Verb struct {
	Name   string
	Method string
}

// Verbs is the lexicon operation descriptions are scored against.
var Verbs = []Verb{
	{Name: "create", Method: "post"},
	{Name: "update", Method: "put"},
	{Name: "delete", Method: "delete"},
	{Name: "retrieve", Method: "get"},
}

// GuessVerb scores every word of text against the verb lexicon and returns
// the best verb when its score exceeds the similarity threshold.
func (r *Resolver) GuessVerb(text string) (Verb, bool) {
	var best Verb
	score := 0.0
	for _, word := range r.vocab.Segment(description.PlainText(text)) {
		for _, v := range Verbs {
			if s := r.model.Similarity(word, v.Name); s > score {
				best, score = v, s
			}
		}
	}
	if score <= r.opts.SimilarityThreshold {
		return Verb{}, false
	}
	return best, true
}

// ResolveOperation tags an operation with its resource Definition. POST is
// often used for more than creation, so a POST whose description reads as
// another verb also records that verb in the operation segment.
func (r *Resolver) ResolveOperation(op swagger.Operation, resource *index.Definition) bool {
	if resource == nil || !ShouldTag(op.Node) {
		return false
	}
	r.observer.Visited(SiteOperation)

	t := tag.Tag{Class: resource.Name}
	if op.Method == "post" {
		text := swagger.Field(op.Node, "summary") + ". " + swagger.Description(op.Node)
		if v, ok := r.GuessVerb(text); ok && v.Method != op.Method {
			t.Operation = v.Name
			if r.opts.OperationStyle == StyleMethod {
				t.Operation = v.Method
			}
			r.logger.Debug("Guessed operation verb",
				slog.String("verb", v.Name),
				slog.String("resource", resource.Name))
		}
	}
	return r.apply(op.Node, SiteOperation, t, 0)
}
