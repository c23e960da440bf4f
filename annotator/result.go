package annotator

import (
	"time"

	"github.com/c360studio/semtag/index"
	"github.com/c360studio/semtag/resolver"
	"github.com/c360studio/semtag/tag"
)

// Counts tallies the sites of one kind.
type Counts struct {
	Visited int
	Tagged  int
}

// Result describes one annotation run.
type Result struct {
	RunID      string
	Parameters Counts
	Leaves     Counts
	Objects    Counts
	Operations Counts
	// Index is the Definition index the run matched against.
	Index      *index.Index
	NovelWords []string
	Duration   time.Duration
}

// Visited implements resolver.Observer.
func (r *Result) Visited(kind resolver.SiteKind) {
	if c := r.counts(kind); c != nil {
		c.Visited++
	}
}

// Tagged implements resolver.Observer.
func (r *Result) Tagged(kind resolver.SiteKind, _ tag.Tag, _ float64) {
	if c := r.counts(kind); c != nil {
		c.Tagged++
	}
}

// Total sums the counts over every site kind.
func (r *Result) Total() Counts {
	var t Counts
	for _, c := range []Counts{r.Parameters, r.Leaves, r.Objects, r.Operations} {
		t.Visited += c.Visited
		t.Tagged += c.Tagged
	}
	return t
}

func (r *Result) counts(kind resolver.SiteKind) *Counts {
	switch kind {
	case resolver.SiteParameter:
		return &r.Parameters
	case resolver.SiteLeaf:
		return &r.Leaves
	case resolver.SiteObject:
		return &r.Objects
	case resolver.SiteOperation:
		return &r.Operations
	default:
		return nil
	}
}

type observers []resolver.Observer

func (o observers) Visited(kind resolver.SiteKind) {
	for _, ob := range o {
		ob.Visited(kind)
	}
}

func (o observers) Tagged(kind resolver.SiteKind, t tag.Tag, cost float64) {
	for _, ob := range o {
		ob.Tagged(kind, t, cost)
	}
}
