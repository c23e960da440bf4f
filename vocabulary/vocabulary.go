package vocabulary

import (
	"log/slog"
	"slices"
	"sort"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/c360studio/semtag/nlp"
	"github.com/c360studio/semtag/phrase"
)

// DefaultCacheSize is the number of normalized texts remembered.
const DefaultCacheSize = 4096

// Vocabulary normalizes text against a model plus the words learned during
// one run.
type Vocabulary struct {
	model   nlp.Model
	learned map[string]float64
	novel   map[string]struct{}
	maxWord int
	memo    *lru.Cache[string, phrase.Phrase]
	lower   cases.Caser
	logger  *slog.Logger
}

// Option configures a Vocabulary.
type Option func(*options)

type options struct {
	cacheSize int
	logger    *slog.Logger
}

// WithCacheSize sets the size of the normalization memo. Zero disables it.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an empty session over model.
func New(model nlp.Model, opts ...Option) (*Vocabulary, error) {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	v := &Vocabulary{
		model:   model,
		learned: make(map[string]float64),
		novel:   make(map[string]struct{}),
		maxWord: model.MaxWordLen(),
		lower:   cases.Lower(language.Und),
		logger:  o.logger,
	}
	if o.cacheSize > 0 {
		memo, err := lru.New[string, phrase.Phrase](o.cacheSize)
		if err != nil {
			return nil, err
		}
		v.memo = memo
	}
	return v, nil
}

// Normalize returns the lemmatized words of text.
func (v *Vocabulary) Normalize(text string) phrase.Phrase {
	if v.memo != nil {
		if p, ok := v.memo.Get(text); ok {
			return slices.Clone(p)
		}
	}

	words := v.Segment(text)
	p := make(phrase.Phrase, 0, len(words))
	for _, w := range words {
		if lemma := v.lemma(w); lemma != "" {
			p = append(p, lemma)
		}
	}

	if v.memo != nil {
		v.memo.Add(text, slices.Clone(p))
	}
	return p
}

// Learn segments text and makes each resulting word free, so that later
// segmentations prefer it. It returns the normalized phrase.
func (v *Vocabulary) Learn(text string) phrase.Phrase {
	for _, w := range v.Segment(text) {
		v.remember(w)
	}
	return v.Normalize(text)
}

// Segment returns the lowercase words of text before lemmatization.
func (v *Vocabulary) Segment(text string) []string {
	var out []string
	for _, tok := range tokens(text) {
		run := v.lower.String(tok)
		pieces, ok := v.split(run)
		if !ok {
			v.remember(run)
			out = append(out, run)
			continue
		}
		out = append(out, pieces...)
	}
	return out
}

// Known reports whether word has a cost, from the model or learned.
func (v *Vocabulary) Known(word string) bool {
	_, ok := v.cost(word)
	return ok
}

// NovelWords returns the words met during the run that the model does not
// know, sorted.
func (v *Vocabulary) NovelWords() []string {
	out := make([]string, 0, len(v.novel))
	for w := range v.novel {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func (v *Vocabulary) lemma(w string) string {
	if w == "id" {
		return w
	}
	return v.model.Lemmatize(w)
}

func (v *Vocabulary) cost(w string) (float64, bool) {
	if c, ok := v.learned[w]; ok {
		return c, true
	}
	return v.model.WordCost(w)
}

// remember sets the cost of w to 0. Cached normalizations are dropped
// because cheaper words can change how earlier text segments.
func (v *Vocabulary) remember(w string) {
	if w == "" {
		return
	}
	if c, ok := v.learned[w]; ok && c == 0 {
		return
	}
	if _, ok := v.model.WordCost(w); !ok {
		v.novel[w] = struct{}{}
		v.logger.Debug("Novel word", slog.String("word", w))
	}
	v.learned[w] = 0
	if n := utf8.RuneCountInString(w); n > v.maxWord {
		v.maxWord = n
	}
	if v.memo != nil {
		v.memo.Purge()
	}
}
