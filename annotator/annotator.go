// Package annotator runs a full tagging pass over a Swagger document.
package annotator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semtag/index"
	"github.com/c360studio/semtag/metrics"
	"github.com/c360studio/semtag/nlp"
	"github.com/c360studio/semtag/resolver"
	"github.com/c360studio/semtag/swagger"
	"github.com/c360studio/semtag/vocabulary"
)

// Options configure an Annotator.
type Options struct {
	Resolver resolver.Options
	// CacheSize bounds the normalization memo of each run's vocabulary.
	CacheSize int
	// Metrics, when set, receives site and run observations.
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Annotator writes <meqa ...> tags into documents. One Annotator may run
// many documents; every run gets a fresh vocabulary and index.
type Annotator struct {
	model  nlp.Model
	opts   Options
	logger *slog.Logger
}

// New creates an Annotator over model.
func New(model nlp.Model, opts Options) (*Annotator, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: no model", nlp.ErrModelUnavailable)
	}
	opts.Resolver = opts.Resolver.WithDefaults()
	if err := opts.Resolver.Validate(); err != nil {
		return nil, fmt.Errorf("resolver options: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{model: model, opts: opts, logger: logger}, nil
}

// Annotate tags doc in place. Path parameters, responses and operations are
// resolved path by path in document order, then the Definitions themselves.
func (a *Annotator) Annotate(doc *swagger.Document) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.New().String()}
	logger := a.logger.With(slog.String("run_id", res.RunID))

	err := a.annotate(doc, res, logger)
	res.Duration = time.Since(start)

	definitions := 0
	if res.Index != nil {
		definitions = res.Index.Len()
	}
	if a.opts.Metrics != nil {
		a.opts.Metrics.ObserveRun(res.Duration, definitions, len(res.NovelWords), err)
	}
	if err != nil {
		return nil, err
	}

	total := res.Total()
	logger.Info("Annotation complete",
		slog.Int("definitions", definitions),
		slog.Int("visited", total.Visited),
		slog.Int("tagged", total.Tagged),
		slog.Int("novel_words", len(res.NovelWords)),
		slog.Duration("duration", res.Duration))
	return res, nil
}

func (a *Annotator) annotate(doc *swagger.Document, res *Result, logger *slog.Logger) error {
	vocab, err := vocabulary.New(a.model,
		vocabulary.WithCacheSize(a.opts.CacheSize),
		vocabulary.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create vocabulary: %w", err)
	}

	res.Index = index.Build(doc, vocab, logger)
	logger.Debug("Indexed definitions", slog.Int("count", res.Index.Len()))

	obs := observers{res}
	if a.opts.Metrics != nil {
		obs = append(obs, a.opts.Metrics)
	}
	ropts := a.opts.Resolver
	ropts.Observer = obs
	ropts.Logger = logger
	r := resolver.New(doc, vocab, res.Index, a.model, ropts)

	for _, item := range doc.Paths() {
		for _, p := range item.Parameters {
			r.ResolveParameter(item.Template, "", p)
		}
		for _, op := range item.Operations {
			a.annotateOperation(r, item, op, logger)
		}
	}

	for _, d := range doc.Definitions() {
		r.ResolveDefinition(d.Key, d.Value)
	}

	res.NovelWords = vocab.NovelWords()
	if len(res.NovelWords) > 0 {
		logger.Debug("Novel words", slog.Any("words", res.NovelWords))
	}
	return nil
}

func (a *Annotator) annotateOperation(r *resolver.Resolver, item swagger.PathItem, op swagger.Operation, logger *slog.Logger) {
	for _, p := range op.Parameters {
		r.ResolveParameter(item.Template, op.Method, p)
	}

	resource, ok := r.Resource(item.Template)
	if !ok {
		resource, ok = r.ResponseDefinition(op)
	}
	if !ok {
		logger.Debug("No resource for operation",
			slog.String("path", item.Template),
			slog.String("method", op.Method))
	}

	for _, resp := range op.Responses {
		if names := r.ResponseDefinitions(resp); len(names) > 0 {
			logger.Debug("Response definitions",
				slog.String("path", item.Template),
				slog.String("method", op.Method),
				slog.String("code", resp.Code),
				slog.Any("definitions", names))
		}
	}

	r.ResolveResponses(op, resource)
	r.ResolveOperation(op, resource)
}
