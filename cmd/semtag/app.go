package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/c360studio/semtag/annotator"
	"github.com/c360studio/semtag/config"
	"github.com/c360studio/semtag/metrics"
	"github.com/c360studio/semtag/nlp"
	"github.com/c360studio/semtag/resolver"
	"github.com/c360studio/semtag/source"
)

// App wires configuration, the annotator and metrics for the commands.
type App struct {
	cfg       *config.Config
	annotator *annotator.Annotator
	metrics   *metrics.Recorder
	logger    *slog.Logger
	format    string
}

// NewApp creates an App from configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	model, err := loadModel(cfg.NLP.WordsFile)
	if err != nil {
		return nil, err
	}

	rec := metrics.New()
	a, err := annotator.New(model, annotator.Options{
		Resolver: resolver.Options{
			SimilarityThreshold: cfg.NLP.SimilarityThreshold,
			MinObjectProperties: cfg.Matching.MinObjectProperties,
			OperationStyle:      resolver.OperationStyle(cfg.Matching.OperationStyle),
		},
		CacheSize: cfg.NLP.CacheSize,
		Metrics:   rec,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		annotator: a,
		metrics:   rec,
		logger:    logger,
		format:    cfg.Output.Format,
	}, nil
}

func loadModel(wordsFile string) (nlp.Model, error) {
	if wordsFile == "" {
		return nlp.NewEnglish()
	}
	return nlp.LoadEnglish(wordsFile)
}

// SetFormat overrides the configured output format when format is not empty.
func (a *App) SetFormat(format string) {
	if format != "" {
		a.format = format
	}
}

// AnnotateFile annotates input and writes the result to output. It returns
// the bytes written.
func (a *App) AnnotateFile(input, output string) ([]byte, *annotator.Result, error) {
	doc, err := source.ReadDocument(input, a.logger)
	if err != nil {
		return nil, nil, err
	}
	res, err := a.annotator.Annotate(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("annotate %s: %w", input, err)
	}
	data, err := source.WriteDocument(doc, output, source.FormatFor(output, a.format))
	if err != nil {
		return nil, nil, err
	}

	total := res.Total()
	a.logger.Info("Annotated document",
		slog.String("input", input),
		slog.String("output", output),
		slog.String("run_id", res.RunID),
		slog.Int("tagged", total.Tagged))

	a.writeMetrics()
	return data, res, nil
}

// AnnotateAll annotates every input. A failing document does not stop the
// others; all failures are returned together.
func (a *App) AnnotateAll(inputs []string, dir string, inPlace bool) error {
	var errs []error
	for _, input := range inputs {
		output, err := source.OutputPath(input, dir, inPlace)
		if err != nil {
			return err
		}
		if _, _, err := a.AnnotateFile(input, output); err != nil {
			a.logger.Error("Annotation failed",
				slog.String("input", input),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Watch annotates every input once and then again each time one changes,
// until ctx is done.
func (a *App) Watch(ctx context.Context, inputs []string, dir string, inPlace bool) error {
	if err := a.AnnotateAll(inputs, dir, inPlace); err != nil {
		a.logger.Warn("Initial annotation incomplete", slog.String("error", err.Error()))
	}

	w, err := source.NewWatcher(inputs, a.cfg.Watch.Debounce, a.logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for ev := range w.Events() {
		if ev.Operation == source.WatchOpDelete {
			a.logger.Warn("Watched document removed", slog.String("path", ev.Path))
			continue
		}
		output, err := source.OutputPath(ev.Path, dir, inPlace)
		if err != nil {
			return err
		}
		data, _, err := a.AnnotateFile(ev.Path, output)
		if err != nil {
			a.logger.Error("Annotation failed",
				slog.String("input", ev.Path),
				slog.String("error", err.Error()))
			continue
		}
		if output == ev.Path {
			w.SetHash(output, source.ContentHash(data))
		}
	}
	return nil
}

// ListDefinitions prints the indexed Definitions of a document with their
// normalized names and properties.
func (a *App) ListDefinitions(out io.Writer, input string, novel bool) error {
	doc, err := source.ReadDocument(input, a.logger)
	if err != nil {
		return err
	}
	res, err := a.annotator.Annotate(doc)
	if err != nil {
		return fmt.Errorf("annotate %s: %w", input, err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, def := range res.Index.Definitions() {
		fmt.Fprintf(tw, "%s\t%s\t\n", def.Name, def.Normalized)
		for _, p := range def.Properties {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Name, p.Normalized, p.Type)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if novel {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Novel words:")
		for _, w := range res.NovelWords {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}
	return nil
}

func (a *App) writeMetrics() {
	if a.cfg.Metrics.Textfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.logger.Warn("Failed to write metrics textfile",
			slog.String("path", a.cfg.Metrics.Textfile),
			slog.String("error", err.Error()))
	}
}
