// Package metrics exposes Prometheus instruments for annotation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semtag/resolver"
	"github.com/c360studio/semtag/tag"
)

const namespace = "semtag"

// Recorder collects run metrics into its own registry. It implements
// resolver.Observer.
type Recorder struct {
	registry    *prometheus.Registry
	visited     *prometheus.CounterVec
	tagged      *prometheus.CounterVec
	cost        prometheus.Histogram
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	definitions prometheus.Gauge
	novel       prometheus.Gauge
}

// New creates a Recorder with every instrument registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		visited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_visited_total",
			Help:      "Sites examined for tagging, by kind.",
		}, []string{"kind"}),
		tagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_tagged_total",
			Help:      "Tags written, by site kind.",
		}, []string{"kind"}),
		cost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_cost",
			Help:      "Cost of the matches that produced tags.",
			Buckets:   []float64{0, 0.25, 0.5, 1, 2, 4},
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Annotation runs, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of annotation runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		definitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "definitions",
			Help:      "Definitions indexed by the last run.",
		}),
		novel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "novel_words",
			Help:      "Words unknown to the language model in the last run.",
		}),
	}
	r.registry.MustRegister(r.visited, r.tagged, r.cost, r.runs, r.duration, r.definitions, r.novel)
	return r
}

// Registry returns the registry holding the instruments.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Visited implements resolver.Observer.
func (r *Recorder) Visited(kind resolver.SiteKind) {
	r.visited.WithLabelValues(string(kind)).Inc()
}

// Tagged implements resolver.Observer.
func (r *Recorder) Tagged(kind resolver.SiteKind, _ tag.Tag, cost float64) {
	r.tagged.WithLabelValues(string(kind)).Inc()
	r.cost.Observe(cost)
}

// ObserveRun records the outcome of one run.
func (r *Recorder) ObserveRun(d time.Duration, definitions, novel int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
	r.definitions.Set(float64(definitions))
	r.novel.Set(float64(novel))
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
