// Package metrics records per-run generation metrics and exports them in
// the Prometheus text format for a node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of one process on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	Examples       *prometheus.CounterVec
	TemplateDraws  *prometheus.CounterVec
	Answers        *prometheus.CounterVec
	SplitExamples  *prometheus.GaugeVec
	Duration       prometheus.Histogram
	LastRunSuccess prometheus.Gauge
	LastRunTime    prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Examples: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devsynth_examples_total",
				Help: "Generated examples by kind",
			},
			[]string{"kind"},
		),
		TemplateDraws: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devsynth_template_draws_total",
				Help: "Draws per template id",
			},
			[]string{"template"},
		),
		Answers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devsynth_answers_total",
				Help: "QA answers by source",
			},
			[]string{"source"},
		),
		SplitExamples: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "devsynth_split_examples",
				Help: "Examples written per split in the last run",
			},
			[]string{"split"},
		),
		Duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "devsynth_generate_duration_seconds",
				Help:    "Wall time of a generate run",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
		LastRunSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "devsynth_last_run_success",
				Help: "1 if the last generate run succeeded",
			},
		),
		LastRunTime: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "devsynth_last_run_timestamp_seconds",
				Help: "Unix time the last generate run finished",
			},
		),
	}
}

// Run is what one generate invocation reports.
type Run struct {
	Tasks           int
	QA              int
	CannedAnswers   int
	FallbackAnswers int
	TemplateDraws   map[string]int
	Train           int
	Val             int
	Duration        time.Duration
	Finished        time.Time
	Err             error
}

// ObserveRun records r. A failed run only updates duration and status.
func (m *Metrics) ObserveRun(r Run) {
	m.Duration.Observe(r.Duration.Seconds())
	m.LastRunTime.Set(float64(r.Finished.Unix()))
	if r.Err != nil {
		m.LastRunSuccess.Set(0)
		return
	}
	m.LastRunSuccess.Set(1)

	m.Examples.WithLabelValues("task_creation").Add(float64(r.Tasks))
	m.Examples.WithLabelValues("tech_qa").Add(float64(r.QA))
	m.Answers.WithLabelValues("canned").Add(float64(r.CannedAnswers))
	m.Answers.WithLabelValues("fallback").Add(float64(r.FallbackAnswers))
	for id, n := range r.TemplateDraws {
		m.TemplateDraws.WithLabelValues(id).Add(float64(n))
	}
	m.SplitExamples.WithLabelValues("train").Set(float64(r.Train))
	m.SplitExamples.WithLabelValues("val").Set(float64(r.Val))
}

// Registry exposes the private registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteTextfile atomically writes the current metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
