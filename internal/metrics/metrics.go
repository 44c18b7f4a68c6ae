// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics mirrors run statistics into Prometheus collectors. The
// collectors live in their own registry and are exported as a textfile for
// the node exporter's textfile collector; the CLI serves no HTTP endpoint.
package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// Outcome labels a finished run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Recorder records batch and rewrite runs. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry    *prom.Registry
	questions   prom.Counter
	pages       prom.Counter
	citations   prom.Counter
	runs        *prom.CounterVec
	rewrites    *prom.CounterVec
	runDuration prom.Histogram
	lastRun     prom.Gauge
}

// NewRecorder constructs the collectors and registers them with reg. A nil
// reg gets a fresh registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		questions: prom.NewCounter(prom.CounterOpts{
			Namespace: "geo_engine",
			Name:      "questions_processed_total",
			Help:      "Questions run through the content pipeline",
		}),
		pages: prom.NewCounter(prom.CounterOpts{
			Namespace: "geo_engine",
			Name:      "pages_generated_total",
			Help:      "FAQ pages rendered",
		}),
		citations: prom.NewCounter(prom.CounterOpts{
			Namespace: "geo_engine",
			Name:      "citations_added_total",
			Help:      "Citations attached to rendered pages",
		}),
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "geo_engine",
			Name:      "batch_runs_total",
			Help:      "Batch runs by outcome",
		}, []string{"outcome"}),
		rewrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "geo_engine",
			Name:      "site_rewrites_total",
			Help:      "Homepage rewrites by outcome",
		}, []string{"outcome"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "geo_engine",
			Name:      "batch_run_duration_seconds",
			Help:      "Batch run duration",
			Buckets:   prom.DefBuckets,
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "geo_engine",
			Name:      "last_successful_run_timestamp_seconds",
			Help:      "Unix time of the last successful batch run",
		}),
	}
	reg.MustRegister(r.questions, r.pages, r.citations, r.runs, r.rewrites, r.runDuration, r.lastRun)
	return r
}

// Registry returns the registry the collectors are registered with.
func (r *Recorder) Registry() *prom.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRun records a successful run. delta holds the counts added by
// this run only.
func (r *Recorder) ObserveRun(delta types.RunStats, d time.Duration) {
	if r == nil {
		return
	}
	r.questions.Add(float64(delta.QuestionsProcessed))
	r.pages.Add(float64(delta.PagesGenerated))
	r.citations.Add(float64(delta.CitationsAdded))
	r.runs.WithLabelValues(string(OutcomeSuccess)).Inc()
	r.runDuration.Observe(d.Seconds())
	if !delta.LastRun.IsZero() {
		r.lastRun.Set(float64(delta.LastRun.Unix()))
	}
}

// ObserveFailure records an aborted run.
func (r *Recorder) ObserveFailure(d time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(string(OutcomeFailed)).Inc()
	r.runDuration.Observe(d.Seconds())
}

// IncRewrite records a homepage rewrite.
func (r *Recorder) IncRewrite(outcome Outcome) {
	if r == nil {
		return
	}
	r.rewrites.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
