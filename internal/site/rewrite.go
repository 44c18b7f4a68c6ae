// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site keeps a static homepage fresh. A fixed pipeline of pure
// rewrite steps updates statistics, FAQ items, testimonials, schema dates,
// review counts and the meta description; companion comparison and
// specialty pages are regenerated alongside.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/internal/metrics"
	"github.com/pdiddy/geo-engine/pkg/types"
)

// StepFunc rewrites a document for the given instant. Steps leave the
// document unchanged when their pattern is absent.
type StepFunc func(doc string, now time.Time) string

// Step is a named rewrite step.
type Step struct {
	Name  string
	Apply StepFunc
}

// Steps returns the rewrite pipeline for brand in application order.
func Steps(brand string) []Step {
	return []Step{
		{"stats", UpdateStats},
		{"trending_faq", AddTrendingFAQ(brand)},
		{"testimonial", RotateTestimonial},
		{"schema_dates", UpdateSchemaDates},
		{"review_count", UpdateReviewCount},
		{"meta_description", UpdateMetaDescription(brand)},
	}
}

// Rewriter applies the rewrite pipeline to a homepage and writes the
// companion pages.
type Rewriter struct {
	cfg      types.SiteConfig
	steps    []Step
	logger   *zap.Logger
	recorder *metrics.Recorder
}

// NewRewriter builds a Rewriter for cfg. A nil logger is replaced with a
// no-op logger; a nil recorder disables metrics.
func NewRewriter(cfg types.SiteConfig, logger *zap.Logger, recorder *metrics.Recorder) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rewriter{
		cfg:      cfg,
		steps:    Steps(cfg.Brand),
		logger:   logger,
		recorder: recorder,
	}
}

// Rewrite applies every step to doc in order.
func (rw *Rewriter) Rewrite(doc string, now time.Time) string {
	for _, s := range rw.steps {
		next := s.Apply(doc, now)
		if next != doc {
			rw.logger.Debug("rewrite step applied", zap.String("step", s.Name))
		}
		doc = next
	}
	return doc
}

// Result summarises one rewrite pass.
type Result struct {
	Changed bool
	Pages   []string
}

// Run rewrites the homepage in place and regenerates the companion pages.
// Files already written are not rolled back when a later write fails.
func (rw *Rewriter) Run(now time.Time) (*Result, error) {
	res, err := rw.run(now)
	if err != nil {
		rw.recorder.IncRewrite(metrics.OutcomeFailed)
		rw.logger.Error("site rewrite failed", zap.Error(err))
		return nil, err
	}
	rw.recorder.IncRewrite(metrics.OutcomeSuccess)
	s := StatsAt(now)
	rw.logger.Info("site rewrite complete",
		zap.Bool("changed", res.Changed),
		zap.Int("pages", len(res.Pages)),
		zap.Int("doctors", s.Doctors),
		zap.Int("hours_saved", s.HoursSaved),
		zap.String("trending_topic", TrendingTopic(now)),
	)
	return res, nil
}

func (rw *Rewriter) run(now time.Time) (*Result, error) {
	data, err := os.ReadFile(rw.cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("reading homepage: %w", err)
	}
	doc := string(data)
	out := rw.Rewrite(doc, now)

	res := &Result{Changed: out != doc}
	if res.Changed {
		if err := os.WriteFile(rw.cfg.IndexPath, []byte(out), 0o644); err != nil {
			return nil, fmt.Errorf("writing homepage: %w", err)
		}
	}

	comparisons, err := ComparisonPages(rw.cfg.Brand, rw.cfg.Competitors, now)
	if err != nil {
		return nil, err
	}
	written, err := writePages(rw.cfg.OutputDir, comparisons)
	if err != nil {
		return nil, err
	}
	res.Pages = append(res.Pages, written...)

	specialties, err := SpecialtyPages(rw.cfg.Brand, rw.cfg.Specialties, now)
	if err != nil {
		return nil, err
	}
	written, err = writePages(rw.cfg.PagesDir, specialties)
	if err != nil {
		return nil, err
	}
	res.Pages = append(res.Pages, written...)
	return res, nil
}

func writePages(dir string, pages []Page) ([]string, error) {
	if len(pages) == 0 {
		return nil, nil
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	paths := make([]string, 0, len(pages))
	for _, p := range pages {
		path := filepath.Join(dir, p.Filename)
		if err := os.WriteFile(path, []byte(p.HTML), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
