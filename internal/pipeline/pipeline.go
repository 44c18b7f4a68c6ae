// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a batch of questions through the content
// pipeline: answer match, citation match, page render, then a sitemap for
// the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/internal/answer"
	"github.com/pdiddy/geo-engine/internal/citation"
	"github.com/pdiddy/geo-engine/internal/metrics"
	"github.com/pdiddy/geo-engine/internal/render"
	"github.com/pdiddy/geo-engine/pkg/types"
)

// ErrEmptyQuestion aborts a run that reaches a blank question.
var ErrEmptyQuestion = errors.New("empty question")

// Driver runs batches of questions. Its RunStats accumulate across runs
// and are reset only by constructing a new Driver. A Driver is not safe for
// concurrent use.
type Driver struct {
	answers      *answer.Store
	catalog      *citation.Catalog
	renderer     *render.Renderer
	baseURL      string
	maxQuestions int

	logger   *zap.Logger
	recorder *metrics.Recorder
	newID    func() string

	stats types.RunStats
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver's logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithRecorder mirrors run statistics into r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithMaxQuestions overrides the per-run question cap. Values below one
// keep the default.
func WithMaxQuestions(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxQuestions = n
		}
	}
}

// New returns a Driver over the given template store, catalog and renderer.
// baseURL roots the sitemap entries.
func New(answers *answer.Store, catalog *citation.Catalog, renderer *render.Renderer, baseURL string, opts ...Option) *Driver {
	d := &Driver{
		answers:      answers,
		catalog:      catalog,
		renderer:     renderer,
		baseURL:      baseURL,
		maxQuestions: types.DefaultMaxQuestions,
		logger:       zap.NewNop(),
		newID:        func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Stats returns the statistics accumulated by successful runs.
func (d *Driver) Stats() types.RunStats { return d.stats }

// Process runs one question through the matcher, the citation matcher and
// the renderer.
func (d *Driver) Process(question string, now time.Time) (types.GeneratedPage, error) {
	if strings.TrimSpace(question) == "" {
		return types.GeneratedPage{}, ErrEmptyQuestion
	}
	text := d.answers.Match(question)
	citations := d.catalog.Match(question)
	return d.renderer.Render(question, text, citations, now)
}

// Run processes the first maxQuestions questions in order and builds the
// sitemap. A failure on any question, or a cancelled ctx, aborts the
// remaining batch: the failure is logged and Run returns a nil result. The
// driver's statistics change only when the whole run succeeds.
func (d *Driver) Run(ctx context.Context, questions []string, now time.Time) (*types.RunResult, error) {
	start := time.Now()
	runID := d.newID()
	log := d.logger.With(zap.String("run_id", runID))

	if len(questions) > d.maxQuestions {
		questions = questions[:d.maxQuestions]
	}
	log.Info("starting batch", zap.Int("questions", len(questions)))

	result, delta, err := d.run(ctx, questions, now)
	if err != nil {
		log.Error("batch aborted", zap.Error(err))
		d.recorder.ObserveFailure(time.Since(start))
		return nil, err
	}

	d.stats.QuestionsProcessed += delta.QuestionsProcessed
	d.stats.PagesGenerated += delta.PagesGenerated
	d.stats.CitationsAdded += delta.CitationsAdded
	d.stats.LastRun = now
	d.recorder.ObserveRun(delta, time.Since(start))

	result.ID = runID
	result.Stats = d.stats
	log.Info("batch complete",
		zap.Int("pages", delta.PagesGenerated),
		zap.Int("citations", delta.CitationsAdded),
		zap.Int("questions_processed_total", d.stats.QuestionsProcessed))
	return result, nil
}

func (d *Driver) run(ctx context.Context, questions []string, now time.Time) (*types.RunResult, types.RunStats, error) {
	var delta types.RunStats
	pages := make([]types.GeneratedPage, 0, len(questions))

	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, delta, fmt.Errorf("question %d: %w", i+1, err)
		}
		page, err := d.Process(q, now)
		if err != nil {
			return nil, delta, fmt.Errorf("question %d %q: %w", i+1, q, err)
		}
		pages = append(pages, page)

		delta.QuestionsProcessed++
		delta.PagesGenerated++
		delta.CitationsAdded += len(page.Citations)
		d.logger.Debug("page rendered",
			zap.String("file", page.Filename),
			zap.Int("citations", len(page.Citations)))
	}

	sitemap, err := render.Sitemap(d.baseURL, pages, now)
	if err != nil {
		return nil, delta, err
	}
	delta.LastRun = now

	return &types.RunResult{Pages: pages, Sitemap: sitemap}, delta, nil
}
