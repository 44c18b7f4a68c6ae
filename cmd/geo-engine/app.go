// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/internal/answer"
	"github.com/pdiddy/geo-engine/internal/citation"
	"github.com/pdiddy/geo-engine/internal/harvest"
	"github.com/pdiddy/geo-engine/internal/metrics"
	"github.com/pdiddy/geo-engine/internal/pipeline"
	"github.com/pdiddy/geo-engine/internal/publish"
	"github.com/pdiddy/geo-engine/internal/render"
	"github.com/pdiddy/geo-engine/internal/report"
	"github.com/pdiddy/geo-engine/internal/site"
	"github.com/pdiddy/geo-engine/pkg/types"
)

// app wires the pipeline stages for one configuration. Batch and rewrite
// passes are serialized so scheduled jobs never share a git worktree.
type app struct {
	mu sync.Mutex

	cfg      types.Config
	logger   *zap.Logger
	recorder *metrics.Recorder
	source   harvest.Source
	driver   *pipeline.Driver
	rewriter *site.Rewriter
	now      func() time.Time
}

func newApp(c types.Config, l *zap.Logger) (*app, error) {
	a := &app{
		logger:   l,
		recorder: metrics.NewRecorder(prom.NewRegistry()),
		now:      time.Now,
	}
	if err := a.configure(c); err != nil {
		return nil, err
	}
	return a, nil
}

// configure (re)builds every stage from c. The driver is rebuilt too, so
// accumulated run statistics restart from zero.
func (a *app) configure(c types.Config) error {
	answers := answer.Default()
	if c.Content.TemplatesFile != "" {
		s, err := answer.Load(c.Content.TemplatesFile)
		if err != nil {
			return err
		}
		answers = s
	}
	catalog := citation.Default()
	if c.Content.CatalogFile != "" {
		cat, err := citation.Load(c.Content.CatalogFile)
		if err != nil {
			return err
		}
		catalog = cat
	}
	source, err := harvest.NewSource(c.Harvest, nil, a.logger)
	if err != nil {
		return err
	}

	a.cfg = c
	a.source = source
	a.driver = pipeline.New(answers, catalog, render.New(c.Render), c.Publish.BaseURL,
		pipeline.WithLogger(a.logger),
		pipeline.WithRecorder(a.recorder),
		pipeline.WithMaxQuestions(c.Content.MaxQuestions),
	)
	a.rewriter = site.NewRewriter(c.Site, a.logger, a.recorder)
	return nil
}

// reload swaps in a new configuration between runs.
func (a *app) reload(c types.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.configure(c)
}

// templateKey names the answer template a question matches.
func templateKey(question string) string {
	if key, ok := answer.MatchKey(question); ok {
		return key
	}
	return "default"
}

// batch runs one harvest, generate and publish pass.
func (a *app) batch(ctx context.Context) (*types.RunResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.writeMetrics()

	now := a.now()
	questions, err := a.source.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("harvesting questions from %s: %w", a.source.Name(), err)
	}
	a.logger.Info("questions harvested", zap.String("source", a.source.Name()), zap.Int("count", len(questions)))

	res, err := a.driver.Run(ctx, questions, now)
	if err != nil {
		return nil, err
	}

	out := a.cfg.Publish.OutputDir
	paths, err := publish.WritePages(out, res, publish.NewManifest(res, now, templateKey))
	if err != nil {
		return nil, err
	}
	a.logger.Info("pages published", zap.String("dir", out), zap.Int("files", len(paths)))

	if a.cfg.Publish.ReportFile != "" {
		path := filepath.Join(out, a.cfg.Publish.ReportFile)
		if err := report.WriteFile(path, res, now, templateKey); err != nil {
			return nil, err
		}
	}

	if err := a.commit(ctx, out, now); err != nil {
		return nil, err
	}
	return res, nil
}

// rewrite runs one homepage rewrite pass.
func (a *app) rewrite(ctx context.Context) (*site.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.writeMetrics()

	now := a.now()
	res, err := a.rewriter.Run(now)
	if err != nil {
		return nil, err
	}
	if err := a.commit(ctx, filepath.Dir(a.cfg.Site.IndexPath), now); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *app) commit(ctx context.Context, dir string, now time.Time) error {
	if !a.cfg.Publish.Commit {
		return nil
	}
	c := publish.NewCommitter(dir, a.cfg.Publish, a.logger)
	hash, err := c.Commit(now)
	if err != nil {
		return err
	}
	if hash == "" || !a.cfg.Publish.Push {
		return nil
	}
	return c.Push(ctx)
}

func (a *app) writeMetrics() {
	path := a.cfg.Publish.MetricsFile
	if path == "" {
		return
	}
	if err := a.recorder.WriteTextfile(path); err != nil {
		a.logger.Warn("metrics export failed", zap.String("path", path), zap.Error(err))
	}
}
