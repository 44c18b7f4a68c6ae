// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/internal/publish"
	"github.com/pdiddy/geo-engine/internal/render"
	"github.com/pdiddy/geo-engine/pkg/types"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) types.Config {
	t.Helper()
	dir := t.TempDir()
	c := types.DefaultConfig()
	c.Harvest.Source = types.SourceStatic
	c.Publish.OutputDir = filepath.Join(dir, "site")
	c.Publish.MetricsFile = filepath.Join(dir, "geo_engine.prom")
	c.Site.IndexPath = filepath.Join(dir, "index.html")
	c.Site.OutputDir = dir
	c.Site.PagesDir = filepath.Join(dir, "auto-generated")
	return c
}

func testApp(t *testing.T, c types.Config) *app {
	t.Helper()
	a, err := newApp(c, zap.NewNop())
	require.NoError(t, err)
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestBatchStaticSource(t *testing.T) {
	c := testConfig(t)
	a := testApp(t, c)

	res, err := a.batch(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Pages, len(c.Harvest.Questions))

	out := c.Publish.OutputDir
	assert.FileExists(t, filepath.Join(out, render.Filename("How much does a medical scribe cost?")))
	assert.FileExists(t, filepath.Join(out, "how-much-does-a-medical-scribe-cost-.html"))
	assert.FileExists(t, filepath.Join(out, publish.SitemapFile))
	assert.FileExists(t, filepath.Join(out, "run-report.md"))

	m, err := publish.ReadManifest(filepath.Join(out, publish.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, res.ID, m.RunID)
	assert.Equal(t, "cost", m.Pages[1].Template)

	metrics, err := os.ReadFile(c.Publish.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), fmt.Sprintf("geo_engine_questions_processed_total %d", len(c.Harvest.Questions)))
}

func TestBatchSuggestSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[%q, ["How much does a medical scribe cost?", "is an ai scribe hipaa compliant"]]`, r.URL.Query().Get("q"))
	}))
	defer srv.Close()

	c := testConfig(t)
	c.Harvest.Source = types.SourceSuggest
	c.Harvest.Endpoint = srv.URL
	a := testApp(t, c)

	res, err := a.batch(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Pages, 2)
	assert.Equal(t, "is an ai scribe hipaa compliant", res.Pages[1].Question)
}

func TestBatchFileSourceMissing(t *testing.T) {
	c := testConfig(t)
	c.Harvest.Source = types.SourceFile
	c.Harvest.QuestionFile = filepath.Join(t.TempDir(), "missing.yaml")
	a := testApp(t, c)

	_, err := a.batch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "harvesting questions from file")
	assert.NoDirExists(t, c.Publish.OutputDir)
}

func TestBatchCommits(t *testing.T) {
	c := testConfig(t)
	root := filepath.Dir(c.Publish.OutputDir)
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	c.Publish.Commit = true
	a := testApp(t, c)

	_, err = a.batch(context.Background())
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, c.Publish.CommitMessage, commit.Message)
}

func TestReloadAppliesNewConfig(t *testing.T) {
	c := testConfig(t)
	a := testApp(t, c)

	c.Content.MaxQuestions = 2
	require.NoError(t, a.reload(c))

	res, err := a.batch(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Pages, 2)
}

func TestReloadRejectsBadSource(t *testing.T) {
	c := testConfig(t)
	a := testApp(t, c)

	bad := c
	bad.Harvest.Source = "carrier-pigeon"
	assert.Error(t, a.reload(bad))
	assert.Equal(t, types.SourceStatic, a.cfg.Harvest.Source)
}

func TestRewrite(t *testing.T) {
	c := testConfig(t)
	page := `<meta name="description" content="Freed AI medical scribe saves doctors 2+ hours daily.">
<p>20,000+ doctors</p>`
	require.NoError(t, os.WriteFile(c.Site.IndexPath, []byte(page), 0o644))
	a := testApp(t, c)

	res, err := a.rewrite(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, res.Pages, len(c.Site.Competitors)+len(c.Site.Specialties))

	data, err := os.ReadFile(c.Site.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "35,330+ doctors")
	assert.Contains(t, string(data), "(Updated October 2026)")

	metrics, err := os.ReadFile(c.Publish.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `geo_engine_site_rewrites_total{outcome="success"} 1`)
}

func TestTemplateKey(t *testing.T) {
	assert.Equal(t, "cost", templateKey("What does it cost?"))
	assert.Equal(t, "default", templateKey("Tell me a joke"))
}
