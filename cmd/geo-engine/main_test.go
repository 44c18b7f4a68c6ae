// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/geo-engine/pkg/types"
)

func withConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geo-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	viper.Reset()
	require.NoError(t, rootCmd.PersistentFlags().Set("config", path))
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("config", "")
		viper.Reset()
	})
	return path
}

func TestLoadConfig(t *testing.T) {
	withConfigFile(t, `
harvest:
  source: static
  timeout: 3s
  questions:
    - What is an AI medical scribe?
publish:
  output_dir: out
content:
  max_questions: 0
`)
	t.Setenv("GEO_ENGINE_SITE_BRAND", "Acme Scribe")

	initConfig()
	c, err := loadConfig()
	require.NoError(t, err)

	def := types.DefaultConfig()
	assert.Equal(t, types.SourceStatic, c.Harvest.Source)
	assert.Equal(t, 3*time.Second, c.Harvest.Timeout)
	assert.Equal(t, []string{"What is an AI medical scribe?"}, c.Harvest.Questions)
	assert.Equal(t, def.Harvest.Seeds, c.Harvest.Seeds)
	assert.Equal(t, "out", c.Publish.OutputDir)
	assert.Equal(t, def.Publish.BaseURL, c.Publish.BaseURL)
	assert.Equal(t, "Acme Scribe", c.Site.Brand)
	assert.Equal(t, def.Site.Competitors, c.Site.Competitors)
	assert.Equal(t, 24*time.Hour, c.Schedule.BatchInterval)
	assert.Equal(t, types.DefaultMaxQuestions, c.Content.MaxQuestions)
}

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	initConfig()
	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestConfigReloadKeepsDefaults(t *testing.T) {
	withConfigFile(t, "publish:\n  output_dir: out\n")
	initConfig()

	// The config watcher re-reads the file before notifying.
	require.NoError(t, viper.ReadInConfig())
	c, err := loadConfig()
	require.NoError(t, err)

	def := types.DefaultConfig()
	assert.Equal(t, "out", c.Publish.OutputDir)
	assert.Equal(t, def.Harvest.Endpoint, c.Harvest.Endpoint)
	assert.Equal(t, def.Harvest.Seeds, c.Harvest.Seeds)
	assert.Equal(t, def.Site.IndexPath, c.Site.IndexPath)
	assert.Equal(t, def.Site.Brand, c.Site.Brand)
	assert.Equal(t, def.Publish.BaseURL, c.Publish.BaseURL)
	assert.Equal(t, def.Schedule.BatchInterval, c.Schedule.BatchInterval)
}

func TestContentFilesFromEnv(t *testing.T) {
	withConfigFile(t, "logging:\n  level: error\n")
	t.Setenv("GEO_ENGINE_CONTENT_TEMPLATES_FILE", "answers.yaml")
	t.Setenv("GEO_ENGINE_CONTENT_CATALOG_FILE", "catalog.yaml")

	initConfig()
	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "answers.yaml", c.Content.TemplatesFile)
	assert.Equal(t, "catalog.yaml", c.Content.CatalogFile)
}

func TestFlattenKeys(t *testing.T) {
	got := flattenKeys("", map[string]any{
		"harvest": map[string]any{"timeout": "10s", "seeds": []any{"a", "b"}},
		"render":  map[string]any{"escape_html": false},
		"empty":   map[string]any{},
	})
	assert.Equal(t, map[string]any{
		"harvest.timeout":    "10s",
		"harvest.seeds":      []any{"a", "b"},
		"render.escape_html": false,
		"empty":              map[string]any{},
	}, got)
}

func TestWorkflowCommand(t *testing.T) {
	withConfigFile(t, "logging:\n  level: error\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"workflow", "--stdout", "--cron", "0 6 * * *"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		_ = workflowCmd.Flags().Set("stdout", "false")
		_ = workflowCmd.Flags().Set("cron", "")
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "name: GEO Auto-Update")
	assert.Contains(t, out.String(), "0 6 * * *")
}

func TestVersionCommand(t *testing.T) {
	withConfigFile(t, "logging:\n  level: error\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "geo-engine dev\n", out.String())
}
