// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish writes a batch's generated pages to disk and optionally
// records them in the enclosing git repository.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// File names written next to the pages.
const (
	SitemapFile  = "sitemap.xml"
	ManifestFile = "manifest.yaml"
)

// Manifest indexes the pages written by one run.
type Manifest struct {
	RunID       string         `yaml:"run_id"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Stats       types.RunStats `yaml:"stats"`
	Pages       []ManifestPage `yaml:"pages"`
}

// ManifestPage describes one generated page.
type ManifestPage struct {
	Question  string   `yaml:"question"`
	File      string   `yaml:"file"`
	Template  string   `yaml:"template,omitempty"`
	Citations []string `yaml:"citations,omitempty"`
}

// NewManifest builds the manifest for res. templateKey, when non-nil, maps
// a question to the answer template it matched.
func NewManifest(res *types.RunResult, now time.Time, templateKey func(string) string) Manifest {
	m := Manifest{
		RunID:       res.ID,
		GeneratedAt: now.UTC(),
		Stats:       res.Stats,
		Pages:       make([]ManifestPage, 0, len(res.Pages)),
	}
	for _, p := range res.Pages {
		mp := ManifestPage{Question: p.Question, File: p.Filename}
		if templateKey != nil {
			mp.Template = templateKey(p.Question)
		}
		for _, c := range p.Citations {
			mp.Citations = append(mp.Citations, c.Source)
		}
		m.Pages = append(m.Pages, mp)
	}
	return m
}

// WritePages writes every page of res, the sitemap and m into dir,
// creating dir if needed. It returns the written paths in write order.
// Pages with the same filename overwrite each other; the last one wins.
func WritePages(dir string, res *types.RunResult, m Manifest) ([]string, error) {
	if res == nil {
		return nil, fmt.Errorf("no run result to publish")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(res.Pages)+2)
	for _, p := range res.Pages {
		path := filepath.Join(dir, p.Filename)
		if err := os.WriteFile(path, []byte(p.HTML), 0o644); err != nil {
			return paths, fmt.Errorf("writing page %s: %w", p.Filename, err)
		}
		paths = append(paths, path)
	}

	sitemap := filepath.Join(dir, SitemapFile)
	if err := os.WriteFile(sitemap, []byte(res.Sitemap), 0o644); err != nil {
		return paths, fmt.Errorf("writing sitemap: %w", err)
	}
	paths = append(paths, sitemap)

	data, err := yaml.Marshal(&m)
	if err != nil {
		return paths, fmt.Errorf("marshaling manifest: %w", err)
	}
	manifest := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(manifest, data, 0o644); err != nil {
		return paths, fmt.Errorf("writing manifest: %w", err)
	}
	return append(paths, manifest), nil
}

// ReadManifest loads a manifest written by WritePages.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
