// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/geo-engine/pkg/types"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// LastModLayout is the sitemap lastmod format: ISO-8601 UTC with milliseconds.
const LastModLayout = "2006-01-02T15:04:05.000Z"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
}

// Sitemap returns a sitemap document listing the site root (daily) followed
// by one weekly entry per page. Every entry carries now as lastmod.
func Sitemap(baseURL string, pages []types.GeneratedPage, now time.Time) (string, error) {
	base := strings.TrimRight(baseURL, "/")
	lastMod := now.UTC().Format(LastModLayout)

	set := urlSet{
		Xmlns: sitemapNS,
		URLs: []sitemapURL{
			{Loc: base + "/", LastMod: lastMod, ChangeFreq: "daily"},
		},
	}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/" + p.Filename,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
		})
	}

	out, err := xml.MarshalIndent(set, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding sitemap: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
