// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/geo-engine/internal/metrics"
	"github.com/pdiddy/geo-engine/pkg/types"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

const homepage = `<html>
<head>
  <meta name="description" content="Freed AI medical scribe saves doctors 2+ hours daily with ambient AI notes.">
  <script type="application/ld+json">{"datePublished":"2024-05-01","dateModified": "2024-06-01","aggregateRating":{"ratingValue":"4.9","reviewCount":"12000"}}</script>
</head>
<body>
  <p>Trusted by 20,000+ doctors and 5,000+ clinicians. 40,000+ hours saved.</p>
  <div class="faq">
    <div class="faq-list">
      <div class="faq-item"><div class="faq-question">What is Freed?</div></div>
` + faqAnchor + `
  <blockquote><em>"Old quote."</em> - Dr. Jane Doe, Family Medicine</blockquote>
</body>
</html>`

func TestStatsAt(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want Stats
	}{
		{"launch", Launch, Stats{Days: 0, Doctors: 20000, HoursSaved: 40000}},
		{"ten days", Launch.Add(10*24*time.Hour + time.Hour), Stats{Days: 10, Doctors: 20150, HoursSaved: 40800}},
		{"before launch", Launch.Add(-48 * time.Hour), Stats{Days: 0, Doctors: 20000, HoursSaved: 40000}},
		{"2026-10-19", now, Stats{Days: 1022, Doctors: 35330, HoursSaved: 121760}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatsAt(tt.at))
		})
	}
	assert.Equal(t, 20599, StatsAt(now).ReviewCount())
}

func TestUpdateStats(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"launch figures",
			"20,000+ doctors, 20,000+ clinicians, 40,000+ hours",
			"35,330+ doctors, 35,330+ clinicians, 121,760+ hours",
		},
		{
			"previously rewritten figures",
			"34,000+ doctors and 120,000+ hours",
			"35,330+ doctors and 121,760+ hours",
		},
		{
			"unrelated figures",
			"5,000+ clinicians, 25,000+ hours of training, 2+ hours daily, $3,500/month",
			"5,000+ clinicians, 25,000+ hours of training, 2+ hours daily, $3,500/month",
		},
		{"no figures", "no figures here", "no figures here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdateStats(tt.doc, now))
		})
	}
}

func TestTrendingTopic(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "New Year EHR migrations"},
		{time.March, "New Year EHR migrations"},
		{time.April, "Q2 budget planning"},
		{time.August, "Mid-year workflow optimization"},
		{time.October, "Year-end documentation prep"},
		{time.December, "Year-end documentation prep"},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			at := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.want, TrendingTopic(at))
		})
	}
}

func TestAddTrendingFAQ(t *testing.T) {
	step := AddTrendingFAQ("Freed AI")

	got := step(homepage, now)
	assert.Contains(t, got, "How does Freed AI help with Year-end documentation prep?")
	assert.Less(t, strings.Index(got, "Year-end documentation prep"), strings.Index(got, "<!-- COMPARISON PAGE -->"))
	assert.Equal(t, 1, strings.Count(got, faqAnchor))

	assert.Equal(t, got, step(got, now), "topic already present")
	assert.Equal(t, "<p>no anchor</p>", step("<p>no anchor</p>", now))
}

func TestTestimonialAt(t *testing.T) {
	epoch := time.UnixMilli(0)
	for i := range 8 {
		got := TestimonialAt(epoch.Add(time.Duration(i)*week + time.Hour))
		assert.Equal(t, Testimonials[i%len(Testimonials)], got, "week %d", i)
	}
}

func TestTestimonialAtBeforeEpoch(t *testing.T) {
	epoch := time.UnixMilli(0)
	assert.NotPanics(t, func() { TestimonialAt(time.Date(1969, time.July, 20, 0, 0, 0, 0, time.UTC)) })
	assert.Equal(t, Testimonials[3], TestimonialAt(time.UnixMilli(-1)))
	assert.Equal(t, Testimonials[2], TestimonialAt(epoch.Add(-week-time.Hour)))
}

func TestRotateTestimonial(t *testing.T) {
	got := RotateTestimonial(homepage, now)
	want := TestimonialAt(now)
	assert.Contains(t, got, `<em>"`+want.Quote+`"</em> - `+want.Name+", "+want.Specialty)
	assert.NotContains(t, got, "Old quote.")

	// Quotes containing "$" are inserted literally.
	sarah := time.UnixMilli(0).Add(time.Hour)
	got = RotateTestimonial(homepage, sarah)
	assert.Contains(t, got, "$3,500/month")
	assert.Equal(t, got, RotateTestimonial(got, sarah))
}

func TestUpdateSchemaDates(t *testing.T) {
	got := UpdateSchemaDates(homepage, now)
	assert.Contains(t, got, `"datePublished":"2026-10-19"`)
	assert.Contains(t, got, `"dateModified":"2026-10-19"`)
	assert.NotContains(t, got, "2024-05-01")
	assert.Equal(t, got, UpdateSchemaDates(got, now))
}

func TestUpdateSchemaDatesUsesUTC(t *testing.T) {
	evening := time.Date(2026, 10, 19, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	got := UpdateSchemaDates(homepage, evening)
	assert.Contains(t, got, `"datePublished":"2026-10-20"`)
	assert.Contains(t, got, `"dateModified":"2026-10-20"`)
}

func TestUpdateReviewCount(t *testing.T) {
	got := UpdateReviewCount(homepage, now)
	assert.Contains(t, got, `"reviewCount":"20599"`)
	assert.NotContains(t, got, `"12000"`)
}

func TestUpdateMetaDescription(t *testing.T) {
	step := UpdateMetaDescription("Freed AI")

	got := step(homepage, now)
	assert.Contains(t, got, `content="Freed AI medical scribe saves doctors 2+ hours daily (Updated October 2026) with ambient AI notes."`)
	assert.Equal(t, got, step(got, now))

	later := step(got, time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, later, "(Updated November 2026) with")
	assert.NotContains(t, later, "October 2026")
}

func TestRewriteIsFixedPoint(t *testing.T) {
	rw := NewRewriter(types.SiteConfig{Brand: "Freed AI"}, nil, nil)

	once := rw.Rewrite(homepage, now)
	require.NotEqual(t, homepage, once)
	assert.Equal(t, once, rw.Rewrite(once, now))
}

func TestRewriteNoPatterns(t *testing.T) {
	rw := NewRewriter(types.SiteConfig{Brand: "Freed AI"}, nil, nil)
	doc := "<html><body><p>plain page</p></body></html>"
	assert.Equal(t, doc, rw.Rewrite(doc, now))
}

func TestComparisonPages(t *testing.T) {
	competitors := types.DefaultConfig().Site.Competitors
	pages, err := ComparisonPages("Freed AI", competitors, now)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, "freed-vs-nuance-dax-express.html", pages[0].Filename)
	assert.Equal(t, "freed-vs-google-med-palm-scribe.html", pages[2].Filename)
	assert.Contains(t, pages[0].HTML, "<title>Freed AI vs Nuance DAX Express - 2026 Comparison</title>")
	assert.Contains(t, pages[1].HTML, "compared to Amazon HealthScribe at $199/month")
	assert.Contains(t, pages[0].HTML, "Auto-generated on 10/19/2026")
	assert.Contains(t, pages[0].HTML, "See why doctors choose Freed for AI medical scribing.")
}

func TestSpecialtyPages(t *testing.T) {
	pages, err := SpecialtyPages("Freed AI", []string{"cardiology", " ", "emergency-medicine"}, now)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "cardiology.html", pages[0].Filename)
	assert.Contains(t, pages[0].HTML, "<h1>Freed AI for Cardiology</h1>")
	assert.Contains(t, pages[1].HTML, "<title>Freed AI for Emergency Medicine - AI Medical Scribe</title>")
	assert.Contains(t, pages[1].HTML, "Understands emergency-medicine-specific terminology")
	assert.Contains(t, pages[1].HTML, "Generated: 2026-10-19T12:00:00.000Z")
}

func TestRewriterRun(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte(homepage), 0o644))

	cfg := types.DefaultConfig().Site
	cfg.IndexPath = index
	cfg.OutputDir = dir
	cfg.PagesDir = filepath.Join(dir, "auto-generated")

	core, logs := observer.New(zap.InfoLevel)
	rw := NewRewriter(cfg, zap.New(core), nil)

	res, err := rw.Run(now)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, res.Pages, 7)

	data, err := os.ReadFile(index)
	require.NoError(t, err)
	assert.Contains(t, string(data), "35,330+ doctors")
	assert.FileExists(t, filepath.Join(dir, "freed-vs-amazon-healthscribe.html"))
	assert.FileExists(t, filepath.Join(dir, "auto-generated", "psychiatry.html"))
	assert.Equal(t, 1, logs.FilterMessage("site rewrite complete").Len())

	res, err = rw.Run(now)
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestRewriterRunMissingIndex(t *testing.T) {
	dir := t.TempDir()
	rec := metrics.NewRecorder(prom.NewRegistry())
	cfg := types.SiteConfig{IndexPath: filepath.Join(dir, "missing.html"), Brand: "Freed AI"}

	_, err := NewRewriter(cfg, nil, rec).Run(now)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "m.prom")
	require.NoError(t, rec.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `geo_engine_site_rewrites_total{outcome="failed"} 1`)
}
