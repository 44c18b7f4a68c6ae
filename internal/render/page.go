// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render stamps a question, its answer and its citations into a
// standalone FAQ page and builds the sitemap for a set of pages.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"golang.org/x/net/html"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// descriptionLimit is the meta description length in characters.
const descriptionLimit = 155

// TimestampLayout formats the visible "Auto-updated" stamp.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}} - AI Medical Scribe Information</title>
    <meta name="description" content="{{.Description}}">
    <meta name="robots" content="noindex, nofollow">
    <script type="application/ld+json">{{.Schema}}</script>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        .disclaimer { background: #fff3cd; padding: 10px; margin-bottom: 20px; border-radius: 5px; }
        .faq-item { margin-bottom: 30px; padding: 20px; background: #f8f9fa; border-radius: 8px; }
        .citations { margin-top: 30px; padding: 20px; background: #e3f2fd; border-radius: 8px; }
        h1 { color: #333; }
        h2 { color: #0066cc; }
        .citation { margin: 10px 0; }
        .update-time { color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="disclaimer">
        ⚠️ Educational Demo - Auto-generated content about medical scribing technology
    </div>
    <h1>{{.Title}}</h1>
    <p class="update-time">Auto-updated: {{.Timestamp}}</p>
    <div class="faq-item"><h2>{{.Title}}</h2><p>{{.Answer}}</p></div>
{{- if .Citations}}
    <div class="citations">
        <h3>References:</h3>
        {{range .Citations}}<div class="citation">[{{.Rank}}] <a href="{{.URL}}" rel="noopener">{{.Source}}</a></div>{{end}}
    </div>
{{- end}}
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Option("missingkey=error").Parse(pageHTML))

// pageData is the template input for one page.
type pageData struct {
	Title       string
	Description string
	Schema      string
	Timestamp   string
	Answer      string
	Citations   []types.Citation
}

// faqSchema is the schema.org FAQPage structured-data block.
type faqSchema struct {
	Context    string      `json:"@context"`
	Type       string      `json:"@type"`
	MainEntity faqQuestion `json:"mainEntity"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Renderer produces FAQ pages. It holds no per-page state and may be reused.
type Renderer struct {
	escape bool
}

// New returns a Renderer configured by cfg.
func New(cfg types.RenderConfig) *Renderer {
	return &Renderer{escape: cfg.EscapeHTML}
}

// Page renders the full HTML document for one question. The output is
// deterministic apart from the timestamp. With no citations the references
// block is omitted.
func (r *Renderer) Page(question, answer string, citations []types.Citation, now time.Time) (string, error) {
	schema, err := json.Marshal(faqSchema{
		Context: "https://schema.org",
		Type:    "FAQPage",
		MainEntity: faqQuestion{
			Type: "Question",
			Name: question,
			AcceptedAnswer: faqAnswer{
				Type: "Answer",
				Text: answer,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding structured data: %w", err)
	}

	data := pageData{
		Title:       r.text(question),
		Description: r.text(truncate(answer, descriptionLimit)),
		Schema:      string(schema),
		Timestamp:   now.Format(TimestampLayout),
		Answer:      r.text(answer),
		Citations:   r.citations(citations),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}

// Render builds the GeneratedPage record for one question.
func (r *Renderer) Render(question, answer string, citations []types.Citation, now time.Time) (types.GeneratedPage, error) {
	doc, err := r.Page(question, answer, citations, now)
	if err != nil {
		return types.GeneratedPage{}, err
	}
	return types.GeneratedPage{
		Question:  question,
		Answer:    answer,
		Citations: citations,
		HTML:      doc,
		Filename:  Filename(question),
	}, nil
}

func (r *Renderer) text(s string) string {
	if r.escape {
		return html.EscapeString(s)
	}
	return s
}

func (r *Renderer) citations(cs []types.Citation) []types.Citation {
	if !r.escape || len(cs) == 0 {
		return cs
	}
	out := make([]types.Citation, len(cs))
	for i, c := range cs {
		c.Source = html.EscapeString(c.Source)
		c.URL = html.EscapeString(c.URL)
		out[i] = c
	}
	return out
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
