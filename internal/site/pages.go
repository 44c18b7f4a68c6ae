// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// Page is a companion page produced alongside the homepage rewrite.
// Filename is relative to the directory the page is written to.
type Page struct {
	Filename string
	HTML     string
}

var comparisonTmpl = template.Must(template.New("comparison").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Brand}} vs {{.Competitor.Name}} - {{.Year}} Comparison</title>
  <meta name="description" content="Compare {{.Brand}} with {{.Competitor.Name}}. See why doctors choose {{.Short}} for AI medical scribing.">
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <div class="container">
    <h1>{{.Brand}} vs {{.Competitor.Name}}</h1>
    <div class="quick-answer">
      <strong>Quick Answer:</strong> {{.Brand}} offers better value at $99/month compared to {{.Competitor.Name}} at {{.Competitor.Price}}/month, with faster setup and no audio storage.
    </div>
    <table>
      <tr>
        <th>Feature</th>
        <th>{{.Brand}}</th>
        <th>{{.Competitor.Name}}</th>
      </tr>
      <tr>
        <td>Monthly Cost</td>
        <td><strong>$99</strong></td>
        <td>{{.Competitor.Price}}</td>
      </tr>
      <tr>
        <td>Setup Time</td>
        <td><strong>5 minutes</strong></td>
        <td>1-2 weeks</td>
      </tr>
      <tr>
        <td>Note Delivery</td>
        <td><strong>60 seconds</strong></td>
        <td>5-30 minutes</td>
      </tr>
      <tr>
        <td>Audio Storage</td>
        <td><strong>Never stored</strong></td>
        <td>Temporary storage</td>
      </tr>
    </table>
    <p style="margin-top: 50px; text-align: center; color: #999;">
      Auto-generated on {{.Date}} | Educational Demo
    </p>
  </div>
</body>
</html>`))

var specialtyTmpl = template.Must(template.New("specialty").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Brand}} for {{.Title}} - AI Medical Scribe</title>
  <meta name="description" content="How {{.Brand}} helps {{.Specialty}} specialists save 2+ hours daily on documentation.">
</head>
<body>
  <h1>{{.Brand}} for {{.Title}}</h1>
  <p>Specialized AI medical scribing for {{.Specialty}} professionals.</p>
  <ul>
    <li>Understands {{.Specialty}}-specific terminology</li>
    <li>Formats notes according to {{.Specialty}} standards</li>
    <li>Integrates with {{.Specialty}} EHR workflows</li>
  </ul>
  <p>Generated: {{.Generated}}</p>
</body>
</html>`))

var whitespaceRe = regexp.MustCompile(`\s+`)

// shortName is the first word of the brand ("Freed AI" -> "Freed").
func shortName(brand string) string {
	fields := strings.Fields(brand)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ComparisonFilename names the comparison page for a competitor,
// e.g. "freed-vs-nuance-dax-express.html".
func ComparisonFilename(brand, competitor string) string {
	name := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(competitor)), "-")
	return strings.ToLower(shortName(brand)) + "-vs-" + name + ".html"
}

// ComparisonPages renders one brand-versus-competitor page per competitor.
func ComparisonPages(brand string, competitors []types.Competitor, now time.Time) ([]Page, error) {
	pages := make([]Page, 0, len(competitors))
	for _, c := range competitors {
		var buf bytes.Buffer
		err := comparisonTmpl.Execute(&buf, struct {
			Brand      string
			Short      string
			Competitor types.Competitor
			Year       int
			Date       string
		}{brand, shortName(brand), c, now.Year(), now.Format("1/2/2006")})
		if err != nil {
			return nil, fmt.Errorf("rendering comparison page for %s: %w", c.Name, err)
		}
		pages = append(pages, Page{Filename: ComparisonFilename(brand, c.Name), HTML: buf.String()})
	}
	return pages, nil
}

var titleCaser = cases.Title(language.English)

// SpecialtyTitle turns a specialty slug into a heading ("emergency-medicine"
// -> "Emergency Medicine").
func SpecialtyTitle(specialty string) string {
	return titleCaser.String(strings.ReplaceAll(specialty, "-", " "))
}

// SpecialtyPages renders one landing page per specialty slug.
func SpecialtyPages(brand string, specialties []string, now time.Time) ([]Page, error) {
	pages := make([]Page, 0, len(specialties))
	for _, s := range specialties {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		var buf bytes.Buffer
		err := specialtyTmpl.Execute(&buf, struct {
			Brand     string
			Specialty string
			Title     string
			Generated string
		}{brand, s, SpecialtyTitle(s), now.UTC().Format("2006-01-02T15:04:05.000Z")})
		if err != nil {
			return nil, fmt.Errorf("rendering specialty page for %s: %w", s, err)
		}
		pages = append(pages, Page{Filename: s + ".html", HTML: buf.String()})
	}
	return pages, nil
}
