// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GeneratedPage is one rendered FAQ page. It is created by the renderer and
// never mutated afterwards.
type GeneratedPage struct {
	// Question is the harvested question, used as title and heading.
	Question string `json:"question" yaml:"question"`

	// Answer is the matched answer template text.
	Answer string `json:"answer" yaml:"answer"`

	// Citations lists the ranked references, possibly empty.
	Citations []Citation `json:"citations" yaml:"citations"`

	// HTML is the complete rendered document.
	HTML string `json:"-" yaml:"-"`

	// Filename is the slugified question plus ".html".
	Filename string `json:"filename" yaml:"filename"`
}

// RunStats accumulates counters across the runs of one batch driver.
type RunStats struct {
	QuestionsProcessed int       `json:"questions_processed" yaml:"questions_processed"`
	PagesGenerated     int       `json:"pages_generated" yaml:"pages_generated"`
	CitationsAdded     int       `json:"citations_added" yaml:"citations_added"`
	LastRun            time.Time `json:"last_run" yaml:"last_run"`
}

// RunResult is the output of one successful batch run.
type RunResult struct {
	// ID uniquely identifies the run in logs, metrics and the manifest.
	ID string `json:"id" yaml:"id"`

	// Pages lists the generated pages in question order.
	Pages []GeneratedPage `json:"pages" yaml:"pages"`

	// Sitemap is the sitemap.xml document for the generated pages.
	Sitemap string `json:"-" yaml:"-"`

	// Stats is a snapshot of the driver's statistics after the run.
	Stats RunStats `json:"stats" yaml:"stats"`
}
