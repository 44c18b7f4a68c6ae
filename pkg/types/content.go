// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the geo-engine pipeline:
// the static answer and citation configuration, the per-render citation and
// page records, and the process-wide run statistics.
package types

// AnswerTemplate is one canned answer keyed by its topic label
// (e.g. "cost", "hipaa").
type AnswerTemplate struct {
	// Key is the topic label the question matcher resolves to.
	Key string `json:"key" yaml:"key"`

	// Text is the free-form answer text rendered verbatim.
	Text string `json:"text" yaml:"text"`
}

// CitationSource is a pre-selected reputable source in the citation catalog.
type CitationSource struct {
	// Name is the display name rendered as the link text.
	Name string `json:"name" yaml:"name"`

	// Domain is the bare host the citation links to (e.g. "nejm.org").
	Domain string `json:"domain" yaml:"domain"`

	// Credibility ranks sources against each other, 0 to 100.
	Credibility int `json:"credibility" yaml:"credibility"`

	// Topics lists the subject phrases this source is relevant to.
	Topics []string `json:"topics" yaml:"topics"`
}

// Citation is a ranked reference attached to one rendered page.
type Citation struct {
	// Rank is the 1-based position in credibility order.
	Rank int `json:"rank" yaml:"rank"`

	// Source is the citation source's display name.
	Source string `json:"source" yaml:"source"`

	// URL is the https link to the source domain.
	URL string `json:"url" yaml:"url"`

	// Credibility is copied from the catalog entry.
	Credibility int `json:"credibility" yaml:"credibility"`
}
