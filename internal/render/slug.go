// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "strings"

// slugLimit is the maximum slug length in bytes.
const slugLimit = 50

// Slugify lower-cases s, turns every run of characters outside [a-z0-9]
// into a single hyphen and truncates the result to 50 bytes. Slugify is
// idempotent.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := b.String()
	if len(slug) > slugLimit {
		slug = slug[:slugLimit]
	}
	return slug
}

// Filename returns the page filename for a question.
func Filename(question string) string {
	return Slugify(question) + ".html"
}
