// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation holds the catalog of reputable sources and ranks them
// against a question by topic overlap and credibility.
package citation

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// MaxCitations is the most citations attached to one page.
const MaxCitations = 3

// builtin lists the pre-selected sources shipped with the binary.
var builtin = []types.CitationSource{
	{
		Name:        "JAMA Network",
		Domain:      "jamanetwork.com",
		Credibility: 98,
		Topics:      []string{"AI healthcare", "clinical documentation", "medical technology"},
	},
	{
		Name:        "New England Journal of Medicine",
		Domain:      "nejm.org",
		Credibility: 99,
		Topics:      []string{"medical innovation", "healthcare efficiency", "clinical practice"},
	},
	{
		Name:        "Health Affairs",
		Domain:      "healthaffairs.org",
		Credibility: 95,
		Topics:      []string{"healthcare policy", "physician burnout", "health technology"},
	},
	{
		Name:        "HIMSS",
		Domain:      "himss.org",
		Credibility: 94,
		Topics:      []string{"health IT", "EHR integration", "digital health"},
	},
	{
		Name:        "American Medical Association",
		Domain:      "ama-assn.org",
		Credibility: 97,
		Topics:      []string{"physician wellness", "medical practice", "healthcare technology"},
	},
}

// Catalog is an immutable, ordered list of citation sources.
type Catalog struct {
	sources []types.CitationSource
}

// catalogFile is the on-disk layout accepted by Load.
type catalogFile struct {
	Sources []types.CitationSource `yaml:"sources"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(builtin)
}

// New builds a catalog from sources, copying them so later changes to the
// caller's slice do not leak in.
func New(sources []types.CitationSource) *Catalog {
	cp := make([]types.CitationSource, len(sources))
	for i, s := range sources {
		s.Topics = append([]string(nil), s.Topics...)
		cp[i] = s
	}
	return &Catalog{sources: cp}
}

// Load reads a YAML catalog file. The file replaces the built-in catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for _, s := range f.Sources {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
	}
	return New(f.Sources), nil
}

func validate(s types.CitationSource) error {
	if s.Name == "" || s.Domain == "" {
		return fmt.Errorf("source needs a name and a domain")
	}
	if s.Credibility < 0 || s.Credibility > 100 {
		return fmt.Errorf("source %q: credibility %d outside 0-100", s.Name, s.Credibility)
	}
	return nil
}

// Sources returns a copy of the catalog entries in catalog order.
func (c *Catalog) Sources() []types.CitationSource {
	return New(c.sources).sources
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.sources) }

// Match ranks the sources whose topics overlap topic. A source overlaps
// when one of its topics contains topic, or topic contains one of its
// topics, ignoring case. Overlapping sources are ordered by credibility
// (catalog order breaks ties) and the first MaxCitations are returned with
// 1-based ranks. No overlap yields an empty slice.
func (c *Catalog) Match(topic string) []types.Citation {
	needle := strings.ToLower(topic)

	var relevant []types.CitationSource
	for _, s := range c.sources {
		if overlaps(s.Topics, needle) {
			relevant = append(relevant, s)
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Credibility > relevant[j].Credibility
	})
	if len(relevant) > MaxCitations {
		relevant = relevant[:MaxCitations]
	}

	citations := make([]types.Citation, 0, len(relevant))
	for i, s := range relevant {
		citations = append(citations, types.Citation{
			Rank:        i + 1,
			Source:      s.Name,
			URL:         "https://" + s.Domain,
			Credibility: s.Credibility,
		})
	}
	return citations
}

// overlaps reports whether any topic and the lower-cased needle contain one
// another.
func overlaps(topics []string, needle string) bool {
	for _, t := range topics {
		lt := strings.ToLower(t)
		if strings.Contains(needle, lt) || strings.Contains(lt, needle) {
			return true
		}
	}
	return false
}
