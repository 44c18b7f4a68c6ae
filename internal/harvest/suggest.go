// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/internal/httputil"
	"github.com/pdiddy/geo-engine/pkg/types"
)

// SuggestSource queries an autocomplete endpoint for every seed term and
// every "<product> <trend>" combination. The endpoint answers with a JSON
// array whose second element is the list of suggestions.
type SuggestSource struct {
	Client    *http.Client
	Endpoint  string
	UserAgent string
	Seeds     []string
	Product   string
	Trends    []string
	Logger    *zap.Logger
}

// NewSuggestSource returns a SuggestSource configured by cfg.
func NewSuggestSource(cfg types.HarvestConfig, client *http.Client, logger *zap.Logger) *SuggestSource {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestSource{
		Client:    client,
		Endpoint:  cfg.Endpoint,
		UserAgent: cfg.UserAgent,
		Seeds:     cfg.Seeds,
		Product:   cfg.Product,
		Trends:    cfg.Trends,
		Logger:    logger,
	}
}

// Name returns the source identifier.
func (s *SuggestSource) Name() string { return "suggest" }

// Terms returns the queries sent to the endpoint: seeds first, then the
// trend combinations.
func (s *SuggestSource) Terms() []string {
	terms := append([]string{}, s.Seeds...)
	for _, t := range s.Trends {
		terms = append(terms, strings.TrimSpace(s.Product+" "+t))
	}
	return terms
}

// Questions fetches suggestions for every term in order. A failed fetch is
// logged and contributes no suggestions; it never fails the harvest.
func (s *SuggestSource) Questions(ctx context.Context) ([]string, error) {
	var all []string
	for _, term := range s.Terms() {
		suggestions, err := s.Suggestions(ctx, term)
		if err != nil {
			s.Logger.Warn("suggestion fetch failed",
				zap.String("term", term),
				zap.Error(err))
			continue
		}
		s.Logger.Debug("suggestions fetched",
			zap.String("term", term),
			zap.Int("count", len(suggestions)))
		all = append(all, suggestions...)
	}
	return Clean(all), nil
}

// Suggestions fetches the suggestion list for one query.
func (s *SuggestSource) Suggestions(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"client": {"firefox"},
		"q":      {query},
	}
	reqURL := s.Endpoint + "?" + params.Encode()

	body, err := httputil.GetBody(ctx, s.Client, reqURL, s.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("suggestion request: %w", err)
	}
	return parseSuggestions(body)
}

// parseSuggestions decodes ["query", ["s1", "s2", ...], ...]. A response
// without a second element has no suggestions.
func parseSuggestions(body []byte) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("parsing suggestions: %w", err)
	}
	if len(parts) < 2 {
		return nil, nil
	}
	var suggestions []string
	if err := json.Unmarshal(parts[1], &suggestions); err != nil {
		return nil, fmt.Errorf("parsing suggestions: %w", err)
	}
	return suggestions, nil
}
