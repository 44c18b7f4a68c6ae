// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest collects the questions the batch driver turns into pages.
// Questions come from an autocomplete suggestion endpoint, a static list, or
// a previously saved question file.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// ErrNoQuestions is returned by sources whose configured question list is empty.
var ErrNoQuestions = errors.New("no questions configured")

// Source produces an ordered list of questions. Each source (suggestion
// endpoint, static list, question file) implements this interface.
type Source interface {
	Name() string
	Questions(ctx context.Context) ([]string, error)
}

// NewSource builds the source selected by cfg.Source. A nil client uses a
// client with cfg.Timeout.
func NewSource(cfg types.HarvestConfig, client *http.Client, logger *zap.Logger) (Source, error) {
	switch cfg.Source {
	case types.SourceSuggest, "":
		return NewSuggestSource(cfg, client, logger), nil
	case types.SourceStatic:
		return StaticSource(cfg.Questions), nil
	case types.SourceFile:
		return FileSource{Path: cfg.QuestionFile}, nil
	default:
		return nil, fmt.Errorf("unknown question source %q: use suggest, static, or file", cfg.Source)
	}
}

// StaticSource serves a fixed question list.
type StaticSource []string

// Name returns the source identifier.
func (s StaticSource) Name() string { return "static" }

// Questions returns the cleaned static list.
func (s StaticSource) Questions(context.Context) ([]string, error) {
	qs := Clean(s)
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

// Clean trims every question, drops blank ones and removes repeats while
// keeping the first occurrence order.
func Clean(questions []string) []string {
	seen := make(map[string]bool, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}
